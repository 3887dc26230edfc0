package peerwire

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

// timerSlots is the number of ticks the longer of heartbeat interval and timeout is divided into.
const timerSlots = 2048

// Config is the configuration of manager.
type Config struct {
	// PeerCapacity is the maximum number of managed peers.
	PeerCapacity int

	// HeartbeatInterval is the period of keep-alives sent when there is no other outbound traffic.
	HeartbeatInterval time.Duration

	// HeartbeatTimeout is the time after which silent peer is disconnected.
	HeartbeatTimeout time.Duration

	// EventBufferCapacity is the capacity of the event channel.
	EventBufferCapacity int

	// SessionBufferCapacity is the capacity of the command queue of each peer.
	SessionBufferCapacity int

	// Messages describes keep-alives of the peer protocol.
	Messages ManagedMessages

	// Clock drives heartbeats and timeouts. Real clock is used if nil.
	Clock clock.Clock
}

// DefaultConfig returns default configuration.
func DefaultConfig(messages ManagedMessages) Config {
	return Config{
		PeerCapacity:          1000,
		HeartbeatInterval:     time.Minute,
		HeartbeatTimeout:      2 * time.Minute,
		EventBufferCapacity:   100,
		SessionBufferCapacity: 100,
		Messages:              messages,
	}
}

func (c Config) validate() error {
	switch {
	case c.PeerCapacity <= 0:
		return errors.Errorf("peer capacity must be positive, got %d", c.PeerCapacity)
	case c.HeartbeatInterval <= 0:
		return errors.Errorf("heartbeat interval must be positive, got %s", c.HeartbeatInterval)
	case c.HeartbeatTimeout <= 0:
		return errors.Errorf("heartbeat timeout must be positive, got %s", c.HeartbeatTimeout)
	case c.EventBufferCapacity < 0:
		return errors.Errorf("event buffer capacity must not be negative, got %d", c.EventBufferCapacity)
	case c.SessionBufferCapacity < 0:
		return errors.Errorf("session buffer capacity must not be negative, got %d", c.SessionBufferCapacity)
	case c.Messages == nil:
		return errors.New("managed messages not specified")
	}
	return nil
}

// TimerResolution returns the tick of the timers so the longer of interval and timeout spans timerSlots ticks.
// The longer duration is truncated to whole seconds first.
func TimerResolution(interval, timeout time.Duration) time.Duration {
	longest := max(interval, timeout).Truncate(time.Second)
	return time.Duration(longest.Milliseconds()/timerSlots+1) * time.Millisecond
}

func roundUp(d, tick time.Duration) time.Duration {
	if rem := d % tick; rem != 0 {
		return d + tick - rem
	}
	return d
}
