package peerwire

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/outofforest/logger"
	"github.com/outofforest/parallel"
)

var (
	errRemoved  = errors.New("peer removed")
	errTimedOut = errors.New("peer timed out")
)

type sendCmd struct {
	ID      MessageID
	Message any
}

type removeCmd struct{}

type flushCmd struct {
	Done chan<- struct{}
}

// terminal keeps the first reason of session termination.
type terminal struct {
	once  sync.Once
	event Event
}

func (t *terminal) Set(e Event) {
	t.once.Do(func() {
		t.event = e
	})
}

type session struct {
	info     PeerInfo
	conn     Conn
	messages ManagedMessages
	clock    clock.Clock
	interval time.Duration
	timeout  time.Duration
	events   chan<- Event

	inbox chan any

	// removed is closed by the manager once session is dropped from the map.
	removed chan struct{}
	// exited is closed when session goroutine returns.
	exited chan struct{}
	// stopped is closed when manager shuts down.
	stopped <-chan struct{}
}

func (s *session) run(ctx context.Context) error {
	defer close(s.exited)

	log := logger.Get(ctx).With(zap.Stringer("peer", s.info))

	event := s.serve(ctx)
	if ctx.Err() != nil || event == nil {
		return errors.WithStack(ctx.Err())
	}

	if e, ok := event.(PeerError); ok {
		log.Error("Peer connection failed", zap.Error(e.Err))
	} else {
		log.Debug("Peer session finished", zap.String("reason", reason(event)))
	}

	if err := s.emit(ctx, event); err != nil {
		return err
	}
	return s.drain(ctx)
}

func (s *session) serve(ctx context.Context) Event {
	heartbeat := s.clock.Ticker(s.interval)
	defer heartbeat.Stop()

	timeout := s.clock.Timer(s.timeout)
	defer timeout.Stop()

	if err := s.emit(ctx, PeerAdded{Info: s.info}); err != nil {
		_ = s.conn.Close()
		return nil
	}

	var t terminal
	_ = parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
		spawn("receiver", parallel.Fail, func(ctx context.Context) error {
			for {
				msg, err := s.conn.Receive()
				if err != nil {
					if errors.Is(err, io.EOF) {
						t.Set(PeerDisconnect{Info: s.info})
					} else {
						t.Set(PeerError{Info: s.info, Err: err})
					}
					return err
				}

				timeout.Reset(s.timeout)

				if s.messages.IsKeepAlive(msg) {
					continue
				}
				if err := s.emit(ctx, ReceivedMessage{Info: s.info, Message: msg}); err != nil {
					return err
				}
			}
		})
		spawn("sender", parallel.Fail, func(ctx context.Context) error {
			defer s.conn.Close()

			var active bool
			for {
				select {
				case <-ctx.Done():
					return errors.WithStack(ctx.Err())
				case cmd := <-s.inbox:
					switch cmd := cmd.(type) {
					case sendCmd:
						if err := s.conn.Send(cmd.Message); err != nil {
							t.Set(PeerError{Info: s.info, Err: err})
							return err
						}
						active = true

						if err := s.emit(ctx, SentMessage{Info: s.info, ID: cmd.ID}); err != nil {
							return err
						}
					case removeCmd:
						t.Set(PeerRemoved{Info: s.info})
						return errRemoved
					case flushCmd:
						close(cmd.Done)
					}
				case <-heartbeat.C:
					if active {
						active = false
						continue
					}
					if err := s.conn.Send(s.messages.KeepAlive()); err != nil {
						t.Set(PeerError{Info: s.info, Err: err})
						return err
					}
				case <-timeout.C:
					t.Set(PeerDisconnect{Info: s.info})
					return errTimedOut
				}
			}
		})

		return nil
	})

	return t.event
}

// drain drops queued commands until manager forgets the session.
func (s *session) drain(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		case <-s.removed:
			return nil
		case cmd := <-s.inbox:
			if cmd, ok := cmd.(flushCmd); ok {
				close(cmd.Done)
			}
		}
	}
}

func (s *session) emit(ctx context.Context, e Event) error {
	select {
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	case s.events <- e:
		return nil
	}
}

// deliver queues command for the session.
func (s *session) deliver(ctx context.Context, cmd any) error {
	select {
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	case <-s.removed:
		return errors.WithStack(PeerNotFoundError{Info: s.info})
	case <-s.exited:
		return s.exitErr()
	case s.inbox <- cmd:
		return nil
	}
}

// await waits until session processes the command closing done.
func (s *session) await(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	case <-done:
		return nil
	case <-s.removed:
		return nil
	case <-s.exited:
		return s.exitErr()
	}
}

// exitErr is called after session goroutine exited. Session may exit only after being removed
// or on shutdown, anything else means the manager keeps a dead session.
func (s *session) exitErr() error {
	select {
	case <-s.removed:
		return errors.WithStack(PeerNotFoundError{Info: s.info})
	case <-s.stopped:
		return errors.WithStack(ErrManagerStopped)
	default:
	}
	panic(errors.Errorf("session of peer %s exited while still managed", s.info))
}

func reason(e Event) string {
	switch e.(type) {
	case PeerRemoved:
		return "removed"
	case PeerDisconnect:
		return "disconnected"
	case PeerError:
		return "error"
	default:
		return "unknown"
	}
}
