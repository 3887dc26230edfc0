package peerwire

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotReady is returned when manager runs at full capacity.
	ErrNotReady = errors.New("peer capacity reached")

	// ErrManagerStopped is returned when command is submitted to the manager which is not running anymore.
	ErrManagerStopped = errors.New("manager stopped")

	// ErrHandshakeRejected is returned when filters rejected the handshake.
	ErrHandshakeRejected = errors.New("handshake rejected")

	// ErrSelfConnection is returned when we connected to ourselves.
	ErrSelfConnection = errors.New("connected to myself")
)

// PeerNotFoundError is returned when command refers to the peer which is not managed.
type PeerNotFoundError struct {
	Info PeerInfo
}

func (e PeerNotFoundError) Error() string {
	return fmt.Sprintf("peer %s not found", e.Info)
}

// DuplicatePeerError is returned when peer being added is already managed.
type DuplicatePeerError struct {
	Info PeerInfo
}

func (e DuplicatePeerError) Error() string {
	return fmt.Sprintf("peer %s already exists", e.Info)
}
