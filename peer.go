package peerwire

import (
	"fmt"

	"github.com/outofforest/peerwire/wire"
)

// PeerInfo identifies managed peer.
type PeerInfo struct {
	Addr   string
	PeerID wire.PeerID
	Hash   wire.InfoHash
}

func (i PeerInfo) String() string {
	return fmt.Sprintf("%s/%x/%x", i.Addr, i.PeerID, i.Hash)
}

// MessageID is chosen by the sender of a message and returned back in SentMessage event.
type MessageID uint64

// Conn is the duplex message stream of a peer.
type Conn interface {
	Send(msg any) error
	Receive() (any, error)
	Close() error
}

// ManagedMessages describes keep-alives of the peer protocol.
type ManagedMessages interface {
	KeepAlive() any
	IsKeepAlive(msg any) bool
}
