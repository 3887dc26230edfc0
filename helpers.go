package peerwire

import (
	"crypto/rand"

	"github.com/pkg/errors"

	"github.com/outofforest/peerwire/wire"
)

// ClientTag prefixes generated peer IDs in Azureus style.
const ClientTag = "-PW0100-"

// NewPeerID returns peer ID made of ClientTag followed by random bytes.
func NewPeerID() (wire.PeerID, error) {
	var peerID wire.PeerID
	n := copy(peerID[:], ClientTag)
	if _, err := rand.Read(peerID[n:]); err != nil {
		return wire.PeerID{}, errors.Wrap(err, "generating peer ID failed")
	}
	return peerID, nil
}
