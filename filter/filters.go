package filter

import (
	"net/netip"

	"github.com/outofforest/peerwire/wire"
)

var (
	_ Filter = BlockAllHashes{}
	_ Filter = AllowHash{}
	_ Filter = BlockHash{}
	_ Filter = AllowPeerID{}
	_ Filter = BlockPeerID{}
	_ Filter = RequireProtocol{}
	_ Filter = AllowPrefix{}
	_ Filter = BlockPrefix{}
)

// BlockAllHashes blocks every info hash. Combine it with AllowHash to build a whitelist.
type BlockAllHashes struct {
	Passthrough
}

// OnHash implements Filter.
func (BlockAllHashes) OnHash(*wire.InfoHash) Decision {
	return Block
}

// AllowHash allows the info hash.
type AllowHash struct {
	Passthrough

	Hash wire.InfoHash
}

// OnHash implements Filter.
func (f AllowHash) OnHash(hash *wire.InfoHash) Decision {
	switch {
	case hash == nil:
		return NeedData
	case *hash == f.Hash:
		return Allow
	default:
		return Pass
	}
}

// BlockHash blocks the info hash.
type BlockHash struct {
	Passthrough

	Hash wire.InfoHash
}

// OnHash implements Filter.
func (f BlockHash) OnHash(hash *wire.InfoHash) Decision {
	switch {
	case hash == nil:
		return NeedData
	case *hash == f.Hash:
		return Block
	default:
		return Pass
	}
}

// AllowPeerID allows the peer.
type AllowPeerID struct {
	Passthrough

	PeerID wire.PeerID
}

// OnPeerID implements Filter.
func (f AllowPeerID) OnPeerID(peerID *wire.PeerID) Decision {
	switch {
	case peerID == nil:
		return NeedData
	case *peerID == f.PeerID:
		return Allow
	default:
		return Pass
	}
}

// BlockPeerID blocks the peer.
type BlockPeerID struct {
	Passthrough

	PeerID wire.PeerID
}

// OnPeerID implements Filter.
func (f BlockPeerID) OnPeerID(peerID *wire.PeerID) Decision {
	switch {
	case peerID == nil:
		return NeedData
	case *peerID == f.PeerID:
		return Block
	default:
		return Pass
	}
}

// RequireProtocol blocks every protocol other than the configured one.
type RequireProtocol struct {
	Passthrough

	Protocol wire.Protocol
}

// OnProtocol implements Filter.
func (f RequireProtocol) OnProtocol(protocol *wire.Protocol) Decision {
	switch {
	case protocol == nil:
		return NeedData
	case *protocol == f.Protocol:
		return Pass
	default:
		return Block
	}
}

// AllowPrefix allows addresses belonging to the network.
type AllowPrefix struct {
	Passthrough

	Prefix netip.Prefix
}

// OnAddr implements Filter.
func (f AllowPrefix) OnAddr(addr *netip.AddrPort) Decision {
	switch {
	case addr == nil:
		return NeedData
	case f.Prefix.Contains(addr.Addr().Unmap()):
		return Allow
	default:
		return Pass
	}
}

// BlockPrefix blocks addresses belonging to the network.
type BlockPrefix struct {
	Passthrough

	Prefix netip.Prefix
}

// OnAddr implements Filter.
func (f BlockPrefix) OnAddr(addr *netip.AddrPort) Decision {
	switch {
	case addr == nil:
		return NeedData
	case f.Prefix.Contains(addr.Addr().Unmap()):
		return Block
	default:
		return Pass
	}
}
