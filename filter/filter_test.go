package filter_test

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/peerwire/filter"
	"github.com/outofforest/peerwire/wire"
)

var (
	allowedHash = wire.InfoHash{55, 55, 55}
	otherHash   = wire.InfoHash{54, 54, 54}
)

func TestWhitelist(t *testing.T) {
	requireT := require.New(t)

	filters := filter.New(filter.BlockAllHashes{}, filter.AllowHash{Hash: allowedHash})

	requireT.Equal(filter.Allow, filters.Decide(filter.AttrHash, filter.Attributes{Hash: &allowedHash}))
	requireT.Equal(filter.Block, filters.Decide(filter.AttrHash, filter.Attributes{Hash: &otherHash}))
	requireT.Equal(filter.NeedData, filters.Decide(filter.AttrHash, filter.Attributes{}))

	requireT.Equal(filter.Admit, filters.Evaluate(filter.Attributes{Hash: &allowedHash}))
	requireT.Equal(filter.Reject, filters.Evaluate(filter.Attributes{Hash: &otherHash}))
	requireT.Equal(filter.Pending, filters.Evaluate(filter.Attributes{}))
}

func TestNoFiltersAdmit(t *testing.T) {
	requireT := require.New(t)

	filters := filter.New()
	requireT.Equal(filter.Pass, filters.Decide(filter.AttrHash, filter.Attributes{}))
	requireT.Equal(filter.Admit, filters.Evaluate(filter.Attributes{}))
	requireT.Equal(filter.Admit, filters.Evaluate(filter.Attributes{Hash: &otherHash}))
}

func TestEvaluateIsRepeatable(t *testing.T) {
	requireT := require.New(t)

	filters := filter.New(filter.BlockAllHashes{}, filter.AllowHash{Hash: allowedHash})
	attrs := filter.Attributes{Hash: &allowedHash}
	for range 10 {
		requireT.Equal(filter.Admit, filters.Evaluate(attrs))
	}
}

func TestBlockOnAnyAttributeRejects(t *testing.T) {
	requireT := require.New(t)

	peerID := wire.PeerID{1}
	filters := filter.New(filter.BlockPeerID{PeerID: peerID}, filter.AllowHash{Hash: allowedHash})

	// Hash is still needed, but the peer is already blocked.
	requireT.Equal(filter.Reject, filters.Evaluate(filter.Attributes{PeerID: &peerID}))

	otherPeerID := wire.PeerID{2}
	requireT.Equal(filter.Pending, filters.Evaluate(filter.Attributes{PeerID: &otherPeerID}))
	requireT.Equal(filter.Admit, filters.Evaluate(filter.Attributes{PeerID: &otherPeerID, Hash: &otherHash}))
}

func TestAddIsIdempotent(t *testing.T) {
	requireT := require.New(t)

	filters := filter.New()
	filters.Add(filter.AllowHash{Hash: allowedHash})
	filters.Add(filter.AllowHash{Hash: allowedHash})
	requireT.Equal(1, filters.Len())

	filters.Add(filter.AllowHash{Hash: otherHash})
	requireT.Equal(2, filters.Len())
}

func TestRemove(t *testing.T) {
	requireT := require.New(t)

	filters := filter.New(filter.BlockAllHashes{}, filter.AllowHash{Hash: allowedHash})

	requireT.False(filters.Remove(filter.AllowHash{Hash: otherHash}))
	requireT.True(filters.Remove(filter.AllowHash{Hash: allowedHash}))
	requireT.False(filters.Remove(filter.AllowHash{Hash: allowedHash}))
	requireT.Equal(1, filters.Len())

	requireT.Equal(filter.Reject, filters.Evaluate(filter.Attributes{Hash: &allowedHash}))

	filters.Clear()
	requireT.Equal(0, filters.Len())
	requireT.Equal(filter.Admit, filters.Evaluate(filter.Attributes{Hash: &allowedHash}))
}

type hashList struct {
	filter.Passthrough

	hashes []wire.InfoHash
}

func (f hashList) OnHash(hash *wire.InfoHash) filter.Decision {
	if hash == nil {
		return filter.NeedData
	}
	for _, h := range f.hashes {
		if h == *hash {
			return filter.Allow
		}
	}
	return filter.Pass
}

func TestRemoveNonComparable(t *testing.T) {
	requireT := require.New(t)

	filters := filter.New(hashList{hashes: []wire.InfoHash{allowedHash}})
	filters.Add(hashList{hashes: []wire.InfoHash{allowedHash}})
	requireT.Equal(1, filters.Len())

	requireT.True(filters.Remove(hashList{hashes: []wire.InfoHash{allowedHash}}))
	requireT.Equal(0, filters.Len())
}

type taggedFilter struct {
	filter.Passthrough

	Tag any
}

func TestComparableTypeHoldingNonComparableValue(t *testing.T) {
	requireT := require.New(t)

	filters := filter.New(taggedFilter{Tag: []byte{1}})
	filters.Add(taggedFilter{Tag: []byte{1}})
	filters.Add(taggedFilter{Tag: []byte{2}})
	filters.Add(taggedFilter{Tag: 1})
	requireT.Equal(3, filters.Len())

	requireT.True(filters.Remove(taggedFilter{Tag: []byte{1}}))
	requireT.True(filters.Remove(taggedFilter{Tag: 1}))
	requireT.False(filters.Remove(taggedFilter{Tag: 1}))
	requireT.Equal(1, filters.Len())
}

type funcFilter struct {
	filter.Passthrough

	Fn func(hash *wire.InfoHash) filter.Decision
}

func (f funcFilter) OnHash(hash *wire.InfoHash) filter.Decision {
	return f.Fn(hash)
}

func blockAll(*wire.InfoHash) filter.Decision {
	return filter.Block
}

func allowAll(*wire.InfoHash) filter.Decision {
	return filter.Allow
}

func TestFuncFilter(t *testing.T) {
	requireT := require.New(t)

	filters := filter.New(funcFilter{Fn: blockAll})
	filters.Add(funcFilter{Fn: blockAll})
	requireT.Equal(1, filters.Len())

	filters.Add(funcFilter{Fn: allowAll})
	requireT.Equal(2, filters.Len())

	requireT.True(filters.Remove(funcFilter{Fn: blockAll}))
	requireT.False(filters.Remove(funcFilter{Fn: blockAll}))
	requireT.Equal(filter.Admit, filters.Evaluate(filter.Attributes{Hash: &otherHash}))
}

func TestPointerFilterIdentity(t *testing.T) {
	requireT := require.New(t)

	f1 := &hashList{hashes: []wire.InfoHash{allowedHash}}
	f2 := &hashList{hashes: []wire.InfoHash{allowedHash}}

	filters := filter.New(f1, f1, f2)
	requireT.Equal(2, filters.Len())

	requireT.True(filters.Remove(f1))
	requireT.False(filters.Remove(f1))
	requireT.True(filters.Remove(f2))
	requireT.Equal(0, filters.Len())
}

func TestProtocol(t *testing.T) {
	requireT := require.New(t)

	filters := filter.New(filter.RequireProtocol{Protocol: wire.ProtocolBitTorrent})

	other := wire.Protocol("other")
	bt := wire.ProtocolBitTorrent
	requireT.Equal(filter.Pending, filters.Evaluate(filter.Attributes{}))
	requireT.Equal(filter.Reject, filters.Evaluate(filter.Attributes{Protocol: &other}))
	requireT.Equal(filter.Admit, filters.Evaluate(filter.Attributes{Protocol: &bt}))
}

func TestPrefix(t *testing.T) {
	requireT := require.New(t)

	filters := filter.New(
		filter.BlockPrefix{Prefix: netip.MustParsePrefix("10.0.0.0/8")},
		filter.AllowPrefix{Prefix: netip.MustParsePrefix("10.1.0.0/16")},
	)

	blocked := netip.MustParseAddrPort("10.2.3.4:6881")
	allowed := netip.MustParseAddrPort("10.1.3.4:6881")
	outside := netip.MustParseAddrPort("192.168.1.1:6881")
	mapped := netip.MustParseAddrPort("[::ffff:10.2.3.4]:6881")

	requireT.Equal(filter.Block, filters.Decide(filter.AttrAddr, filter.Attributes{Addr: &blocked}))
	requireT.Equal(filter.Allow, filters.Decide(filter.AttrAddr, filter.Attributes{Addr: &allowed}))
	requireT.Equal(filter.Pass, filters.Decide(filter.AttrAddr, filter.Attributes{Addr: &outside}))
	requireT.Equal(filter.Block, filters.Decide(filter.AttrAddr, filter.Attributes{Addr: &mapped}))
	requireT.Equal(filter.NeedData, filters.Decide(filter.AttrAddr, filter.Attributes{}))
}
