package filter

import (
	"net/netip"
	"reflect"
	"sync"

	"github.com/samber/lo"

	"github.com/outofforest/peerwire/wire"
)

// Filter judges handshake attributes as they become known.
// nil argument means the value hasn't been received yet.
// Filters must be pure functions of their arguments because they are asked again
// each time the handshake progresses.
// Filters are identified by value when added or removed. Pointers, channels and funcs
// they hold, including pointer filters themselves, are identified by address.
type Filter interface {
	OnAddr(addr *netip.AddrPort) Decision
	OnProtocol(protocol *wire.Protocol) Decision
	OnHash(hash *wire.InfoHash) Decision
	OnPeerID(peerID *wire.PeerID) Decision
}

// Passthrough answers Pass for every attribute. Embed it to override only the relevant ones.
type Passthrough struct{}

// OnAddr implements Filter.
func (Passthrough) OnAddr(*netip.AddrPort) Decision {
	return Pass
}

// OnProtocol implements Filter.
func (Passthrough) OnProtocol(*wire.Protocol) Decision {
	return Pass
}

// OnHash implements Filter.
func (Passthrough) OnHash(*wire.InfoHash) Decision {
	return Pass
}

// OnPeerID implements Filter.
func (Passthrough) OnPeerID(*wire.PeerID) Decision {
	return Pass
}

// Attribute is the part of the handshake being judged.
type Attribute int

// Attributes in the order they become known during the handshake.
const (
	AttrProtocol Attribute = iota
	AttrHash
	AttrPeerID
	AttrAddr
)

var attributes = []Attribute{AttrProtocol, AttrHash, AttrPeerID, AttrAddr}

func (a Attribute) String() string {
	switch a {
	case AttrProtocol:
		return "protocol"
	case AttrHash:
		return "hash"
	case AttrPeerID:
		return "peer-id"
	case AttrAddr:
		return "addr"
	default:
		return "unknown"
	}
}

// Attributes holds the handshake data known so far.
type Attributes struct {
	Addr     *netip.AddrPort
	Protocol *wire.Protocol
	Hash     *wire.InfoHash
	PeerID   *wire.PeerID
}

func (a Attributes) ask(f Filter, attr Attribute) Decision {
	switch attr {
	case AttrProtocol:
		return f.OnProtocol(a.Protocol)
	case AttrHash:
		return f.OnHash(a.Hash)
	case AttrPeerID:
		return f.OnPeerID(a.PeerID)
	case AttrAddr:
		return f.OnAddr(a.Addr)
	default:
		return Pass
	}
}

// Verdict is the admission decision for the whole handshake.
type Verdict int

const (
	// Pending means some filter waits for more data.
	Pending Verdict = iota

	// Admit means handshake may complete.
	Admit

	// Reject means handshake must be aborted.
	Reject
)

func (v Verdict) String() string {
	switch v {
	case Pending:
		return "pending"
	case Admit:
		return "admit"
	case Reject:
		return "reject"
	default:
		return "unknown"
	}
}

// Filters is the set of filters consulted during handshakes.
type Filters struct {
	mu      sync.RWMutex
	filters []Filter
}

// New creates filter set.
func New(filters ...Filter) *Filters {
	f := &Filters{}
	for _, filter := range filters {
		f.Add(filter)
	}
	return f
}

// Add adds filter unless an equal one is already there.
func (f *Filters) Add(filter Filter) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if lo.ContainsBy(f.filters, func(existing Filter) bool {
		return equal(existing, filter)
	}) {
		return
	}
	f.filters = append(f.filters, filter)
}

// Remove removes filter equal to the provided one.
func (f *Filters) Remove(filter Filter) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := len(f.filters)
	f.filters = lo.Reject(f.filters, func(existing Filter, _ int) bool {
		return equal(existing, filter)
	})
	return len(f.filters) != n
}

// Clear removes all the filters.
func (f *Filters) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.filters = nil
}

// Len returns the number of filters.
func (f *Filters) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return len(f.filters)
}

// Decide combines decisions of all the filters about one attribute.
func (f *Filters) Decide(attr Attribute, attrs Attributes) Decision {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.decide(attr, attrs)
}

// Evaluate judges the handshake based on the attributes known so far.
func (f *Filters) Evaluate(attrs Attributes) Verdict {
	return f.EvaluateOnly(attrs, attributes...)
}

// EvaluateOnly judges the handshake taking only the selected attributes into account.
// It is used when the other attributes were judged at another stage of the connection.
func (f *Filters) EvaluateOnly(attrs Attributes, selected ...Attribute) Verdict {
	f.mu.RLock()
	defer f.mu.RUnlock()

	verdict := Admit
	for _, attr := range selected {
		switch f.decide(attr, attrs) {
		case Block:
			return Reject
		case NeedData:
			verdict = Pending
		}
	}
	return verdict
}

func (f *Filters) decide(attr Attribute, attrs Attributes) Decision {
	return Combine(lo.Map(f.filters, func(filter Filter, _ int) Decision {
		return attrs.ask(filter, attr)
	})...)
}

// equal reports whether filters are the same. Pointers, channels and funcs are compared by identity,
// everything else by value.
func equal(f1, f2 Filter) bool {
	return sameValue(reflect.ValueOf(f1), reflect.ValueOf(f2))
}

func sameValue(v1, v2 reflect.Value) bool {
	if !v1.IsValid() || !v2.IsValid() {
		return v1.IsValid() == v2.IsValid()
	}
	if v1.Type() != v2.Type() {
		return false
	}

	switch v1.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return v1.Pointer() == v2.Pointer()
	case reflect.Interface:
		return sameValue(v1.Elem(), v2.Elem())
	case reflect.Struct:
		for i := range v1.NumField() {
			if !sameValue(v1.Field(i), v2.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Slice:
		if v1.IsNil() != v2.IsNil() {
			return false
		}
		fallthrough
	case reflect.Array:
		if v1.Len() != v2.Len() {
			return false
		}
		for i := range v1.Len() {
			if !sameValue(v1.Index(i), v2.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Map:
		if v1.IsNil() != v2.IsNil() || v1.Len() != v2.Len() {
			return false
		}
		return sameEntries(v1, v2)
	case reflect.Bool:
		return v1.Bool() == v2.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v1.Int() == v2.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v1.Uint() == v2.Uint()
	case reflect.Float32, reflect.Float64:
		return v1.Float() == v2.Float()
	case reflect.Complex64, reflect.Complex128:
		return v1.Complex() == v2.Complex()
	case reflect.String:
		return v1.String() == v2.String()
	default:
		return false
	}
}

func sameEntries(m1, m2 reflect.Value) bool {
	iter1 := m1.MapRange()
	for iter1.Next() {
		found := false
		iter2 := m2.MapRange()
		for iter2.Next() {
			if sameValue(iter1.Key(), iter2.Key()) {
				found = sameValue(iter1.Value(), iter2.Value())
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
