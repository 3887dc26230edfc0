package wire

import (
	"reflect"
	"unsafe"

	"github.com/outofforest/proton"
	"github.com/outofforest/proton/helpers"
	"github.com/pkg/errors"
)

const (
	id0 uint64 = iota + 1
	id1
	id2
	id3
	id4
	id5
	id6
	id7
	id8
	id9
	id10
	id11
)

var _ proton.Marshaller = Marshaller{}

// NewMarshaller creates marshaller.
func NewMarshaller() Marshaller {
	return Marshaller{}
}

// Marshaller marshals and unmarshals messages.
type Marshaller struct {
}

// Messages returns list of the message types supported by marshaller.
func (m Marshaller) Messages() []any {
	return []any {
		Hello{},
		Identity{},
		KeepAlive{},
		Choke{},
		Unchoke{},
		Interested{},
		NotInterested{},
		Have{},
		Bitfield{},
		Request{},
		Piece{},
		Cancel{},
	}
}

// ID returns ID of message type.
func (m Marshaller) ID(msg any) (uint64, error) {
	switch msg.(type) {
	case *Hello:
		return id0, nil
	case *Identity:
		return id1, nil
	case *KeepAlive:
		return id2, nil
	case *Choke:
		return id3, nil
	case *Unchoke:
		return id4, nil
	case *Interested:
		return id5, nil
	case *NotInterested:
		return id6, nil
	case *Have:
		return id7, nil
	case *Bitfield:
		return id8, nil
	case *Request:
		return id9, nil
	case *Piece:
		return id10, nil
	case *Cancel:
		return id11, nil
	default:
		return 0, errors.Errorf("unknown message type %T", msg)
	}
}

// Size computes the size of marshalled message.
func (m Marshaller) Size(msg any) (uint64, error) {
	switch msg2 := msg.(type) {
	case *Hello:
		return size0(msg2), nil
	case *Identity:
		return size1(msg2), nil
	case *KeepAlive:
		return size2(msg2), nil
	case *Choke:
		return size3(msg2), nil
	case *Unchoke:
		return size4(msg2), nil
	case *Interested:
		return size5(msg2), nil
	case *NotInterested:
		return size6(msg2), nil
	case *Have:
		return size7(msg2), nil
	case *Bitfield:
		return size8(msg2), nil
	case *Request:
		return size9(msg2), nil
	case *Piece:
		return size10(msg2), nil
	case *Cancel:
		return size11(msg2), nil
	default:
		return 0, errors.Errorf("unknown message type %T", msg)
	}
}

// Marshal marshals message.
func (m Marshaller) Marshal(msg any, buf []byte) (retID, retSize uint64, retErr error) {
	defer helpers.RecoverMarshal(&retErr)

	switch msg2 := msg.(type) {
	case *Hello:
		return id0, marshal0(msg2, buf), nil
	case *Identity:
		return id1, marshal1(msg2, buf), nil
	case *KeepAlive:
		return id2, marshal2(msg2, buf), nil
	case *Choke:
		return id3, marshal3(msg2, buf), nil
	case *Unchoke:
		return id4, marshal4(msg2, buf), nil
	case *Interested:
		return id5, marshal5(msg2, buf), nil
	case *NotInterested:
		return id6, marshal6(msg2, buf), nil
	case *Have:
		return id7, marshal7(msg2, buf), nil
	case *Bitfield:
		return id8, marshal8(msg2, buf), nil
	case *Request:
		return id9, marshal9(msg2, buf), nil
	case *Piece:
		return id10, marshal10(msg2, buf), nil
	case *Cancel:
		return id11, marshal11(msg2, buf), nil
	default:
		return 0, 0, errors.Errorf("unknown message type %T", msg)
	}
}

// Unmarshal unmarshals message.
func (m Marshaller) Unmarshal(id uint64, buf []byte) (retMsg any, retSize uint64, retErr error) {
	defer helpers.RecoverUnmarshal(&retErr)

	switch id {
	case id0:
		msg := &Hello{}
		return msg, unmarshal0(msg, buf), nil
	case id1:
		msg := &Identity{}
		return msg, unmarshal1(msg, buf), nil
	case id2:
		msg := &KeepAlive{}
		return msg, unmarshal2(msg, buf), nil
	case id3:
		msg := &Choke{}
		return msg, unmarshal3(msg, buf), nil
	case id4:
		msg := &Unchoke{}
		return msg, unmarshal4(msg, buf), nil
	case id5:
		msg := &Interested{}
		return msg, unmarshal5(msg, buf), nil
	case id6:
		msg := &NotInterested{}
		return msg, unmarshal6(msg, buf), nil
	case id7:
		msg := &Have{}
		return msg, unmarshal7(msg, buf), nil
	case id8:
		msg := &Bitfield{}
		return msg, unmarshal8(msg, buf), nil
	case id9:
		msg := &Request{}
		return msg, unmarshal9(msg, buf), nil
	case id10:
		msg := &Piece{}
		return msg, unmarshal10(msg, buf), nil
	case id11:
		msg := &Cancel{}
		return msg, unmarshal11(msg, buf), nil
	default:
		return nil, 0, errors.Errorf("unknown ID %d", id)
	}
}

// MakePatch creates a patch.
func (m Marshaller) MakePatch(msgDst, msgSrc any, buf []byte) (retID, retSize uint64, retErr error) {
	defer helpers.RecoverMakePatch(&retErr)

	switch msg2 := msgDst.(type) {
	case *Hello:
		return id0, makePatch0(msg2, msgSrc.(*Hello), buf), nil
	case *Identity:
		return id1, makePatch1(msg2, msgSrc.(*Identity), buf), nil
	case *KeepAlive:
		return id2, makePatch2(msg2, msgSrc.(*KeepAlive), buf), nil
	case *Choke:
		return id3, makePatch3(msg2, msgSrc.(*Choke), buf), nil
	case *Unchoke:
		return id4, makePatch4(msg2, msgSrc.(*Unchoke), buf), nil
	case *Interested:
		return id5, makePatch5(msg2, msgSrc.(*Interested), buf), nil
	case *NotInterested:
		return id6, makePatch6(msg2, msgSrc.(*NotInterested), buf), nil
	case *Have:
		return id7, makePatch7(msg2, msgSrc.(*Have), buf), nil
	case *Bitfield:
		return id8, makePatch8(msg2, msgSrc.(*Bitfield), buf), nil
	case *Request:
		return id9, makePatch9(msg2, msgSrc.(*Request), buf), nil
	case *Piece:
		return id10, makePatch10(msg2, msgSrc.(*Piece), buf), nil
	case *Cancel:
		return id11, makePatch11(msg2, msgSrc.(*Cancel), buf), nil
	default:
		return 0, 0, errors.Errorf("unknown message type %T", msgDst)
	}
}

// ApplyPatch applies patch.
func (m Marshaller) ApplyPatch(msg any, buf []byte) (retSize uint64, retErr error) {
	defer helpers.RecoverApplyPatch(&retErr)

	switch msg2 := msg.(type) {
	case *Hello:
		return applyPatch0(msg2, buf), nil
	case *Identity:
		return applyPatch1(msg2, buf), nil
	case *KeepAlive:
		return applyPatch2(msg2, buf), nil
	case *Choke:
		return applyPatch3(msg2, buf), nil
	case *Unchoke:
		return applyPatch4(msg2, buf), nil
	case *Interested:
		return applyPatch5(msg2, buf), nil
	case *NotInterested:
		return applyPatch6(msg2, buf), nil
	case *Have:
		return applyPatch7(msg2, buf), nil
	case *Bitfield:
		return applyPatch8(msg2, buf), nil
	case *Request:
		return applyPatch9(msg2, buf), nil
	case *Piece:
		return applyPatch10(msg2, buf), nil
	case *Cancel:
		return applyPatch11(msg2, buf), nil
	default:
		return 0, errors.Errorf("unknown message type %T", msg)
	}
}

func size0(m *Hello) uint64 {
	var n uint64 = 21
	{
		// Protocol

		{
			l := uint64(len(m.Protocol))
			helpers.UInt64Size(l, &n)
			n += l
		}
	}
	return n
}

func marshal0(m *Hello, b []byte) uint64 {
	var o uint64
	{
		// Protocol

		{
			l := uint64(len(m.Protocol))
			helpers.UInt64Marshal(l, b, &o)
			copy(b[o:o+l], m.Protocol)
			o += l
		}
	}
	{
		// InfoHash

		copy(b[o:o+20], unsafe.Slice(&m.InfoHash[0], 20))
		o += 20
	}

	return o
}

func unmarshal0(m *Hello, b []byte) uint64 {
	var o uint64
	{
		// Protocol

		{
			var l uint64
			helpers.UInt64Unmarshal(&l, b, &o)
			if l > 0 {
				m.Protocol = Protocol(b[o:o+l])
				o += l
			}
		}
	}
	{
		// InfoHash

		copy(unsafe.Slice(&m.InfoHash[0], 20), b[o:o+20])
		o += 20
	}

	return o
}

func makePatch0(m, mSrc *Hello, b []byte) uint64 {
	var o uint64 = 1
	{
		// Protocol

		if reflect.DeepEqual(m.Protocol, mSrc.Protocol) {
			b[0] &= 0xFE
		} else {
			b[0] |= 0x01
			{
				l := uint64(len(m.Protocol))
				helpers.UInt64Marshal(l, b, &o)
				copy(b[o:o+l], m.Protocol)
				o += l
			}
		}
	}
	{
		// InfoHash

		if reflect.DeepEqual(m.InfoHash, mSrc.InfoHash) {
			b[0] &= 0xFD
		} else {
			b[0] |= 0x02
			copy(b[o:o+20], unsafe.Slice(&m.InfoHash[0], 20))
			o += 20
		}
	}

	return o
}

func applyPatch0(m *Hello, b []byte) uint64 {
	var o uint64 = 1
	{
		// Protocol

		if b[0]&0x01 != 0 {
			{
				var l uint64
				helpers.UInt64Unmarshal(&l, b, &o)
				if l > 0 {
					m.Protocol = Protocol(b[o:o+l])
					o += l
				}
			}
		}
	}
	{
		// InfoHash

		if b[0]&0x02 != 0 {
			copy(unsafe.Slice(&m.InfoHash[0], 20), b[o:o+20])
			o += 20
		}
	}

	return o
}

func size1(m *Identity) uint64 {
	var n uint64 = 21
	{
		// ListenAddr

		{
			l := uint64(len(m.ListenAddr))
			helpers.UInt64Size(l, &n)
			n += l
		}
	}
	return n
}

func marshal1(m *Identity, b []byte) uint64 {
	var o uint64
	{
		// PeerID

		copy(b[o:o+20], unsafe.Slice(&m.PeerID[0], 20))
		o += 20
	}
	{
		// ListenAddr

		{
			l := uint64(len(m.ListenAddr))
			helpers.UInt64Marshal(l, b, &o)
			copy(b[o:o+l], m.ListenAddr)
			o += l
		}
	}

	return o
}

func unmarshal1(m *Identity, b []byte) uint64 {
	var o uint64
	{
		// PeerID

		copy(unsafe.Slice(&m.PeerID[0], 20), b[o:o+20])
		o += 20
	}
	{
		// ListenAddr

		{
			var l uint64
			helpers.UInt64Unmarshal(&l, b, &o)
			if l > 0 {
				m.ListenAddr = string(b[o:o+l])
				o += l
			}
		}
	}

	return o
}

func makePatch1(m, mSrc *Identity, b []byte) uint64 {
	var o uint64 = 1
	{
		// PeerID

		if reflect.DeepEqual(m.PeerID, mSrc.PeerID) {
			b[0] &= 0xFE
		} else {
			b[0] |= 0x01
			copy(b[o:o+20], unsafe.Slice(&m.PeerID[0], 20))
			o += 20
		}
	}
	{
		// ListenAddr

		if reflect.DeepEqual(m.ListenAddr, mSrc.ListenAddr) {
			b[0] &= 0xFD
		} else {
			b[0] |= 0x02
			{
				l := uint64(len(m.ListenAddr))
				helpers.UInt64Marshal(l, b, &o)
				copy(b[o:o+l], m.ListenAddr)
				o += l
			}
		}
	}

	return o
}

func applyPatch1(m *Identity, b []byte) uint64 {
	var o uint64 = 1
	{
		// PeerID

		if b[0]&0x01 != 0 {
			copy(unsafe.Slice(&m.PeerID[0], 20), b[o:o+20])
			o += 20
		}
	}
	{
		// ListenAddr

		if b[0]&0x02 != 0 {
			{
				var l uint64
				helpers.UInt64Unmarshal(&l, b, &o)
				if l > 0 {
					m.ListenAddr = string(b[o:o+l])
					o += l
				}
			}
		}
	}

	return o
}

func size2(m *KeepAlive) uint64 {
	return 0
}

func marshal2(m *KeepAlive, b []byte) uint64 {
	return 0
}

func unmarshal2(m *KeepAlive, b []byte) uint64 {
	return 0
}

func makePatch2(m, mSrc *KeepAlive, b []byte) uint64 {
	return 0
}

func applyPatch2(m *KeepAlive, b []byte) uint64 {
	return 0
}

func size3(m *Choke) uint64 {
	return 0
}

func marshal3(m *Choke, b []byte) uint64 {
	return 0
}

func unmarshal3(m *Choke, b []byte) uint64 {
	return 0
}

func makePatch3(m, mSrc *Choke, b []byte) uint64 {
	return 0
}

func applyPatch3(m *Choke, b []byte) uint64 {
	return 0
}

func size4(m *Unchoke) uint64 {
	return 0
}

func marshal4(m *Unchoke, b []byte) uint64 {
	return 0
}

func unmarshal4(m *Unchoke, b []byte) uint64 {
	return 0
}

func makePatch4(m, mSrc *Unchoke, b []byte) uint64 {
	return 0
}

func applyPatch4(m *Unchoke, b []byte) uint64 {
	return 0
}

func size5(m *Interested) uint64 {
	return 0
}

func marshal5(m *Interested, b []byte) uint64 {
	return 0
}

func unmarshal5(m *Interested, b []byte) uint64 {
	return 0
}

func makePatch5(m, mSrc *Interested, b []byte) uint64 {
	return 0
}

func applyPatch5(m *Interested, b []byte) uint64 {
	return 0
}

func size6(m *NotInterested) uint64 {
	return 0
}

func marshal6(m *NotInterested, b []byte) uint64 {
	return 0
}

func unmarshal6(m *NotInterested, b []byte) uint64 {
	return 0
}

func makePatch6(m, mSrc *NotInterested, b []byte) uint64 {
	return 0
}

func applyPatch6(m *NotInterested, b []byte) uint64 {
	return 0
}

func size7(m *Have) uint64 {
	var n uint64 = 1
	{
		// Index

		helpers.UInt64Size(m.Index, &n)
	}
	return n
}

func marshal7(m *Have, b []byte) uint64 {
	var o uint64
	{
		// Index

		helpers.UInt64Marshal(m.Index, b, &o)
	}

	return o
}

func unmarshal7(m *Have, b []byte) uint64 {
	var o uint64
	{
		// Index

		helpers.UInt64Unmarshal(&m.Index, b, &o)
	}

	return o
}

func makePatch7(m, mSrc *Have, b []byte) uint64 {
	var o uint64 = 1
	{
		// Index

		if reflect.DeepEqual(m.Index, mSrc.Index) {
			b[0] &= 0xFE
		} else {
			b[0] |= 0x01
			helpers.UInt64Marshal(m.Index, b, &o)
		}
	}

	return o
}

func applyPatch7(m *Have, b []byte) uint64 {
	var o uint64 = 1
	{
		// Index

		if b[0]&0x01 != 0 {
			helpers.UInt64Unmarshal(&m.Index, b, &o)
		}
	}

	return o
}

func size8(m *Bitfield) uint64 {
	var n uint64 = 1
	{
		// Bits

		{
			l := uint64(len(m.Bits))
			helpers.UInt64Size(l, &n)
			n += l
		}
	}
	return n
}

func marshal8(m *Bitfield, b []byte) uint64 {
	var o uint64
	{
		// Bits

		{
			l := uint64(len(m.Bits))
			helpers.UInt64Marshal(l, b, &o)
			copy(b[o:o+l], m.Bits)
			o += l
		}
	}

	return o
}

func unmarshal8(m *Bitfield, b []byte) uint64 {
	var o uint64
	{
		// Bits

		{
			var l uint64
			helpers.UInt64Unmarshal(&l, b, &o)
			if l > 0 {
				m.Bits = make([]byte, l)
				copy(m.Bits, b[o:o+l])
				o += l
			}
		}
	}

	return o
}

func makePatch8(m, mSrc *Bitfield, b []byte) uint64 {
	var o uint64 = 1
	{
		// Bits

		if reflect.DeepEqual(m.Bits, mSrc.Bits) {
			b[0] &= 0xFE
		} else {
			b[0] |= 0x01
			{
				l := uint64(len(m.Bits))
				helpers.UInt64Marshal(l, b, &o)
				copy(b[o:o+l], m.Bits)
				o += l
			}
		}
	}

	return o
}

func applyPatch8(m *Bitfield, b []byte) uint64 {
	var o uint64 = 1
	{
		// Bits

		if b[0]&0x01 != 0 {
			{
				var l uint64
				helpers.UInt64Unmarshal(&l, b, &o)
				if l > 0 {
					m.Bits = make([]byte, l)
					copy(m.Bits, b[o:o+l])
					o += l
				}
			}
		}
	}

	return o
}

func size9(m *Request) uint64 {
	var n uint64 = 3
	{
		// Index

		helpers.UInt64Size(m.Index, &n)
	}
	{
		// Begin

		helpers.UInt64Size(m.Begin, &n)
	}
	{
		// Length

		helpers.UInt64Size(m.Length, &n)
	}
	return n
}

func marshal9(m *Request, b []byte) uint64 {
	var o uint64
	{
		// Index

		helpers.UInt64Marshal(m.Index, b, &o)
	}
	{
		// Begin

		helpers.UInt64Marshal(m.Begin, b, &o)
	}
	{
		// Length

		helpers.UInt64Marshal(m.Length, b, &o)
	}

	return o
}

func unmarshal9(m *Request, b []byte) uint64 {
	var o uint64
	{
		// Index

		helpers.UInt64Unmarshal(&m.Index, b, &o)
	}
	{
		// Begin

		helpers.UInt64Unmarshal(&m.Begin, b, &o)
	}
	{
		// Length

		helpers.UInt64Unmarshal(&m.Length, b, &o)
	}

	return o
}

func makePatch9(m, mSrc *Request, b []byte) uint64 {
	var o uint64 = 1
	{
		// Index

		if reflect.DeepEqual(m.Index, mSrc.Index) {
			b[0] &= 0xFE
		} else {
			b[0] |= 0x01
			helpers.UInt64Marshal(m.Index, b, &o)
		}
	}
	{
		// Begin

		if reflect.DeepEqual(m.Begin, mSrc.Begin) {
			b[0] &= 0xFD
		} else {
			b[0] |= 0x02
			helpers.UInt64Marshal(m.Begin, b, &o)
		}
	}
	{
		// Length

		if reflect.DeepEqual(m.Length, mSrc.Length) {
			b[0] &= 0xFB
		} else {
			b[0] |= 0x04
			helpers.UInt64Marshal(m.Length, b, &o)
		}
	}

	return o
}

func applyPatch9(m *Request, b []byte) uint64 {
	var o uint64 = 1
	{
		// Index

		if b[0]&0x01 != 0 {
			helpers.UInt64Unmarshal(&m.Index, b, &o)
		}
	}
	{
		// Begin

		if b[0]&0x02 != 0 {
			helpers.UInt64Unmarshal(&m.Begin, b, &o)
		}
	}
	{
		// Length

		if b[0]&0x04 != 0 {
			helpers.UInt64Unmarshal(&m.Length, b, &o)
		}
	}

	return o
}

func size10(m *Piece) uint64 {
	var n uint64 = 3
	{
		// Index

		helpers.UInt64Size(m.Index, &n)
	}
	{
		// Begin

		helpers.UInt64Size(m.Begin, &n)
	}
	{
		// Block

		{
			l := uint64(len(m.Block))
			helpers.UInt64Size(l, &n)
			n += l
		}
	}
	return n
}

func marshal10(m *Piece, b []byte) uint64 {
	var o uint64
	{
		// Index

		helpers.UInt64Marshal(m.Index, b, &o)
	}
	{
		// Begin

		helpers.UInt64Marshal(m.Begin, b, &o)
	}
	{
		// Block

		{
			l := uint64(len(m.Block))
			helpers.UInt64Marshal(l, b, &o)
			copy(b[o:o+l], m.Block)
			o += l
		}
	}

	return o
}

func unmarshal10(m *Piece, b []byte) uint64 {
	var o uint64
	{
		// Index

		helpers.UInt64Unmarshal(&m.Index, b, &o)
	}
	{
		// Begin

		helpers.UInt64Unmarshal(&m.Begin, b, &o)
	}
	{
		// Block

		{
			var l uint64
			helpers.UInt64Unmarshal(&l, b, &o)
			if l > 0 {
				m.Block = make([]byte, l)
				copy(m.Block, b[o:o+l])
				o += l
			}
		}
	}

	return o
}

func makePatch10(m, mSrc *Piece, b []byte) uint64 {
	var o uint64 = 1
	{
		// Index

		if reflect.DeepEqual(m.Index, mSrc.Index) {
			b[0] &= 0xFE
		} else {
			b[0] |= 0x01
			helpers.UInt64Marshal(m.Index, b, &o)
		}
	}
	{
		// Begin

		if reflect.DeepEqual(m.Begin, mSrc.Begin) {
			b[0] &= 0xFD
		} else {
			b[0] |= 0x02
			helpers.UInt64Marshal(m.Begin, b, &o)
		}
	}
	{
		// Block

		if reflect.DeepEqual(m.Block, mSrc.Block) {
			b[0] &= 0xFB
		} else {
			b[0] |= 0x04
			{
				l := uint64(len(m.Block))
				helpers.UInt64Marshal(l, b, &o)
				copy(b[o:o+l], m.Block)
				o += l
			}
		}
	}

	return o
}

func applyPatch10(m *Piece, b []byte) uint64 {
	var o uint64 = 1
	{
		// Index

		if b[0]&0x01 != 0 {
			helpers.UInt64Unmarshal(&m.Index, b, &o)
		}
	}
	{
		// Begin

		if b[0]&0x02 != 0 {
			helpers.UInt64Unmarshal(&m.Begin, b, &o)
		}
	}
	{
		// Block

		if b[0]&0x04 != 0 {
			{
				var l uint64
				helpers.UInt64Unmarshal(&l, b, &o)
				if l > 0 {
					m.Block = make([]byte, l)
					copy(m.Block, b[o:o+l])
					o += l
				}
			}
		}
	}

	return o
}

func size11(m *Cancel) uint64 {
	var n uint64 = 3
	{
		// Index

		helpers.UInt64Size(m.Index, &n)
	}
	{
		// Begin

		helpers.UInt64Size(m.Begin, &n)
	}
	{
		// Length

		helpers.UInt64Size(m.Length, &n)
	}
	return n
}

func marshal11(m *Cancel, b []byte) uint64 {
	var o uint64
	{
		// Index

		helpers.UInt64Marshal(m.Index, b, &o)
	}
	{
		// Begin

		helpers.UInt64Marshal(m.Begin, b, &o)
	}
	{
		// Length

		helpers.UInt64Marshal(m.Length, b, &o)
	}

	return o
}

func unmarshal11(m *Cancel, b []byte) uint64 {
	var o uint64
	{
		// Index

		helpers.UInt64Unmarshal(&m.Index, b, &o)
	}
	{
		// Begin

		helpers.UInt64Unmarshal(&m.Begin, b, &o)
	}
	{
		// Length

		helpers.UInt64Unmarshal(&m.Length, b, &o)
	}

	return o
}

func makePatch11(m, mSrc *Cancel, b []byte) uint64 {
	var o uint64 = 1
	{
		// Index

		if reflect.DeepEqual(m.Index, mSrc.Index) {
			b[0] &= 0xFE
		} else {
			b[0] |= 0x01
			helpers.UInt64Marshal(m.Index, b, &o)
		}
	}
	{
		// Begin

		if reflect.DeepEqual(m.Begin, mSrc.Begin) {
			b[0] &= 0xFD
		} else {
			b[0] |= 0x02
			helpers.UInt64Marshal(m.Begin, b, &o)
		}
	}
	{
		// Length

		if reflect.DeepEqual(m.Length, mSrc.Length) {
			b[0] &= 0xFB
		} else {
			b[0] |= 0x04
			helpers.UInt64Marshal(m.Length, b, &o)
		}
	}

	return o
}

func applyPatch11(m *Cancel, b []byte) uint64 {
	var o uint64 = 1
	{
		// Index

		if b[0]&0x01 != 0 {
			helpers.UInt64Unmarshal(&m.Index, b, &o)
		}
	}
	{
		// Begin

		if b[0]&0x02 != 0 {
			helpers.UInt64Unmarshal(&m.Begin, b, &o)
		}
	}
	{
		// Length

		if b[0]&0x04 != 0 {
			helpers.UInt64Unmarshal(&m.Length, b, &o)
		}
	}

	return o
}
