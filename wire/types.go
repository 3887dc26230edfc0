package wire

const (
	// PeerIDLength is the length of peer ID.
	PeerIDLength = 20

	// InfoHashLength is the length of info hash.
	InfoHashLength = 20

	// ProtocolBitTorrent is the protocol identifier of BitTorrent peer wire.
	ProtocolBitTorrent Protocol = "BitTorrent protocol"
)

type (
	// PeerID defines peer ID.
	PeerID [PeerIDLength]byte

	// InfoHash identifies the content the connection is for.
	InfoHash [InfoHashLength]byte

	// Protocol is the protocol identifier announced at the beginning of the handshake.
	Protocol string
)

// Hello is the first message of the handshake.
type Hello struct {
	Protocol Protocol
	InfoHash InfoHash
}

// Identity is the message completing the handshake.
type Identity struct {
	PeerID     PeerID
	ListenAddr string
}

// KeepAlive is sent to prevent the connection from timing out.
type KeepAlive struct{}

// Choke informs the peer it is choked.
type Choke struct{}

// Unchoke informs the peer it is unchoked.
type Unchoke struct{}

// Interested informs the peer we are interested in its pieces.
type Interested struct{}

// NotInterested informs the peer we are not interested in its pieces.
type NotInterested struct{}

// Have announces a piece.
type Have struct {
	Index uint64
}

// Bitfield announces all the pieces.
type Bitfield struct {
	Bits []byte
}

// Request asks for a block.
type Request struct {
	Index  uint64
	Begin  uint64
	Length uint64
}

// Piece carries a block.
type Piece struct {
	Index uint64
	Begin uint64
	Block []byte
}

// Cancel withdraws a request.
type Cancel struct {
	Index  uint64
	Begin  uint64
	Length uint64
}
