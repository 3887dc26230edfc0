package peerwire

// Command is submitted to the manager.
type Command interface {
	isCommand()
}

// AddPeer starts managing the connection.
type AddPeer struct {
	Info PeerInfo
	Conn Conn
}

// RemovePeer stops managing the peer.
type RemovePeer struct {
	Info PeerInfo
}

// SendMessage sends message to the peer.
type SendMessage struct {
	Info    PeerInfo
	ID      MessageID
	Message any
}

func (AddPeer) isCommand()     {}
func (RemovePeer) isCommand()  {}
func (SendMessage) isCommand() {}

// Event is produced by the manager.
type Event interface {
	Peer() PeerInfo
}

// PeerAdded is emitted when session of the peer starts.
type PeerAdded struct {
	Info PeerInfo
}

// PeerRemoved is emitted when peer was removed by RemovePeer.
type PeerRemoved struct {
	Info PeerInfo
}

// SentMessage is emitted when message was written to the connection.
type SentMessage struct {
	Info PeerInfo
	ID   MessageID
}

// ReceivedMessage is emitted for every message received from the peer, except keep-alives.
type ReceivedMessage struct {
	Info    PeerInfo
	Message any
}

// PeerDisconnect is emitted when peer stopped responding.
type PeerDisconnect struct {
	Info PeerInfo
}

// PeerError is emitted when connection of the peer failed.
type PeerError struct {
	Info PeerInfo
	Err  error
}

// Peer returns peer the event is about.
func (e PeerAdded) Peer() PeerInfo { return e.Info }

// Peer returns peer the event is about.
func (e PeerRemoved) Peer() PeerInfo { return e.Info }

// Peer returns peer the event is about.
func (e SentMessage) Peer() PeerInfo { return e.Info }

// Peer returns peer the event is about.
func (e ReceivedMessage) Peer() PeerInfo { return e.Info }

// Peer returns peer the event is about.
func (e PeerDisconnect) Peer() PeerInfo { return e.Info }

// Peer returns peer the event is about.
func (e PeerError) Peer() PeerInfo { return e.Info }

func isTerminal(e Event) bool {
	switch e.(type) {
	case PeerRemoved, PeerDisconnect, PeerError:
		return true
	default:
		return false
	}
}
