package wire

// Managed provides keep-alive semantics of the peer wire messages.
type Managed struct{}

// KeepAlive returns the keep-alive message.
func (Managed) KeepAlive() any {
	return &KeepAlive{}
}

// IsKeepAlive reports whether message is a keep-alive.
func (Managed) IsKeepAlive(msg any) bool {
	_, ok := msg.(*KeepAlive)
	return ok
}
