package peerwire

import (
	"sync"

	"github.com/outofforest/proton"
	"github.com/outofforest/resonance"
)

var _ Conn = &resonanceConn{}

// resonanceConn exchanges proton messages over resonance connection.
type resonanceConn struct {
	conn       *resonance.Connection
	marshaller proton.Marshaller

	closeOnce sync.Once
	closed    chan struct{}
}

func newResonanceConn(c *resonance.Connection, m proton.Marshaller) *resonanceConn {
	return &resonanceConn{
		conn:       c,
		marshaller: m,
		closed:     make(chan struct{}),
	}
}

func (c *resonanceConn) Send(msg any) error {
	return c.conn.SendProton(msg, c.marshaller)
}

func (c *resonanceConn) Receive() (any, error) {
	return c.conn.ReceiveProton(c.marshaller)
}

func (c *resonanceConn) Close() error {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.conn.Close()
	})
	return nil
}

// Done is closed when connection is closed.
func (c *resonanceConn) Done() <-chan struct{} {
	return c.closed
}
