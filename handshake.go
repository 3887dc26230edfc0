package peerwire

import (
	"context"
	"net"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/outofforest/logger"
	"github.com/outofforest/peerwire/filter"
	"github.com/outofforest/peerwire/wire"
	"github.com/outofforest/proton"
	"github.com/outofforest/resonance"
)

// Address of inbound connection is judged when it is accepted, before the handshake starts.
var (
	inboundAttrs  = []filter.Attribute{filter.AttrProtocol, filter.AttrHash, filter.AttrPeerID}
	outboundAttrs = []filter.Attribute{filter.AttrProtocol, filter.AttrHash, filter.AttrPeerID, filter.AttrAddr}
)

// PeerFunc is called for every peer which completed the handshake.
// Connection stays open until it is closed by the receiver.
type PeerFunc func(ctx context.Context, info PeerInfo, conn Conn) error

// HandshakerConfig is the configuration of handshaker.
type HandshakerConfig struct {
	// PeerID is our peer ID.
	PeerID wire.PeerID

	// ListenAddr is the host:port address announced to the peers.
	ListenAddr string

	// Protocol is the protocol identifier, BitTorrent one is used if empty.
	Protocol wire.Protocol

	// MaxMessageSize is the maximum size of the message exchanged with peers.
	MaxMessageSize uint64

	// Filters judge the handshakes. Empty set is created if nil.
	Filters *filter.Filters
}

// Handshaker establishes peer connections accepted by the filters.
type Handshaker struct {
	config  HandshakerConfig
	filters *filter.Filters
}

// NewHandshaker creates handshaker.
func NewHandshaker(config HandshakerConfig) (*Handshaker, error) {
	if config.MaxMessageSize == 0 {
		return nil, errors.New("max message size not specified")
	}
	if err := validateListenAddr(config.ListenAddr); err != nil {
		return nil, err
	}
	if config.Protocol == "" {
		config.Protocol = wire.ProtocolBitTorrent
	}

	filters := config.Filters
	if filters == nil {
		filters = filter.New()
	}

	return &Handshaker{
		config:  config,
		filters: filters,
	}, nil
}

// Filters returns filters consulted by the handshaker.
func (h *Handshaker) Filters() *filter.Filters {
	return h.filters
}

// Run accepts inbound connections.
func (h *Handshaker) Run(ctx context.Context, ls net.Listener, onPeer PeerFunc) error {
	log := logger.Get(ctx)

	gated := &gatedListener{
		Listener: ls,
		ctx:      ctx,
		filters:  h.filters,
		log:      log,
	}

	return resonance.RunServer(ctx, gated, h.connConfig(),
		func(ctx context.Context, c *resonance.Connection) error {
			if err := h.complete(ctx, c, onPeer); err != nil && ctx.Err() == nil {
				log.Debug("Inbound handshake failed", zap.Error(err))
			}
			return nil
		})
}

// Connect initiates the handshake with the peer.
func (h *Handshaker) Connect(ctx context.Context, addr string, hash wire.InfoHash, onPeer PeerFunc) error {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return errors.WithStack(err)
	}

	addrPort := tcpAddr.AddrPort()
	protocol := h.config.Protocol
	attrs := filter.Attributes{
		Addr:     &addrPort,
		Protocol: &protocol,
		Hash:     &hash,
	}
	if err := h.judge(attrs, false, outboundAttrs); err != nil {
		return err
	}

	return resonance.RunClient(ctx, addr, h.connConfig(),
		func(ctx context.Context, c *resonance.Connection) error {
			m := wire.NewMarshaller()

			if err := h.introduce(c, m, hash); err != nil {
				return err
			}

			hello, err := receive[*wire.Hello](c, m)
			if err != nil {
				return err
			}
			if hello.Protocol != protocol {
				return errors.Errorf("unexpected protocol %q", hello.Protocol)
			}
			if hello.InfoHash != hash {
				return errors.Errorf("info hash mismatch, expected %x, got %x", hash, hello.InfoHash)
			}

			identity, err := receive[*wire.Identity](c, m)
			if err != nil {
				return err
			}
			if identity.PeerID == h.config.PeerID {
				return errors.WithStack(ErrSelfConnection)
			}

			attrs.PeerID = &identity.PeerID
			if err := h.judge(attrs, true, outboundAttrs); err != nil {
				return err
			}

			return h.hold(ctx, c, m, PeerInfo{
				Addr:   addr,
				PeerID: identity.PeerID,
				Hash:   hash,
			}, onPeer)
		})
}

func (h *Handshaker) complete(ctx context.Context, c *resonance.Connection, onPeer PeerFunc) error {
	m := wire.NewMarshaller()

	hello, err := receive[*wire.Hello](c, m)
	if err != nil {
		return err
	}

	attrs := filter.Attributes{Protocol: &hello.Protocol}
	if err := h.judge(attrs, false, inboundAttrs); err != nil {
		return err
	}
	if hello.Protocol != h.config.Protocol {
		return errors.Errorf("unexpected protocol %q", hello.Protocol)
	}

	attrs.Hash = &hello.InfoHash
	if err := h.judge(attrs, false, inboundAttrs); err != nil {
		return err
	}

	identity, err := receive[*wire.Identity](c, m)
	if err != nil {
		return err
	}
	if identity.PeerID == h.config.PeerID {
		// Initiator is us, let it recognize itself too.
		_ = h.introduce(c, m, hello.InfoHash)
		return errors.WithStack(ErrSelfConnection)
	}
	if err := validateListenAddr(identity.ListenAddr); err != nil {
		return err
	}

	attrs.PeerID = &identity.PeerID
	if err := h.judge(attrs, true, inboundAttrs); err != nil {
		return err
	}

	// Nothing is revealed to the peer until it is fully admitted.
	if err := h.introduce(c, m, hello.InfoHash); err != nil {
		return err
	}

	return h.hold(ctx, c, m, PeerInfo{
		Addr:   identity.ListenAddr,
		PeerID: identity.PeerID,
		Hash:   hello.InfoHash,
	}, onPeer)
}

func (h *Handshaker) introduce(c *resonance.Connection, m proton.Marshaller, hash wire.InfoHash) error {
	if err := c.SendProton(&wire.Hello{
		Protocol: h.config.Protocol,
		InfoHash: hash,
	}, m); err != nil {
		return err
	}
	return c.SendProton(&wire.Identity{
		PeerID:     h.config.PeerID,
		ListenAddr: h.config.ListenAddr,
	}, m)
}

// judge returns error if filters rejected the handshake.
// Verdict still pending once all the data are known is a rejection.
func (h *Handshaker) judge(attrs filter.Attributes, final bool, selected []filter.Attribute) error {
	switch h.filters.EvaluateOnly(attrs, selected...) {
	case filter.Reject:
		return errors.WithStack(ErrHandshakeRejected)
	case filter.Pending:
		if final {
			return errors.Wrap(ErrHandshakeRejected, "filters undecided")
		}
	}
	return nil
}

func (h *Handshaker) hold(
	ctx context.Context,
	c *resonance.Connection,
	m proton.Marshaller,
	info PeerInfo,
	onPeer PeerFunc,
) error {
	conn := newResonanceConn(c, m)
	if err := onPeer(ctx, info, conn); err != nil {
		_ = conn.Close()
		return err
	}

	select {
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	case <-conn.Done():
		return nil
	}
}

func (h *Handshaker) connConfig() resonance.Config {
	return resonance.Config{
		MaxMessageSize: h.config.MaxMessageSize,
	}
}

func validateListenAddr(addr string) error {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return errors.Wrapf(err, "invalid listen address %q", addr)
	}
	return nil
}

func receive[T any](c *resonance.Connection, m proton.Marshaller) (T, error) {
	msg, err := c.ReceiveProton(m)
	if err != nil {
		var t T
		return t, err
	}

	t, ok := msg.(T)
	if !ok {
		return t, errors.Errorf("unexpected message %T", msg)
	}
	return t, nil
}

// gatedListener drops connections coming from addresses rejected by the filters.
type gatedListener struct {
	net.Listener

	ctx     context.Context
	filters *filter.Filters
	log     *zap.Logger
}

func (l *gatedListener) Accept() (net.Conn, error) {
	for {
		conn, err := l.Listener.Accept()
		if err != nil {
			return nil, err
		}
		// Server wakes its accept loop up by dialing itself on shutdown, that connection must get through.
		if l.ctx.Err() != nil || l.admit(conn.RemoteAddr()) {
			return conn, nil
		}

		l.log.Debug("Connection rejected", zap.Stringer("addr", conn.RemoteAddr()))
		_ = conn.Close()
	}
}

func (l *gatedListener) admit(addr net.Addr) bool {
	tcpAddr, ok := addr.(*net.TCPAddr)
	if !ok {
		return true
	}

	addrPort := tcpAddr.AddrPort()
	switch l.filters.Decide(filter.AttrAddr, filter.Attributes{Addr: &addrPort}) {
	case filter.Block, filter.NeedData:
		return false
	default:
		return true
	}
}
