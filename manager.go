package peerwire

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/outofforest/logger"
	"github.com/outofforest/parallel"
)

type addRequest struct {
	Cmd    AddPeer
	Wake   chan<- struct{}
	Result chan<- error
}

type lookupRequest struct {
	Info   PeerInfo
	Result chan<- *session
}

// Manager supervises sessions of the admitted peers.
type Manager struct {
	config Config
	clock  clock.Clock
	tick   time.Duration

	addCh      chan addRequest
	lookupCh   chan lookupRequest
	snapshotCh chan chan<- []*session
	sessionCh  chan Event
	eventCh    chan Event
	stopped    chan struct{}
}

// NewManager creates new manager. Events produced by the manager are delivered to the returned channel.
func NewManager(config Config) (*Manager, <-chan Event, error) {
	if err := config.validate(); err != nil {
		return nil, nil, err
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.New()
	}

	m := &Manager{
		config:     config,
		clock:      clk,
		tick:       TimerResolution(config.HeartbeatInterval, config.HeartbeatTimeout),
		addCh:      make(chan addRequest),
		lookupCh:   make(chan lookupRequest),
		snapshotCh: make(chan chan<- []*session),
		sessionCh:  make(chan Event, config.EventBufferCapacity),
		eventCh:    make(chan Event, config.EventBufferCapacity),
		stopped:    make(chan struct{}),
	}
	return m, m.eventCh, nil
}

// Run runs manager. It must be called once.
// Disagreement between the session map and the events of the sessions is a bug which panics inside the supervisor.
// The panic is returned from Run as an error, so the error must not be ignored.
func (m *Manager) Run(ctx context.Context) error {
	defer close(m.eventCh)

	return parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
		spawn("supervisor", parallel.Fail, func(ctx context.Context) error {
			return m.supervise(ctx, spawn)
		})
		return nil
	})
}

// Submit submits command to the manager. AddPeer waits until there is a free slot for the peer.
func (m *Manager) Submit(ctx context.Context, cmd Command) error {
	add, ok := cmd.(AddPeer)
	if !ok {
		return m.TrySubmit(ctx, cmd)
	}

	for {
		wake := make(chan struct{})
		err := m.add(ctx, add, wake)
		if !errors.Is(err, ErrNotReady) {
			return err
		}

		select {
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		case <-m.stopped:
			return errors.WithStack(ErrManagerStopped)
		case <-wake:
		}
	}
}

// TrySubmit submits command to the manager. ErrNotReady is returned for AddPeer if manager runs at full capacity.
func (m *Manager) TrySubmit(ctx context.Context, cmd Command) error {
	switch cmd := cmd.(type) {
	case AddPeer:
		return m.add(ctx, cmd, nil)
	case RemovePeer:
		return m.forward(ctx, cmd.Info, removeCmd{})
	case SendMessage:
		return m.forward(ctx, cmd.Info, sendCmd{ID: cmd.ID, Message: cmd.Message})
	default:
		return errors.Errorf("unknown command %T", cmd)
	}
}

// Flush waits until all the commands queued so far are processed by the sessions.
func (m *Manager) Flush(ctx context.Context) error {
	sessions, err := m.snapshot(ctx)
	if err != nil {
		return err
	}

	for _, s := range sessions {
		done := make(chan struct{})
		if err := s.deliver(ctx, flushCmd{Done: done}); err != nil {
			var notFound PeerNotFoundError
			if errors.As(err, &notFound) {
				continue
			}
			return err
		}
		if err := s.await(ctx, done); err != nil {
			return err
		}
	}
	return nil
}

// Peers returns managed peers.
func (m *Manager) Peers(ctx context.Context) ([]PeerInfo, error) {
	sessions, err := m.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(sessions, func(s *session, _ int) PeerInfo {
		return s.info
	}), nil
}

// AddPeerFunc returns PeerFunc adding handshaken peers to the manager.
func (m *Manager) AddPeerFunc() PeerFunc {
	return func(ctx context.Context, info PeerInfo, conn Conn) error {
		return m.Submit(ctx, AddPeer{Info: info, Conn: conn})
	}
}

func (m *Manager) supervise(ctx context.Context, spawn parallel.SpawnFn) error {
	defer close(m.stopped)

	log := logger.Get(ctx)
	sessions := map[PeerInfo]*session{}
	var waiters []chan<- struct{}

	for {
		select {
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		case req := <-m.addCh:
			_, exists := sessions[req.Cmd.Info]
			switch {
			case len(sessions) >= m.config.PeerCapacity:
				if req.Wake != nil {
					waiters = append(waiters, req.Wake)
				}
				req.Result <- errors.WithStack(ErrNotReady)
			case exists:
				req.Result <- errors.WithStack(DuplicatePeerError{Info: req.Cmd.Info})
			default:
				s := m.newSession(ctx, req.Cmd)
				sessions[s.info] = s
				spawn("session", parallel.Continue, s.run)

				log.Debug("Peer admitted", zap.Stringer("peer", s.info), zap.Int("peers", len(sessions)))
				req.Result <- nil
			}
		case req := <-m.lookupCh:
			req.Result <- sessions[req.Info]
		case result := <-m.snapshotCh:
			result <- lo.Values(sessions)
		case e := <-m.sessionCh:
			if isTerminal(e) {
				info := e.Peer()
				s, exists := sessions[info]
				if !exists {
					panic(errors.Errorf("received %T for peer %s which is not managed", e, info))
				}
				delete(sessions, info)
				close(s.removed)

				for _, w := range waiters {
					close(w)
				}
				waiters = nil

				log.Debug("Peer released", zap.Stringer("peer", info), zap.Int("peers", len(sessions)))
			}

			select {
			case <-ctx.Done():
				return errors.WithStack(ctx.Err())
			case m.eventCh <- e:
			}
		}
	}
}

func (m *Manager) newSession(ctx context.Context, cmd AddPeer) *session {
	return &session{
		info:     cmd.Info,
		conn:     cmd.Conn,
		messages: m.config.Messages,
		clock:    m.clock,
		interval: roundUp(m.config.HeartbeatInterval, m.tick),
		timeout:  roundUp(m.config.HeartbeatTimeout, m.tick),
		events:   m.sessionCh,
		inbox:    make(chan any, m.config.SessionBufferCapacity),
		removed:  make(chan struct{}),
		exited:   make(chan struct{}),
		stopped:  ctx.Done(),
	}
}

func (m *Manager) add(ctx context.Context, cmd AddPeer, wake chan<- struct{}) error {
	if cmd.Conn == nil {
		return errors.Errorf("no connection provided for peer %s", cmd.Info)
	}

	result := make(chan error, 1)
	select {
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	case <-m.stopped:
		return errors.WithStack(ErrManagerStopped)
	case m.addCh <- addRequest{Cmd: cmd, Wake: wake, Result: result}:
	}
	return <-result
}

func (m *Manager) forward(ctx context.Context, info PeerInfo, cmd any) error {
	result := make(chan *session, 1)
	select {
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	case <-m.stopped:
		return errors.WithStack(ErrManagerStopped)
	case m.lookupCh <- lookupRequest{Info: info, Result: result}:
	}

	s := <-result
	if s == nil {
		return errors.WithStack(PeerNotFoundError{Info: info})
	}
	return s.deliver(ctx, cmd)
}

func (m *Manager) snapshot(ctx context.Context) ([]*session, error) {
	result := make(chan []*session, 1)
	select {
	case <-ctx.Done():
		return nil, errors.WithStack(ctx.Err())
	case <-m.stopped:
		return nil, errors.WithStack(ErrManagerStopped)
	case m.snapshotCh <- result:
	}
	return <-result, nil
}
