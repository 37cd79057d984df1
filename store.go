package cryptotracker

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// ErrClosed is returned when waiting on a closed Store.
var ErrClosed = errors.New("store is closed")

// Store is the single owner of the application State.
//
// All transitions run one after the other on a dedicated goroutine, so no two
// transitions ever interleave and the State needs no lock. Actions that need
// the Gateway launch the call on its own goroutine; its outcome comes back as
// a new action queued to the owner goroutine.
//
// There is no cancellation: when two fetches race, the one completing last
// wins, whatever the order they were issued in.
type Store struct {
	gateway Gateway
	log     logrus.FieldLogger

	ctx    context.Context // for gateway calls, canceled on Close
	cancel context.CancelFunc

	inbox chan func()
	done  chan struct{}
	once  sync.Once

	state atomic.Pointer[State]

	// owned by the run goroutine.
	inflight int
	waiters  []chan struct{}
	subs     map[chan State]struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used by the Store. Default is logrus' standard logger.
func WithLogger(l logrus.FieldLogger) Option { return func(s *Store) { s.log = l } }

// WithInitialState starts the Store from s instead of an empty State.
func WithInitialState(st State) Option { return func(s *Store) { s.state.Store(&st) } }

// NewStore returns a running Store backed by gw. Close must be called to
// release it.
func NewStore(gw Gateway, opts ...Option) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		gateway: gw,
		log:     logrus.StandardLogger(),
		ctx:     ctx,
		cancel:  cancel,
		inbox:   make(chan func()),
		done:    make(chan struct{}),
		subs:    make(map[chan State]struct{}),
	}
	initial := NewState()
	s.state.Store(&initial)
	for _, opt := range opts {
		opt(s)
	}
	go s.run()
	return s
}

// State returns the latest committed State. It must be treated as read-only.
func (s *Store) State() State { return *s.state.Load() }

// Dispatch applies a to the State and returns once the new State is committed.
//
// RequestAssetList, RequestAssetDetail and RequestPortfolioSave also start the
// matching Gateway call. When Dispatch returns, their transition has already
// been applied (Loading is set, Error is cleared for fetches) but the call is
// still in flight. Its outcome is applied later as AssetListLoaded,
// AssetDetailLoaded or SetLoading(false) on success, Failed on error.
func (s *Store) Dispatch(a Action) {
	if a == nil {
		return
	}
	committed := make(chan struct{})
	ok := s.schedule(func() {
		s.apply(a)
		close(committed)
	})
	if !ok {
		s.log.WithField("action", a.String()).Warn("store is closed, action dropped")
		return
	}
	<-committed
}

// AddAndSave adds a holding and saves the portfolio.
func (s *Store) AddAndSave(h Holding) {
	s.Dispatch(AddHolding{Holding: h})
	s.Dispatch(RequestPortfolioSave{})
}

// UpdateAndSave updates a holding and saves the portfolio.
func (s *Store) UpdateAndSave(h Holding) {
	s.Dispatch(UpdateHolding{Holding: h})
	s.Dispatch(RequestPortfolioSave{})
}

// RemoveAndSave removes a holding and saves the portfolio.
func (s *Store) RemoveAndSave(id string) {
	s.Dispatch(RemoveHolding{ID: id})
	s.Dispatch(RequestPortfolioSave{})
}

// Subscribe returns a channel receiving the current State, then every newly
// committed State. Only the latest State is buffered: a slow reader skips
// intermediate ones. The channel is closed by cancel or when the Store closes.
func (s *Store) Subscribe() (states <-chan State, cancel func()) {
	ch := make(chan State, 1)
	ok := s.schedule(func() {
		s.subs[ch] = struct{}{}
		ch <- *s.state.Load()
	})
	if !ok {
		close(ch)
		return ch, func() {}
	}
	var once sync.Once
	cancel = func() {
		once.Do(func() {
			s.schedule(func() {
				if _, ok := s.subs[ch]; ok {
					delete(s.subs, ch)
					close(ch)
				}
			})
		})
	}
	return ch, cancel
}

// Wait blocks until every Gateway call launched so far has its outcome
// committed, or until ctx is done.
func (s *Store) Wait(ctx context.Context) error {
	idle := make(chan struct{})
	ok := s.schedule(func() {
		if s.inflight == 0 {
			close(idle)
			return
		}
		s.waiters = append(s.waiters, idle)
	})
	if !ok {
		return ErrClosed
	}
	select {
	case <-idle:
		return nil
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the Store. Outcomes of calls still in flight are dropped.
func (s *Store) Close() {
	s.once.Do(func() {
		close(s.done)
		s.cancel()
	})
}

// schedule queues fn to run on the owner goroutine. It returns false if the
// Store is closed.
func (s *Store) schedule(fn func()) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.inbox <- fn:
		return true
	case <-s.done:
		return false
	}
}

func (s *Store) run() {
	defer func() {
		for ch := range s.subs {
			close(ch)
		}
		s.subs = nil
	}()
	for {
		select {
		case <-s.done:
			return
		case fn := <-s.inbox:
			fn()
		}
	}
}

// apply commits the transition of a and starts its side effect. It runs on
// the owner goroutine only.
func (s *Store) apply(a Action) {
	next := Transition(s.State(), a)
	s.state.Store(&next)
	s.log.WithFields(logrus.Fields{
		"action":  a.String(),
		"loading": next.Loading,
	}).Debug("dispatched")

	for ch := range s.subs {
		select {
		case <-ch: // drop the stale state
		default:
		}
		ch <- next
	}

	switch a := a.(type) {
	case RequestAssetList:
		s.launch("list assets", func(ctx context.Context) Action {
			assets, err := s.gateway.ListAssets(ctx)
			if err != nil {
				return Failed{Message: err.Error()}
			}
			return AssetListLoaded{Assets: assets}
		})
	case RequestAssetDetail:
		id := a.ID
		s.launch("asset detail", func(ctx context.Context) Action {
			asset, err := s.gateway.AssetDetail(ctx, id)
			if err != nil {
				return Failed{Message: err.Error()}
			}
			return AssetDetailLoaded{Asset: asset}
		})
	case RequestPortfolioSave:
		holdings := slices.Clone(next.Portfolio)
		s.launch("save portfolio", func(ctx context.Context) Action {
			if _, err := s.gateway.SavePortfolio(ctx, holdings); err != nil {
				return Failed{Message: err.Error()}
			}
			return SetLoading{Loading: false}
		})
	}
}

// launch runs call on its own goroutine and applies the action it returns.
func (s *Store) launch(name string, call func(context.Context) Action) {
	s.inflight++
	go func() {
		outcome := call(s.ctx)
		if f, ok := outcome.(Failed); ok {
			s.log.WithField("call", name).Warn(f.Message)
		}
		ok := s.schedule(func() {
			s.apply(outcome)
			s.settle()
		})
		if !ok {
			s.log.WithField("call", name).Warn("store is closed, outcome dropped")
		}
	}()
}

// settle accounts for one completed call and releases waiters once idle.
func (s *Store) settle() {
	s.inflight--
	if s.inflight > 0 {
		return
	}
	for _, w := range s.waiters {
		close(w)
	}
	s.waiters = nil
}
