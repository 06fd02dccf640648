// Package catalog holds the client-side copy of the product list and the
// effects that synchronise it with the record store.
//
// Mutating actions only write to the record store; the local list changes
// when a FetchProducts action reloads it. The copy is never reconciled
// otherwise.
package catalog

import (
	"context"
	"slices"
	"sync"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/xenking/product-drawer/internal/domain/product"
)

// State is a snapshot of the store.
type State struct {
	Products []product.Product
	Loading  bool
	// Err is the error of the most recent failed action, cleared by the next
	// successful one.
	Err error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to zap.NewNop().
func WithLogger(lg *zap.Logger) Option {
	return func(s *Store) { s.lg = lg }
}

// WithMeterProvider records a catalog.actions counter on the provider's meter.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *Store) { s.meter = mp.Meter("github.com/xenking/product-drawer/internal/catalog") }
}

// Store is the redux-style product store.
type Store struct {
	repo  product.Repository
	lg    *zap.Logger
	meter metric.Meter

	actions metric.Int64Counter

	mu     sync.RWMutex
	state  State
	subs   map[int]func(State)
	nextID int
}

// NewStore creates a Store over repo with an empty product list.
func NewStore(repo product.Repository, opts ...Option) (*Store, error) {
	s := &Store{
		repo:  repo,
		lg:    zap.NewNop(),
		meter: noop.NewMeterProvider().Meter(""),
		subs:  make(map[int]func(State)),
	}
	for _, o := range opts {
		o(s)
	}

	var err error
	s.actions, err = s.meter.Int64Counter("catalog.actions",
		metric.WithDescription("Catalog actions dispatched, by kind and outcome"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create actions counter")
	}
	return s, nil
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Products returns a copy of the current product list.
func (s *Store) Products() []product.Product {
	return s.State().Products
}

// Subscribe registers fn to be called with the new state after every
// dispatch. The returned func unregisters it.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Dispatch runs the effect of a and notifies subscribers. The returned error
// is also recorded in State.Err.
func (s *Store) Dispatch(ctx context.Context, a Action) error {
	lg := s.lg.With(zap.String("action", a.Kind()))

	if _, ok := a.(FetchProducts); ok {
		s.update(func(st *State) { st.Loading = true })
	}

	err := s.run(ctx, a)

	outcome := "ok"
	if err != nil {
		outcome = "error"
		lg.Error("Action failed", zap.Error(err))
	} else {
		lg.Debug("Action done")
	}
	s.actions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", a.Kind()),
		attribute.String("outcome", outcome),
	))

	s.update(func(st *State) {
		st.Loading = false
		st.Err = err
	})
	return err
}

func (s *Store) run(ctx context.Context, a Action) error {
	switch a := a.(type) {
	case FetchProducts:
		products, err := s.repo.List(ctx)
		if err != nil {
			return errors.Wrap(err, "list products")
		}
		s.update(func(st *State) { st.Products = products })
		return nil
	case AddProduct:
		p := a.Product
		if err := s.repo.Create(ctx, &p); err != nil {
			return errors.Wrap(err, "create product")
		}
		return nil
	case EditProduct:
		p := a.Product
		if err := s.repo.Update(ctx, &p); err != nil {
			return errors.Wrapf(err, "update product %q", p.ID)
		}
		return nil
	case DeleteProduct:
		if err := s.repo.Delete(ctx, a.ID); err != nil {
			return errors.Wrapf(err, "delete product %q", a.ID)
		}
		return nil
	default:
		return errors.Errorf("unknown action %T", a)
	}
}

func (s *Store) update(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.snapshot()
	subs := make([]func(State), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}

// snapshot must be called with mu held.
func (s *Store) snapshot() State {
	st := s.state
	st.Products = slices.Clone(s.state.Products)
	return st
}
