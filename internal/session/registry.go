package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/memoelle/storefront-go/internal/persist"
)

type entry struct {
	ready   chan struct{}
	session *Session
}

// Registry lazily opens one Session per shopper, rehydrating it from the
// adapter on first use.
type Registry struct {
	adapter persist.Adapter
	opts    Options
	logger  *zap.Logger

	mu        sync.Mutex
	sessions  map[string]*entry
	observers []func(Change)
}

func NewRegistry(adapter persist.Adapter, opts Options, logger *zap.Logger) *Registry {
	return &Registry{
		adapter:  adapter,
		opts:     opts,
		logger:   logger,
		sessions: make(map[string]*entry),
	}
}

// Observe subscribes fn to every session opened afterwards.
func (r *Registry) Observe(fn func(Change)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, fn)
}

// Get returns the shopper's session. Concurrent first calls for the same
// shopper share one rehydration.
func (r *Registry) Get(ctx context.Context, shopperID string) (*Session, error) {
	r.mu.Lock()
	e, ok := r.sessions[shopperID]
	if ok {
		r.mu.Unlock()
		select {
		case <-e.ready:
			return e.session, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	e = &entry{ready: make(chan struct{})}
	r.sessions[shopperID] = e
	observers := append([]func(Change){}, r.observers...)
	r.mu.Unlock()

	c, w := Rehydrate(context.WithoutCancel(ctx), r.adapter, shopperID, r.opts.RehydrateTimeout, r.logger)
	s := New(shopperID, c, w, r.opts)
	for _, fn := range observers {
		s.Subscribe(fn)
	}
	r.logger.Debug("session opened", zap.String("shopper_id", shopperID), zap.Int("cart_lines", len(c.Items)), zap.Int("wishlist_items", w.Count()))

	e.session = s
	close(e.ready)
	return s, nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
