package session

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/memoelle/storefront-go/internal/persist"
)

const saveTimeout = 5 * time.Second

// Persister mirrors durable changes to an adapter from a background
// goroutine. Only the latest snapshot per key is kept while a save is
// pending. Failures are logged and never reach the dispatcher.
type Persister struct {
	adapter persist.Adapter
	logger  *zap.Logger

	mu      sync.Mutex
	pending map[string][]byte
	order   []string
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func NewPersister(adapter persist.Adapter, logger *zap.Logger) *Persister {
	p := &Persister{
		adapter: adapter,
		logger:  logger,
		pending: make(map[string][]byte),
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// Observe queues the whitelisted record for the changed store. It has the
// signature of a Session subscriber.
func (p *Persister) Observe(c Change) {
	if !c.Durable {
		return
	}

	var (
		key    string
		record any
	)
	switch c.Store {
	case StoreCart:
		key, record = CartKey(c.ShopperID), c.Cart.Record()
	case StoreWishlist:
		key, record = WishlistKey(c.ShopperID), c.Wishlist.Record()
	default:
		return
	}

	data, err := persist.Encode(record)
	if err != nil {
		p.logger.Error("encode record", zap.String("key", key), zap.Error(err))
		return
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.logger.Warn("persister closed, dropping save", zap.String("key", key))
		return
	}
	if _, queued := p.pending[key]; !queued {
		p.order = append(p.order, key)
	}
	p.pending[key] = data
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *Persister) run() {
	defer close(p.done)
	for {
		select {
		case <-p.wake:
			p.drain()
		case <-p.stop:
			p.drain()
			return
		}
	}
}

func (p *Persister) drain() {
	for {
		p.mu.Lock()
		if len(p.order) == 0 {
			p.mu.Unlock()
			return
		}
		key := p.order[0]
		p.order = p.order[1:]
		data := p.pending[key]
		delete(p.pending, key)
		p.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		err := p.adapter.Save(ctx, key, data)
		cancel()
		if err != nil {
			p.logger.Error("persist state", zap.String("key", key), zap.Error(err))
			continue
		}
		p.logger.Debug("state persisted", zap.String("key", key), zap.Int("bytes", len(data)))
	}
}

// Close stops accepting changes, flushes what is queued and waits for the
// worker to exit or ctx to end.
func (p *Persister) Close(ctx context.Context) error {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
		close(p.stop)
	})

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "persister close")
	}
}
