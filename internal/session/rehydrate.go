package session

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/memoelle/storefront-go/internal/cart"
	"github.com/memoelle/storefront-go/internal/persist"
	"github.com/memoelle/storefront-go/internal/wishlist"
)

const DefaultRehydrateTimeout = 3 * time.Second

// Rehydrate loads a shopper's persisted cart and wishlist. It never fails:
// anything other than a readable record of the current version yields the
// empty state. Corrupt and version-mismatched records are deleted.
func Rehydrate(ctx context.Context, adapter persist.Adapter, shopperID string, timeout time.Duration, logger *zap.Logger) (cart.State, wishlist.State) {
	if timeout <= 0 {
		timeout = DefaultRehydrateTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c := cart.Empty()
	var cr cart.Record
	if restore(ctx, adapter, CartKey(shopperID), cart.SchemaVersion, &cr, logger) {
		c = cr.State()
	}

	w := wishlist.Empty()
	var wr wishlist.Record
	if restore(ctx, adapter, WishlistKey(shopperID), wishlist.SchemaVersion, &wr, logger) {
		w = wr.State()
	}
	return c, w
}

func restore(ctx context.Context, adapter persist.Adapter, key string, version int, out any, logger *zap.Logger) bool {
	data, err := load(ctx, adapter, key)
	if errors.Is(err, persist.ErrNotFound) {
		return false
	}
	if err != nil {
		logger.Warn("rehydrate failed, starting empty", zap.String("key", key), zap.Error(err))
		return false
	}

	err = persist.Decode(data, version, out)
	if err == nil {
		return true
	}
	logger.Warn("discarding unreadable record", zap.String("key", key), zap.Error(err))

	delCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DefaultRehydrateTimeout)
	defer cancel()
	if err := adapter.Delete(delCtx, key); err != nil {
		logger.Warn("delete unreadable record", zap.String("key", key), zap.Error(err))
	}
	return false
}

// load bounds the adapter call by ctx even when the adapter ignores it.
func load(ctx context.Context, adapter persist.Adapter, key string) ([]byte, error) {
	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		data, err := adapter.Load(ctx, key)
		ch <- result{data, err}
	}()

	select {
	case r := <-ch:
		return r.data, r.err
	case <-ctx.Done():
		return nil, errors.Wrapf(ctx.Err(), "load %s", key)
	}
}
