package session

import (
	"context"
	"sync"

	"github.com/memoelle/storefront-go/internal/persist"
)

// fakeAdapter wraps a MemoryAdapter with injectable failures.
type fakeAdapter struct {
	*persist.MemoryAdapter

	mu      sync.Mutex
	loadErr error
	saveErr error
	block   chan struct{}
	saves   []string
	deletes []string
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{MemoryAdapter: persist.NewMemoryAdapter()}
}

func (f *fakeAdapter) Load(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	block, loadErr := f.block, f.loadErr
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if loadErr != nil {
		return nil, loadErr
	}
	return f.MemoryAdapter.Load(context.Background(), key)
}

func (f *fakeAdapter) Save(ctx context.Context, key string, data []byte) error {
	f.mu.Lock()
	f.saves = append(f.saves, key)
	saveErr := f.saveErr
	f.mu.Unlock()

	if saveErr != nil {
		return saveErr
	}
	return f.MemoryAdapter.Save(ctx, key, data)
}

func (f *fakeAdapter) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	f.deletes = append(f.deletes, key)
	f.mu.Unlock()
	return f.MemoryAdapter.Delete(ctx, key)
}

func (f *fakeAdapter) savedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.saves...)
}

func (f *fakeAdapter) deletedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deletes...)
}
