// Package session owns per-shopper cart and wishlist state and fans changes
// out to observers such as the persister and the event mirror.
package session

import (
	"sync"
	"time"

	"github.com/memoelle/storefront-go/internal/cart"
	"github.com/memoelle/storefront-go/internal/wishlist"
)

type Store string

const (
	StoreCart     Store = "cart"
	StoreWishlist Store = "wishlist"
)

// Change is the snapshot handed to subscribers after a dispatch.
type Change struct {
	ShopperID string
	Store     Store
	Action    string
	// Durable is false for actions that only touch UI state.
	Durable  bool
	Cart     cart.State
	Wishlist wishlist.State
}

type Options struct {
	Policy           cart.IdentityPolicy
	Now              func() time.Time
	RehydrateTimeout time.Duration
}

// Session holds one shopper's state. Dispatches are serialized: a
// transition and its subscriber callbacks complete before the next
// dispatch is accepted.
type Session struct {
	id       string
	cartR    *cart.Reducer
	wishR    *wishlist.Reducer
	mu       sync.Mutex
	cart     cart.State
	wishlist wishlist.State
	subs     map[int]func(Change)
	nextSub  int
}

func New(shopperID string, c cart.State, w wishlist.State, opts Options) *Session {
	return &Session{
		id:       shopperID,
		cartR:    cart.NewReducer(opts.Policy, opts.Now),
		wishR:    wishlist.NewReducer(opts.Now),
		cart:     c,
		wishlist: w,
		subs:     make(map[int]func(Change)),
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Cart() cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

func (s *Session) Wishlist() wishlist.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist
}

// Subscribe registers fn for every later dispatch. Callbacks run on the
// dispatching goroutine with the dispatch lock held, so they must not
// dispatch into the same session.
func (s *Session) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Session) DispatchCart(a cart.Action) cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = s.cartR.Reduce(s.cart, a)
	s.notify(Change{Store: StoreCart, Action: a.Name(), Durable: cart.Durable(a)})
	return s.cart
}

func (s *Session) DispatchWishlist(a wishlist.Action) wishlist.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wishlist = s.wishR.Reduce(s.wishlist, a)
	s.notify(Change{Store: StoreWishlist, Action: a.Name(), Durable: true})
	return s.wishlist
}

func (s *Session) notify(c Change) {
	c.ShopperID = s.id
	c.Cart = s.cart
	c.Wishlist = s.wishlist
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subs[i]; ok {
			fn(c)
		}
	}
}

func CartKey(shopperID string) string {
	return cart.StorageKey + ":" + shopperID
}

func WishlistKey(shopperID string) string {
	return wishlist.StorageKey + ":" + shopperID
}
