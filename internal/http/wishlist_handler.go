package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/memoelle/storefront-go/internal/wishlist"
)

type wishlistItemRequest struct {
	ProductID string `json:"productId"`
}

func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if s == nil {
		return
	}
	writeJSON(w, http.StatusOK, newWishlistResponse(s.ID(), s.Wishlist()))
}

func (h *Handler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	h.wishlistProductAction(w, r, func(it wishlist.Item) wishlist.Action { return wishlist.Toggle{Item: it} })
}

func (h *Handler) AddWishlistItem(w http.ResponseWriter, r *http.Request) {
	h.wishlistProductAction(w, r, func(it wishlist.Item) wishlist.Action { return wishlist.Add{Item: it} })
}

func (h *Handler) wishlistProductAction(w http.ResponseWriter, r *http.Request, action func(wishlist.Item) wishlist.Action) {
	var req wishlistItemRequest
	if !decode(w, r, &req) {
		return
	}
	p, ok := h.product(w, req.ProductID)
	if !ok {
		return
	}
	h.dispatchWishlist(w, r, action(wishlist.NewItem(p)))
}

func (h *Handler) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	h.dispatchWishlist(w, r, wishlist.Remove{ID: chi.URLParam(r, "productId")})
}

func (h *Handler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	h.dispatchWishlist(w, r, wishlist.Clear{})
}

func (h *Handler) dispatchWishlist(w http.ResponseWriter, r *http.Request, a wishlist.Action) {
	s := h.session(w, r)
	if s == nil {
		return
	}
	state := s.DispatchWishlist(a)
	writeJSON(w, http.StatusOK, newWishlistResponse(s.ID(), state))
}
