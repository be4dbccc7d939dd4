package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/memoelle/storefront-go/internal/cart"
	"github.com/memoelle/storefront-go/internal/catalog"
	"github.com/memoelle/storefront-go/internal/promo"
	"github.com/memoelle/storefront-go/internal/session"
	"github.com/memoelle/storefront-go/internal/wishlist"
)

const (
	maxShopperIDLen = 128
	sessionTimeout  = 5 * time.Second
)

// Sessions resolves a shopper's session, rehydrating it on first use.
type Sessions interface {
	Get(ctx context.Context, shopperID string) (*session.Session, error)
}

type Handler struct {
	sessions Sessions
	products *catalog.Catalog
	promos   *promo.Catalog
	pricing  cart.Pricing
}

func NewHandler(sessions Sessions, products *catalog.Catalog, promos *promo.Catalog, pricing cart.Pricing) *Handler {
	return &Handler{sessions: sessions, products: products, promos: promos, pricing: pricing}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// session resolves the {shopperId} path parameter. It writes the error
// response itself and returns nil on failure.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *session.Session {
	shopperID := chi.URLParam(r, "shopperId")
	if shopperID == "" || len(shopperID) > maxShopperIDLen {
		writeError(w, http.StatusBadRequest, "invalid shopperId")
		return nil
	}

	ctx, cancel := context.WithTimeout(r.Context(), sessionTimeout)
	defer cancel()

	s, err := h.sessions.Get(ctx, shopperID)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "session unavailable")
		return nil
	}
	return s
}

func (h *Handler) product(w http.ResponseWriter, productID string) (catalog.Product, bool) {
	if productID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return catalog.Product{}, false
	}
	p, err := h.products.Get(productID)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return catalog.Product{}, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return catalog.Product{}, false
	}
	return p, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeValidation(w http.ResponseWriter, err error) {
	var lineErr *cart.ValidationError
	var promoErr *promo.ValidationError
	switch {
	case errors.As(err, &lineErr), errors.As(err, &promoErr):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

type wishlistResponse struct {
	ShopperID string          `json:"shopperId"`
	Items     []wishlist.Item `json:"items"`
	Count     int             `json:"count"`
}

func newWishlistResponse(shopperID string, s wishlist.State) wishlistResponse {
	items := s.Items
	if items == nil {
		items = []wishlist.Item{}
	}
	return wishlistResponse{ShopperID: shopperID, Items: items, Count: s.Count()}
}
