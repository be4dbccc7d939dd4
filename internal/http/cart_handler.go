package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/memoelle/storefront-go/internal/cart"
	"github.com/memoelle/storefront-go/internal/promo"
)

type cartResponse struct {
	ShopperID      string          `json:"shopperId"`
	Items          []cart.LineItem `json:"items"`
	PromoCode      *promo.Code     `json:"promoCode"`
	IsOpen         bool            `json:"isOpen"`
	LastModifiedAt *time.Time      `json:"lastModifiedAt,omitempty"`
	Totals         cart.Summary    `json:"totals"`
	ProductIDs     []string        `json:"productIds"`
}

func (h *Handler) cartResponse(shopperID string, s cart.State) cartResponse {
	resp := cartResponse{
		ShopperID:  shopperID,
		Items:      s.Items,
		PromoCode:  s.Promo,
		IsOpen:     s.IsOpen,
		Totals:     s.Summarize(h.pricing),
		ProductIDs: []string{},
	}
	if resp.Items == nil {
		resp.Items = []cart.LineItem{}
	}
	if !s.LastModifiedAt.IsZero() {
		ts := s.LastModifiedAt
		resp.LastModifiedAt = &ts
	}
	seen := map[string]bool{}
	for _, li := range s.Items {
		if !seen[li.ID] {
			seen[li.ID] = true
			resp.ProductIDs = append(resp.ProductIDs, li.ID)
		}
	}
	return resp
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if s == nil {
		return
	}
	writeJSON(w, http.StatusOK, h.cartResponse(s.ID(), s.Cart()))
}

type addItemRequest struct {
	ProductID string       `json:"productId"`
	Quantity  *int         `json:"quantity"`
	Variant   cart.Variant `json:"variant"`
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !decode(w, r, &req) {
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		writeError(w, http.StatusUnprocessableEntity, "quantity must be at least 1")
		return
	}

	p, ok := h.product(w, req.ProductID)
	if !ok {
		return
	}
	item, err := cart.NewLineItem(p, req.Variant)
	if err != nil {
		writeValidation(w, err)
		return
	}

	s := h.session(w, r)
	if s == nil {
		return
	}
	state := s.DispatchCart(cart.AddItem{Item: item, Quantity: quantity})
	writeJSON(w, http.StatusOK, h.cartResponse(s.ID(), state))
}

type setQuantityRequest struct {
	Quantity int    `json:"quantity"`
	Size     string `json:"size"`
	Color    string `json:"color"`
}

func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if !decode(w, r, &req) {
		return
	}
	s := h.session(w, r)
	if s == nil {
		return
	}
	state := s.DispatchCart(cart.SetQuantity{
		ID:       chi.URLParam(r, "productId"),
		Quantity: req.Quantity,
		Size:     req.Size,
		Color:    req.Color,
	})
	writeJSON(w, http.StatusOK, h.cartResponse(s.ID(), state))
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if s == nil {
		return
	}
	q := r.URL.Query()
	state := s.DispatchCart(cart.RemoveItem{
		ID:    chi.URLParam(r, "productId"),
		Size:  q.Get("size"),
		Color: q.Get("color"),
	})
	writeJSON(w, http.StatusOK, h.cartResponse(s.ID(), state))
}

type applyPromoRequest struct {
	Code string `json:"code"`
}

func (h *Handler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	var req applyPromoRequest
	if !decode(w, r, &req) {
		return
	}
	code, ok := h.promos.Lookup(req.Code)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "invalid promo code")
		return
	}
	if err := code.Validate(); err != nil {
		writeValidation(w, err)
		return
	}

	s := h.session(w, r)
	if s == nil {
		return
	}
	state := s.DispatchCart(cart.ApplyPromo{Promo: code})
	writeJSON(w, http.StatusOK, h.cartResponse(s.ID(), state))
}

func (h *Handler) RemovePromo(w http.ResponseWriter, r *http.Request) {
	h.dispatchCart(w, r, cart.RemovePromo{})
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.dispatchCart(w, r, cart.Clear{})
}

func (h *Handler) Drawer(w http.ResponseWriter, r *http.Request) {
	var a cart.Action
	switch chi.URLParam(r, "op") {
	case "open":
		a = cart.OpenDrawer{}
	case "close":
		a = cart.CloseDrawer{}
	case "toggle":
		a = cart.ToggleDrawer{}
	default:
		writeError(w, http.StatusNotFound, "unknown drawer action")
		return
	}
	h.dispatchCart(w, r, a)
}

func (h *Handler) dispatchCart(w http.ResponseWriter, r *http.Request, a cart.Action) {
	s := h.session(w, r)
	if s == nil {
		return
	}
	state := s.DispatchCart(a)
	writeJSON(w, http.StatusOK, h.cartResponse(s.ID(), state))
}
