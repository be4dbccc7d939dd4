package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(h *Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(CorrelationID)
	r.Use(Recover(logger))
	r.Use(RequestLogger(logger))

	r.Get("/health", h.Health)

	r.Route("/api/cart/{shopperId}", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Post("/items", h.AddItem)
		r.Put("/items/{productId}", h.SetQuantity)
		r.Delete("/items/{productId}", h.RemoveItem)
		r.Post("/promo", h.ApplyPromo)
		r.Delete("/promo", h.RemovePromo)
		r.Post("/clear", h.ClearCart)
		r.Post("/drawer/{op}", h.Drawer)
	})

	r.Route("/api/wishlist/{shopperId}", func(r chi.Router) {
		r.Get("/", h.GetWishlist)
		r.Delete("/", h.ClearWishlist)
		r.Post("/toggle", h.ToggleWishlist)
		r.Post("/items", h.AddWishlistItem)
		r.Delete("/items/{productId}", h.RemoveWishlistItem)
	})

	return r
}
