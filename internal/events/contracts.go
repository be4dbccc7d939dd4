package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/memoelle/storefront-go/internal/cart"
	"github.com/memoelle/storefront-go/internal/promo"
	"github.com/memoelle/storefront-go/internal/wishlist"
)

const (
	CartUpdatedEventName     = "CartUpdated"
	WishlistUpdatedEventName = "WishlistUpdated"
	EventVersion             = 1

	cartUpdatedSchema     = "contracts/events/storefront/CartUpdated.v1.enveloped.schema.json"
	wishlistUpdatedSchema = "contracts/events/storefront/WishlistUpdated.v1.enveloped.schema.json"
)

type EventEnvelope[P any] struct {
	EventName     string    `json:"eventName"`
	EventVersion  int       `json:"eventVersion"`
	EventID       string    `json:"eventId"`
	CorrelationID string    `json:"correlationId,omitempty"`
	Producer      string    `json:"producer"`
	PartitionKey  string    `json:"partitionKey"`
	Sequence      int64     `json:"sequence"`
	OccurredAt    time.Time `json:"occurredAt"`
	Schema        string    `json:"schema"`
	Payload       P         `json:"payload"`
}

type CartUpdatedPayload struct {
	ShopperID      string          `json:"shopperId"`
	Action         string          `json:"action"`
	Items          []cart.LineItem `json:"items"`
	PromoCode      *promo.Code     `json:"promoCode,omitempty"`
	Totals         cart.Summary    `json:"totals"`
	LastModifiedAt time.Time       `json:"lastModifiedAt"`
}

type WishlistUpdatedPayload struct {
	ShopperID string          `json:"shopperId"`
	Action    string          `json:"action"`
	Items     []wishlist.Item `json:"items"`
	Count     int             `json:"count"`
}

type EnvelopeOptions struct {
	Sequence      int64
	Producer      string
	CorrelationID string
	EventID       string
	OccurredAt    time.Time
}

func newEnvelope[P any](name, schema, partitionKey string, payload P, opts EnvelopeOptions) EventEnvelope[P] {
	eventID := opts.EventID
	if eventID == "" {
		eventID = uuid.NewString()
	}

	occurredAt := opts.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	producer := opts.Producer
	if producer == "" {
		producer = StorefrontProducer
	}

	return EventEnvelope[P]{
		EventName:     name,
		EventVersion:  EventVersion,
		EventID:       eventID,
		CorrelationID: opts.CorrelationID,
		Producer:      producer,
		PartitionKey:  partitionKey,
		Sequence:      opts.Sequence,
		OccurredAt:    occurredAt,
		Schema:        schema,
		Payload:       payload,
	}
}

func BuildCartUpdatedEvent(shopperID, action string, c cart.State, pricing cart.Pricing, opts EnvelopeOptions) EventEnvelope[CartUpdatedPayload] {
	rec := c.Record()
	payload := CartUpdatedPayload{
		ShopperID:      shopperID,
		Action:         action,
		Items:          rec.Items,
		PromoCode:      rec.PromoCode,
		Totals:         c.Summarize(pricing),
		LastModifiedAt: c.LastModifiedAt,
	}
	return newEnvelope(CartUpdatedEventName, cartUpdatedSchema, shopperID, payload, opts)
}

func BuildWishlistUpdatedEvent(shopperID, action string, w wishlist.State, opts EnvelopeOptions) EventEnvelope[WishlistUpdatedPayload] {
	payload := WishlistUpdatedPayload{
		ShopperID: shopperID,
		Action:    action,
		Items:     w.Record().Items,
		Count:     w.Count(),
	}
	return newEnvelope(WishlistUpdatedEventName, wishlistUpdatedSchema, shopperID, payload, opts)
}
