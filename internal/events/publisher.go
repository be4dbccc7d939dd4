package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/memoelle/storefront-go/internal/cart"
	"github.com/memoelle/storefront-go/internal/session"
)

const publishTimeout = 3 * time.Second

// Publisher mirrors session changes to the events exchange. Publishing
// happens on a background goroutine; failures are logged only.
type Publisher struct {
	ch       Channel
	seq      SequenceStore
	pricing  cart.Pricing
	producer string
	logger   *zap.Logger

	queue chan session.Change
	done  chan struct{}
}

type PublisherOptions struct {
	Producer string
	Pricing  cart.Pricing
	// Buffer bounds queued changes; further changes are dropped.
	Buffer int
}

func NewPublisher(conn *amqp.Connection, seq SequenceStore, logger *zap.Logger, opts PublisherOptions) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, errors.Wrap(err, "open channel")
	}
	return newPublisher(ch, seq, logger, opts)
}

func newPublisher(ch Channel, seq SequenceStore, logger *zap.Logger, opts PublisherOptions) (*Publisher, error) {
	if err := declareEventsExchange(ch); err != nil {
		return nil, errors.Wrap(err, "declare events exchange")
	}

	producer := opts.Producer
	if producer == "" {
		producer = StorefrontProducer
	}
	pricing := opts.Pricing
	if pricing == (cart.Pricing{}) {
		pricing = cart.DefaultPricing()
	}
	buffer := opts.Buffer
	if buffer <= 0 {
		buffer = 256
	}

	p := &Publisher{
		ch:       ch,
		seq:      seq,
		pricing:  pricing,
		producer: producer,
		logger:   logger,
		queue:    make(chan session.Change, buffer),
		done:     make(chan struct{}),
	}
	go p.run()
	return p, nil
}

// Observe queues a durable change for publishing without blocking.
func (p *Publisher) Observe(c session.Change) {
	if !c.Durable {
		return
	}
	select {
	case p.queue <- c:
	default:
		p.logger.Warn("event queue full, dropping change",
			zap.String("shopper_id", c.ShopperID), zap.String("action", c.Action))
	}
}

func (p *Publisher) run() {
	defer close(p.done)
	for c := range p.queue {
		if err := p.Publish(context.Background(), c); err != nil {
			p.logger.Error("publish change", zap.String("shopper_id", c.ShopperID), zap.String("action", c.Action), zap.Error(err))
		}
	}
}

// Publish sends one change synchronously.
func (p *Publisher) Publish(ctx context.Context, c session.Change) error {
	seq, err := p.seq.NextSequence(ctx, c.ShopperID)
	if err != nil {
		return errors.Wrap(err, "reserve sequence")
	}
	opts := EnvelopeOptions{Sequence: seq, Producer: p.producer}

	var (
		routingKey string
		body       []byte
	)
	switch c.Store {
	case session.StoreCart:
		routingKey = CartUpdatedRoutingKey
		body, err = json.Marshal(BuildCartUpdatedEvent(c.ShopperID, c.Action, c.Cart, p.pricing, opts))
	case session.StoreWishlist:
		routingKey = WishlistUpdatedRoutingKey
		body, err = json.Marshal(BuildWishlistUpdatedEvent(c.ShopperID, c.Action, c.Wishlist, opts))
	default:
		return errors.Errorf("unknown store %q", c.Store)
	}
	if err != nil {
		return errors.Wrap(err, "marshal envelope")
	}

	return p.publishJSON(ctx, routingKey, body)
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

// Close publishes what is queued, then closes the channel. Observe must not
// be called after Close.
func (p *Publisher) Close(ctx context.Context) error {
	close(p.queue)
	select {
	case <-p.done:
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "publisher close")
	}
	return p.ch.Close()
}
