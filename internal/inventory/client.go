package inventory

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"invtrack/internal/domain"
	"invtrack/internal/eventbus"
	"invtrack/internal/store"
)

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Decline answers no to every question
var Decline = ConfirmFunc(func(context.Context, string) (bool, error) { return false, nil })

// Option configures a Client
type Option func(*Client)

// WithBus publishes domain events to bus
func WithBus(bus eventbus.EventBus) Option {
	return func(c *Client) { c.bus = bus }
}

// WithConfirmer sets who is asked before a delete. The default declines.
func WithConfirmer(confirm Confirmer) Option {
	return func(c *Client) { c.confirm = confirm }
}

// WithStrict toggles rejection of negative price and quantity. Default on.
func WithStrict(strict bool) Option {
	return func(c *Client) { c.strict = strict }
}

// Client drives a Session against a store without a UI. It is safe for
// concurrent use; store calls run outside the lock.
type Client struct {
	mu      sync.Mutex
	session *Session
	load    *loadCall

	store   store.Store
	bus     eventbus.EventBus
	confirm Confirmer
	strict  bool
}

// NewClient creates a client with an empty session
func NewClient(s store.Store, opts ...Option) *Client {
	c := &Client{
		session: NewSession(),
		store:   s,
		confirm: Decline,
		strict:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// loadCall is one fetch cycle, shared by every Load that joined it
type loadCall struct {
	done chan struct{}
	err  error
}

// Load fetches the full collection. A call made while a fetch is in flight
// waits for the single follow-up fetch that it queued.
// The fetch is not bound to any one caller's cancellation: a cancelled caller
// returns ctx.Err() while the others still receive the fresh result.
func (c *Client) Load(ctx context.Context) error {
	c.mu.Lock()
	call := c.load
	if c.session.StartLoad() {
		call = &loadCall{done: make(chan struct{})}
		c.load = call
		go c.fetch(context.WithoutCancel(ctx), call)
	}
	c.mu.Unlock()

	select {
	case <-call.done:
		return call.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// fetch lists until no reload is queued, then completes call
func (c *Client) fetch(ctx context.Context, call *loadCall) {
	for {
		products, err := c.store.List(ctx)

		c.mu.Lock()
		again := c.session.FinishLoad(products, err)
		count := len(c.session.Collection)
		c.mu.Unlock()

		if err != nil {
			log.WithError(err).Warn("Failed to load products")
			c.publish(domain.CollectionLoadFailedEvent{Err: err})
		} else {
			c.publish(domain.CollectionLoadedEvent{Count: count})
		}

		if !again {
			call.err = err
			close(call.done)
			return
		}
		log.Debug("Reload requested during fetch, loading again")
	}
}

// Create validates draft, sends it to the store and reloads on success.
// The draft is kept when validation or the store rejects it.
func (c *Client) Create(ctx context.Context, draft domain.ProductDraft) error {
	c.mu.Lock()
	c.session.SetDraft(draft)
	np, err := c.session.PrepareCreate(c.strict)
	c.mu.Unlock()

	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			c.publish(domain.ValidationFailedEvent{Field: ve.Field, Message: ve.Message})
		}
		return err
	}

	_, err = c.store.Create(ctx, np)

	c.mu.Lock()
	resync := c.session.FinishCreate(err)
	c.mu.Unlock()

	if !resync {
		log.WithError(err).WithField("name", np.Name).Warn("Failed to create product")
		c.publish(domain.ProductCreateFailedEvent{Product: np, Err: err})
		return err
	}

	log.WithField("name", np.Name).Info("Product created")
	c.publish(domain.ProductCreatedEvent{Product: np})
	return c.Load(ctx)
}

// Delete asks for confirmation, deletes id and reloads. It reports whether
// the delete was sent and accepted; a declined prompt is not an error.
func (c *Client) Delete(ctx context.Context, id domain.ProductID) (bool, error) {
	c.mu.Lock()
	prompt := c.session.DeletePrompt(id)
	c.mu.Unlock()

	ok, err := c.confirm.Confirm(ctx, prompt)
	if err != nil {
		return false, errors.Wrap(err, "confirmation failed")
	}
	if !ok {
		log.WithField("id", id).Debug("Delete declined")
		c.publish(domain.DeleteDeclinedEvent{ID: id})
		return false, nil
	}

	err = c.store.Delete(ctx, id)

	c.mu.Lock()
	resync := c.session.FinishDelete(err)
	c.mu.Unlock()

	if !resync {
		log.WithError(err).WithField("id", id).Warn("Failed to delete product")
		c.publish(domain.ProductDeleteFailedEvent{ID: id, Err: err})
		return false, err
	}

	log.WithField("id", id).Info("Product deleted")
	c.publish(domain.ProductDeletedEvent{ID: id})
	return true, c.Load(ctx)
}

// SetSearchTerm changes the filter and returns the new view
func (c *Client) SetSearchTerm(term string) []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.SetSearchTerm(term)
	return c.session.clone().View
}

// Snapshot returns a copy of the current session state
func (c *Client) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.clone()
}

func (c *Client) publish(event domain.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}
