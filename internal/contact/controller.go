// Package contact holds the contact form state machine: the visitor's field
// values plus an Idle/Submitting/Success/Error status, driven by one relay
// call per submit.
package contact

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/NikhilKanaujia/portfolio/internal/relay"
)

// Messages shown when the relay gives no reason of its own.
const (
	SuccessFallback    = "Thanks for reaching out! Your message was sent successfully."
	RejectedFallback   = "Unable to send message right now."
	UnexpectedFallback = "Something went wrong. Please try again in a moment."
)

// Sender delivers a submission. *relay.Client satisfies it.
type Sender interface {
	Send(ctx context.Context, sub relay.Submission) (relay.Reply, error)
}

// Controller owns one visitor's form. It is safe for concurrent use; at most
// one submission is in flight at a time.
type Controller struct {
	sender Sender
	logger zerolog.Logger

	mu     sync.Mutex
	fields Fields
	status Status
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.logger = l.With().Str("component", "contact").Logger() }
}

// New returns an Idle controller with empty fields.
func New(sender Sender, opts ...Option) *Controller {
	c := &Controller{
		sender: sender,
		logger: zerolog.Nop(),
		status: idle(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UpdateField sets one field. Unknown fields are ignored.
func (c *Controller) UpdateField(f Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.fields.set(f, value) {
		c.logger.Debug().Str("field", string(f)).Msg("ignoring unknown field")
	}
}

// Fields returns a copy of the current field values.
func (c *Controller) Fields() Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

// Status returns the current status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Submit sends the current fields to the relay and blocks until the relay
// answers. If a submission is already in flight it returns immediately with
// started == false and changes nothing.
//
// Submit never fails: every outcome ends in Success or Error. On Success the
// fields are cleared; on Error they are kept for correction.
func (c *Controller) Submit(ctx context.Context) (st Status, started bool) {
	c.mu.Lock()
	if c.status.Kind == Submitting {
		st = c.status
		c.mu.Unlock()
		c.logger.Debug().Msg("submit ignored, already in flight")
		return st, false
	}
	c.status = submitting()
	sub := c.fields.submission()
	c.mu.Unlock()

	final := failed(UnexpectedFallback)
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error().Str("panic", fmt.Sprint(r)).Msg("relay send panicked")
			final = failed(UnexpectedFallback)
		}
		c.mu.Lock()
		c.status = final
		if final.Kind == Success {
			c.fields = Fields{}
		}
		c.mu.Unlock()
		st, started = final, true
	}()

	final = c.resolve(c.sender.Send(ctx, sub))
	return final, true
}

func (c *Controller) resolve(reply relay.Reply, err error) Status {
	if err == nil {
		msg := reply.Message
		if msg == "" {
			msg = SuccessFallback
		}
		c.logger.Info().Msg("contact message sent")
		return succeeded(msg)
	}

	msg := relay.ReasonOf(err)
	if msg == "" {
		msg = RejectedFallback
		var tr *relay.TransportError
		if errors.As(err, &tr) && tr.Err != nil {
			msg = UnexpectedFallback
		}
	}
	c.logger.Warn().Err(err).Msg("contact message not sent")
	return failed(msg)
}
