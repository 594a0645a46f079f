package presenter

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirchsolutions/sirchweb/internal/api/dto/v1/contact"
	"github.com/sirchsolutions/sirchweb/internal/api/validation"
	"github.com/sirchsolutions/sirchweb/internal/client"
	"github.com/sirchsolutions/sirchweb/internal/form"
)

// State is one of the four presenter states
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// DefaultRetryDelay is the pause before a retried submission
const DefaultRetryDelay = time.Second

const (
	MessageSending       = "Sending..."
	MessageSent          = contact.MessageSent
	MessageFixFields     = contact.MessageInvalidData
	MessageRetryCanceled = "Retry canceled."
)

// View is everything a renderer needs to draw the current state
type View struct {
	State       State
	Message     string
	CanRetry    bool
	FieldErrors map[string]string
}

// Submitter sends one submission; client.Client implements it
type Submitter interface {
	Submit(ctx context.Context, sub contact.Submission) (*client.SuccessInfo, error)
}

// Renderer receives every view change
type Renderer interface {
	Render(v View)
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(v View)

func (f RendererFunc) Render(v View) { f(v) }

// Presenter drives one contact form through idle, submitting, success and
// error. At most one submission is in flight at a time, and nothing is
// rendered or reset once Close has been called.
type Presenter struct {
	mu         sync.Mutex
	store      *form.Store
	submitter  Submitter
	renderer   Renderer
	view       View
	last       *contact.Submission
	closed     bool
	retryDelay time.Duration
}

type Option func(*Presenter)

func WithRetryDelay(d time.Duration) Option {
	return func(p *Presenter) { p.retryDelay = d }
}

func New(store *form.Store, submitter Submitter, renderer Renderer, opts ...Option) *Presenter {
	p := &Presenter{
		store:      store,
		submitter:  submitter,
		renderer:   renderer,
		view:       View{State: StateIdle},
		retryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// View returns the current view
func (p *Presenter) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}

// Submit validates the form and sends it. It is a no-op while a submission is
// in flight. A filled honeypot leaves the presenter idle without a request
// or any feedback.
func (p *Presenter) Submit(ctx context.Context) View {
	p.mu.Lock()
	if p.closed || p.view.State == StateSubmitting {
		v := p.view
		p.mu.Unlock()
		return v
	}

	sub := p.store.Snapshot()
	if validation.IsBot(sub.Honeypot) {
		v := p.view
		p.mu.Unlock()
		return v
	}

	if errs := p.store.ValidateAll(); len(errs) > 0 {
		p.setLocked(View{State: StateIdle, Message: MessageFixFields, FieldErrors: errs})
		v := p.view
		p.mu.Unlock()
		return v
	}

	p.last = &sub
	p.setLocked(View{State: StateSubmitting, Message: MessageSending})
	p.mu.Unlock()

	return p.send(ctx, sub)
}

// Retry resends the last payload after the retry delay. It only acts in the
// error state.
func (p *Presenter) Retry(ctx context.Context) View {
	p.mu.Lock()
	if p.closed || p.view.State != StateError || p.last == nil {
		v := p.view
		p.mu.Unlock()
		return v
	}
	sub := *p.last
	failed := p.view
	p.setLocked(View{State: StateSubmitting, Message: MessageSending})
	p.mu.Unlock()

	timer := time.NewTimer(p.retryDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		p.mu.Lock()
		defer p.mu.Unlock()
		if !p.closed {
			failed.Message = MessageRetryCanceled
			p.setLocked(failed)
		}
		return p.view
	}

	return p.send(ctx, sub)
}

// Close tears the presenter down; results arriving afterwards are dropped
func (p *Presenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

func (p *Presenter) send(ctx context.Context, sub contact.Submission) View {
	info, err := p.submitter.Submit(ctx, sub)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return p.view
	}

	if err != nil {
		p.setLocked(errorView(err))
		return p.view
	}

	p.store.Reset()
	// The draft only exists to survive accidents; a failed clear is harmless
	_ = p.store.ClearDraft()
	p.last = nil

	message := MessageSent
	if info != nil && info.Message != "" {
		message = info.Message
	}
	p.setLocked(View{State: StateSuccess, Message: message})
	return p.view
}

func errorView(err error) View {
	var submitErr *client.SubmitError
	if errors.As(err, &submitErr) {
		return View{
			State:       StateError,
			Message:     submitErr.Message,
			CanRetry:    true,
			FieldErrors: submitErr.FieldErrors,
		}
	}
	return View{
		State:    StateError,
		Message:  client.KindUnknown.Message(),
		CanRetry: true,
	}
}

func (p *Presenter) setLocked(v View) {
	p.view = v
	if p.renderer != nil {
		p.renderer.Render(v)
	}
}
