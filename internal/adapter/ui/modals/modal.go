package modals

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/sm8ta/hospital_frontend/internal/adapter/api"
	"github.com/sm8ta/hospital_frontend/internal/core/ports"
)

var (
	// ErrBusy is returned when a submit arrives while one is still loading.
	ErrBusy   = errors.New("action already in progress")
	ErrClosed = errors.New("dialog is closed")
)

const NetworkErrorMessage = "Network error: unable to reach the server"

// ValidationError is a client-side form error; nothing was sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type Handler func(payload interface{})

// dialog holds the state every action dialog shares: loading, error and
// success text, event handlers and a lifetime that Close ends.
type dialog struct {
	name   string
	logger ports.LoggerPort

	mu       sync.Mutex
	loading  bool
	errMsg   string
	success  string
	handlers map[string][]Handler
	closed   bool

	ctx    context.Context
	cancel context.CancelFunc
}

func newDialog(name string, logger ports.LoggerPort) *dialog {
	ctx, cancel := context.WithCancel(context.Background())
	return &dialog{
		name:     name,
		logger:   logger,
		handlers: make(map[string][]Handler),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (d *dialog) On(event string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[event] = append(d.handlers[event], h)
}

func (d *dialog) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

func (d *dialog) ErrorMessage() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errMsg
}

func (d *dialog) SuccessMessage() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.success
}

// Close tears the dialog down and cancels a request in flight. Its result
// is dropped.
func (d *dialog) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	d.cancel()
}

func (d *dialog) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

func (d *dialog) clearError() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errMsg = ""
}

func (d *dialog) clearMessages() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errMsg = ""
	d.success = ""
}

// begin marks the dialog as loading and returns the request context, tied to
// both the caller and the dialog lifetime.
func (d *dialog) begin(ctx context.Context) (context.Context, context.CancelFunc, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, nil, ErrClosed
	}
	if d.loading {
		return nil, nil, ErrBusy
	}
	d.loading = true
	d.errMsg = ""
	d.success = ""

	reqCtx, cancel := context.WithCancel(d.ctx)
	stop := context.AfterFunc(ctx, cancel)
	return reqCtx, func() {
		stop()
		cancel()
	}, nil
}

// invalid ends a submit that failed validation; nothing was sent.
func (d *dialog) invalid(msg string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false
	d.errMsg = msg
	return &ValidationError{Message: msg}
}

// finish clears loading and applies the outcome. A result that arrives
// after Close is dropped and reported as ErrClosed.
func (d *dialog) finish(err error, fallback, successMsg, event string, payload interface{}) error {
	d.mu.Lock()
	d.loading = false
	if d.closed {
		d.mu.Unlock()
		d.logger.Debug("Dropped result of closed dialog", map[string]interface{}{
			"dialog": d.name,
		})
		return ErrClosed
	}
	if err != nil {
		d.errMsg = errorMessage(err, fallback)
		d.mu.Unlock()
		d.logger.Warn("Dialog action failed", map[string]interface{}{
			"dialog": d.name,
			"error":  err.Error(),
		})
		return err
	}
	d.success = successMsg
	handlers := append([]Handler(nil), d.handlers[event]...)
	d.mu.Unlock()

	for _, h := range handlers {
		h(payload)
	}
	return nil
}

func errorMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Kind == api.KindNetwork {
			return NetworkErrorMessage
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return fallback
}

// firstViolation maps the first failing field to its message.
func firstViolation(err error, messages map[string]string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := messages[verrs[0].Field()]; ok {
			return msg
		}
		return verrs[0].Field() + " is invalid"
	}
	return err.Error()
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
