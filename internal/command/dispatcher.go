package command

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownAction reports dispatch of an action no handler is bound to.
var ErrUnknownAction = errors.New("unknown action")

// Result is the uniform outcome every handler resolves to.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HandlerFunc executes one action. Handlers may block on capability calls
// (e.g. a user confirmation prompt) and must honor ctx cancellation.
type HandlerFunc func(ctx context.Context) (Result, error)

// Dispatcher maps action identifiers to handlers. Each identifier binds to
// exactly one handler; rebinding replaces the previous one.
type Dispatcher struct {
	handlers map[string]HandlerFunc
	order    []string
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]HandlerFunc)}
}

// Handle binds an action identifier to a handler.
func (d *Dispatcher) Handle(action string, fn HandlerFunc) {
	if _, exists := d.handlers[action]; !exists {
		d.order = append(d.order, action)
	}
	d.handlers[action] = fn
}

// Actions returns the bound action identifiers in registration order.
func (d *Dispatcher) Actions() []string {
	return append([]string(nil), d.order...)
}

// Dispatch invokes the handler bound to action.
func (d *Dispatcher) Dispatch(ctx context.Context, action string) (Result, error) {
	fn, ok := d.handlers[action]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
	return fn(ctx)
}
