// Package cqrs provides the intent dispatcher routing commands and queries to
// their handlers.
package cqrs

import (
	"context"
	"fmt"
	"log/slog"

	catalogerrors "github.com/mkostin/catalog_service/internal/catalog/errors"
)

// Intent is a command or query value describing one requested operation and its
// input.
type Intent interface {
	// IntentName identifies the intent type; the dispatcher keys its registry
	// on it.
	IntentName() string
}

// HandlerFunc executes exactly one intent type.
type HandlerFunc func(ctx context.Context, intent Intent) (any, error)

// Dispatcher maps intent names to handlers. The registry is populated once at
// startup and never mutated afterwards; Execute only reads it, so concurrent
// dispatch needs no locking.
type Dispatcher struct {
	handlers map[string]HandlerFunc
	logger   *slog.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		logger:   logger.With("component", "dispatcher"),
	}
}

// Register binds a handler to an intent name. Registering the same name twice
// is a wiring defect and fails.
func (d *Dispatcher) Register(name string, handler HandlerFunc) error {
	if _, exists := d.handlers[name]; exists {
		return fmt.Errorf("handler already registered for intent %q", name)
	}
	d.handlers[name] = handler
	return nil
}

// Execute resolves the handler for the intent and invokes it, propagating the
// result or failure unchanged. A missing handler yields a DispatchError.
func (d *Dispatcher) Execute(ctx context.Context, intent Intent) (any, error) {
	handler, ok := d.handlers[intent.IntentName()]
	if !ok {
		err := &catalogerrors.DispatchError{Intent: intent.IntentName()}
		d.logger.Error("dispatch failed", "error", err)
		return nil, err
	}
	return handler(ctx, intent)
}

// Adapt wraps a typed handler into a HandlerFunc. A type mismatch between the
// registered name and the concrete intent is a wiring defect and surfaces as a
// DispatchError.
func Adapt[I Intent, R any](handle func(ctx context.Context, intent I) (R, error)) HandlerFunc {
	return func(ctx context.Context, intent Intent) (any, error) {
		typed, ok := intent.(I)
		if !ok {
			return nil, &catalogerrors.DispatchError{Intent: intent.IntentName()}
		}
		return handle(ctx, typed)
	}
}
