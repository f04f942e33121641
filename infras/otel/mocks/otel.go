// Package mocks provides a tracer for tests that records nothing.
package mocks

import (
	"context"
	"drivingschool/infras/otel"
)

type noop struct{}

// NewOtel returns a tracer whose scopes discard everything.
func NewOtel() otel.Otel {
	return noop{}
}

func NewScope() otel.Scope {
	return noop{}
}

func (noop) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, noop{}
}

func (noop) Shutdown(context.Context) error { return nil }

func (noop) End() {}

func (noop) TraceError(error) {}

func (noop) TraceIfError(error) {}

func (noop) AddEvent(string) {}

func (noop) SetAttribute(string, any) {}

func (noop) SetAttributes(map[string]any) {}
