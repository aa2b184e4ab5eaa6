// Package provider talks to the CRM quick-search endpoint and normalizes its
// loosely-typed response into domain result sets.
package provider

import (
	"context"
	"errors"

	"crmsearch/internal/domain"
)

var (
	// ErrUnauthorized is returned when the backend rejects the token
	ErrUnauthorized = errors.New("provider: unauthorized")
	// ErrUnavailable covers transport failures, 5xx and malformed bodies
	ErrUnavailable = errors.New("provider: unavailable")
)

// Provider runs one remote search. Callers only pass trimmed queries that
// already meet the minimum length.
type Provider interface {
	Search(ctx context.Context, query string) (*domain.ResultSet, error)
}

// Func adapts a function to Provider
type Func func(ctx context.Context, query string) (*domain.ResultSet, error)

func (f Func) Search(ctx context.Context, query string) (*domain.ResultSet, error) {
	return f(ctx, query)
}
