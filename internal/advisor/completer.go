// Package advisor talks to the recommendation provider: it builds prompts,
// sends them through a Completer, decodes the replies, and supplies the
// deterministic fallbacks callers substitute when a call fails.
package advisor

import (
	"context"
	"errors"
	"fmt"

	"github.com/blackwell-systems/aiready/internal/config"
)

var (
	// ErrUnavailable is returned when no provider is configured.
	ErrUnavailable = errors.New("recommendation provider unavailable")
	// ErrMalformedResponse is returned when a reply does not match the
	// expected shape.
	ErrMalformedResponse = errors.New("malformed provider response")
)

// Request is one chat completion.
type Request struct {
	System      string
	User        string
	JSON        bool
	Temperature float64
	// Seed pins sampling where the transport supports it.
	Seed int64
	// NoCache bypasses cached replies; an accepted fresh reply is still stored.
	NoCache bool
	// Validate, when set, must accept a reply before it is cached.
	Validate func(text string) error
}

// Completer sends a prompt to a language model and returns its text.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
	Name() string
}

type unavailable struct{}

func (unavailable) Complete(context.Context, Request) (string, error) { return "", ErrUnavailable }
func (unavailable) Name() string                                      { return config.ProviderNone }

// Unavailable returns a Completer that always fails with ErrUnavailable,
// so every operation degrades to its fallback.
func Unavailable() Completer { return unavailable{} }

// NewCompleter builds the transport selected by p. Missing credentials
// yield the unavailable completer rather than an error.
func NewCompleter(p config.Provider) (Completer, error) {
	switch p.Kind {
	case config.ProviderNone:
		return Unavailable(), nil
	case config.ProviderAnthropic:
		if p.APIKey == "" {
			return Unavailable(), nil
		}
		return NewAnthropicCompleter(p.APIKey, p.Model, p.Timeout), nil
	case config.ProviderAzure:
		if p.APIKey == "" || p.Endpoint == "" || p.Deployment == "" {
			return Unavailable(), nil
		}
		return NewAzureCompleter(p.Endpoint, p.APIKey, p.Deployment)
	default:
		return nil, fmt.Errorf("unknown provider kind %q", p.Kind)
	}
}
