// Package provider defines the AI text-generation backends invoked by the
// analyzer, in priority order.
package provider

import "context"

// Provider is one interchangeable text-generation backend. An error or empty
// response causes the analyzer to fall through to the next provider in the
// chain.
type Provider interface {
	// Name identifies the backend in logs.
	Name() string
	// Generate returns the model's raw text for a prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}
