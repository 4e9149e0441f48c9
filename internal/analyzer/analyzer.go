// Package analyzer obtains a canonical record for a transcript: it builds the
// prompt, invokes the provider chain in priority order with fallback, and
// delegates response interpretation to the normalizer.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"meeting-insights-go/internal/logger"
	"meeting-insights-go/internal/normalizer"
	"meeting-insights-go/internal/provider"
	"meeting-insights-go/internal/schema"
)

var (
	// ErrNothingToAnalyze is returned for an empty transcript.
	ErrNothingToAnalyze = errors.New("empty transcript, nothing to analyze")
	// ErrProvidersExhausted is returned when every provider failed outright.
	ErrProvidersExhausted = errors.New("all providers failed")
	// ErrUnparsableResponse is returned when a provider answered but no
	// usable record could be extracted from its output.
	ErrUnparsableResponse = errors.New("unparsable provider response")
)

// Analyzer drives the provider fallback chain.
type Analyzer struct {
	// Providers in priority order: the first that answers wins.
	Providers []provider.Provider
	// Template for the analysis prompt; see BuildPrompt.
	Template string
}

// Analyze produces the canonical record for a transcript. contextName is the
// source display name, used for prompt context and filename-derived fields.
func (a *Analyzer) Analyze(ctx context.Context, transcript, contextName string) (schema.Record, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, ErrNothingToAnalyze
	}
	log := logger.New().WithField("component", "analyzer").WithField("context", contextName)

	prompt := BuildPrompt(a.Template, contextName, transcript)

	var lastErr error
	for _, p := range a.Providers {
		text, err := p.Generate(ctx, prompt)
		if err != nil {
			log.WithError(err).WithField("provider", p.Name()).Warn("provider failed, trying next")
			lastErr = err
			continue
		}
		if strings.TrimSpace(text) == "" {
			log.WithField("provider", p.Name()).Warn("provider returned empty text, trying next")
			lastErr = fmt.Errorf("provider %s returned empty text", p.Name())
			continue
		}

		// A provider answered; extraction failure is final, not a reason to
		// burn through the remaining providers.
		raw, ok := normalizer.Extract(text)
		if !ok {
			return nil, fmt.Errorf("%w: provider %s", ErrUnparsableResponse, p.Name())
		}
		if !resolvesAnyField(raw) {
			return nil, fmt.Errorf("%w: provider %s addressed no known field", ErrUnparsableResponse, p.Name())
		}
		log.WithField("provider", p.Name()).Info("analysis complete")
		return normalizer.Coerce(raw, contextName), nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvidersExhausted, lastErr)
	}
	return nil, ErrProvidersExhausted
}

// resolvesAnyField reports whether at least one raw key maps onto a canonical
// field. Judged before coercion: derived fields like the filename date must
// not rescue a response that addressed no known field.
func resolvesAnyField(raw map[string]any) bool {
	for k := range raw {
		if _, ok := schema.Resolve(k); ok {
			return true
		}
	}
	return false
}
