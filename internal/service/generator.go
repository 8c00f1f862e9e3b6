package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fitsync/backend/internal/events"
	"fitsync/backend/internal/generation"
	"fitsync/backend/internal/observability"
	"fitsync/backend/internal/prompt"
)

const defaultGenerationTimeout = 60 * time.Second

// Generator runs prompts against the provider with a per-call timeout.
type Generator struct {
	provider generation.Provider
	prompts  *prompt.Catalogue
	timeout  time.Duration
}

// NewGenerator wraps provider. A nil catalogue uses the embedded prompts.
func NewGenerator(provider generation.Provider, prompts *prompt.Catalogue, timeout time.Duration) *Generator {
	if prompts == nil {
		prompts = prompt.Default()
	}
	if timeout <= 0 {
		timeout = defaultGenerationTimeout
	}
	return &Generator{provider: provider, prompts: prompts, timeout: timeout}
}

// generateJSON calls the provider and hands the raw output to decode. Any decode
// failure is reported as ErrGenerationFailed.
func (g *Generator) generateJSON(ctx context.Context, operation string, req generation.Request, decode func([]byte) error) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	raw, err := g.provider.GenerateJSON(ctx, req)
	if err == nil {
		err = decode(raw)
	}
	return g.finish(operation, start, err)
}

func (g *Generator) generateText(ctx context.Context, operation string, req generation.Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	text, err := g.provider.GenerateText(ctx, req)
	if err == nil && text == "" {
		err = generation.ErrEmptyResponse
	}
	if err = g.finish(operation, start, err); err != nil {
		return "", err
	}
	return text, nil
}

func (g *Generator) finish(operation string, start time.Time, err error) error {
	elapsed := time.Since(start)
	switch {
	case err == nil:
		observability.RecordGeneration(operation, observability.OutcomeSuccess, elapsed)
		return nil
	case errors.Is(err, generation.ErrInvalidOutput), errors.Is(err, generation.ErrEmptyResponse):
		observability.RecordGeneration(operation, observability.OutcomeInvalidOutput, elapsed)
		log.Printf("WARN: %s: model output rejected: %v", operation, err)
		return fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	default:
		observability.RecordGeneration(operation, observability.OutcomeError, elapsed)
		log.Printf("ERROR: %s: provider call failed after %s: %v", operation, elapsed.Round(time.Millisecond), err)
		return fmt.Errorf("%s: %w", operation, err)
	}
}

// publish sends evt best-effort. The write it describes has already committed.
func publish(ctx context.Context, publisher events.Publisher, eventType, userID string, payload any) {
	if publisher == nil {
		return
	}
	evt, err := events.New(eventType, userID, payload)
	if err == nil {
		err = publisher.Publish(ctx, evt)
	}
	if err != nil {
		observability.RecordEventPublishFailure(eventType)
		log.Printf("WARN: Failed to publish %s for user %s: %v", eventType, userID, err)
	}
}
