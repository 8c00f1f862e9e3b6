// Package generation talks to the LLM that writes plans and coaching text, and
// turns its output into validated domain values.
package generation

import (
	"context"
	"errors"
)

var (
	// ErrEmptyResponse is returned when the model produced no usable text.
	ErrEmptyResponse = errors.New("generation: empty model response")
	// ErrInvalidOutput is returned when model output does not match the expected schema.
	ErrInvalidOutput = errors.New("generation: model output failed validation")
)

// Request is one completion call.
type Request struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int32 // 0 leaves the model default
}

// Provider is the LLM backend. Implementations must be safe for concurrent use.
type Provider interface {
	// GenerateJSON asks for a JSON object and returns its raw bytes, unvalidated.
	GenerateJSON(ctx context.Context, req Request) ([]byte, error)
	// GenerateText asks for free text.
	GenerateText(ctx context.Context, req Request) (string, error)
}
