package ai

import (
	"context"
	"errors"
)

var (
	ErrUnavailable   = errors.New("text generation service unavailable")
	ErrEmptyResponse = errors.New("empty response from model")
	ErrBadJSON       = errors.New("model returned malformed JSON")
)

// Generator produces model output for a prompt under a system instruction.
type Generator interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
	GenerateJSON(ctx context.Context, prompt, system string) ([]byte, error)
}
