// Package pipeline provides the high-level orchestration for resume
// analysis: the assistant stage chain and the per-run facade.
package pipeline

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-analyzer/internal/schemas"
)

// Stage is one unit of work in the assistant chain. Execute receives the
// outputs of all prior stages in order; Passes is the stage's own
// quality predicate over its output.
type Stage interface {
	Name() string
	Execute(ctx context.Context, prior []any) (any, error)
	Passes(result any) bool
}

// Chain runs stages in order, accumulating their outputs. The chain
// halts at the first stage that fails its own predicate or degrades
// with a validation error, but the last produced output is still
// returned so callers can inspect partial results.
type Chain struct {
	stages []Stage
	logger zerolog.Logger
}

// NewChain creates an assistant chain over the given stages.
func NewChain(logger zerolog.Logger, stages ...Stage) *Chain {
	return &Chain{stages: stages, logger: logger}
}

// Run executes the chain. The returned value is the output of the last
// stage that produced one, whether or not it passed. A validation-class
// stage error halts the chain without propagating; any other error is
// returned alongside whatever was produced so far.
func (c *Chain) Run(ctx context.Context) (any, error) {
	var outputs []any

	for _, stage := range c.stages {
		out, err := stage.Execute(ctx, outputs)
		if err != nil {
			if isValidationError(err) {
				c.logger.Warn().
					Err(err).
					Str("stage", stage.Name()).
					Msg("stage failed validation, halting chain")
				return last(outputs), nil
			}
			return last(outputs), err
		}

		outputs = append(outputs, out)

		if !stage.Passes(out) {
			c.logger.Info().
				Str("stage", stage.Name()).
				Msg("stage output did not pass its quality check, halting chain")
			break
		}
	}

	return last(outputs), nil
}

func last(outputs []any) any {
	if len(outputs) == 0 {
		return nil
	}
	return outputs[len(outputs)-1]
}

// isValidationError reports whether a stage error is validation-class:
// the stage produced something, it just didn't hold up to its schema or
// struct constraints. These halt the chain instead of propagating.
func isValidationError(err error) bool {
	var structErrs validator.ValidationErrors
	if errors.As(err, &structErrs) {
		return true
	}
	var schemaErr *schemas.ValidationError
	return errors.As(err, &schemaErr)
}
