// Package assemble turns normalized entities into the final typed
// analysis result.
package assemble

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Assembler reshapes the entities mapping into a ResumeAnalysisResult
// via one final LLM call. This stage never fails: any generation, parse
// or validation problem degrades to a minimal valid result whose
// parsing_errors describe what went wrong.
type Assembler struct {
	client llm.Client
	logger zerolog.Logger
}

// NewAssembler creates an assembler around an LLM client.
func NewAssembler(client llm.Client, logger zerolog.Logger) *Assembler {
	return &Assembler{client: client, logger: logger}
}

// Assemble produces the final result from normalized entities. The
// returned result is always structurally valid; inspect ParsingErrors
// to tell a degraded result from a real one.
func (a *Assembler) Assemble(ctx context.Context, entities map[string]any, language, fileFormat string) *types.ResumeAnalysisResult {
	if len(entities) == 0 {
		return a.finish(types.MinimalResult(), language, fileFormat)
	}

	serialized, err := json.Marshal(entities)
	if err != nil {
		return a.degraded(fmt.Sprintf("entities are not serializable: %v", err), language, fileFormat)
	}

	template := prompts.MustGet("assemble-result")
	prompt := prompts.Format(template, map[string]string{"Entities": string(serialized)})

	// Assembly reshapes and cross-checks every entity at once, so it
	// runs on the advanced tier rather than the extraction tier.
	reply, err := a.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return a.degraded(fmt.Sprintf("assembly call failed: %v", err), language, fileFormat)
	}

	reply = llm.CleanJSONBlock(reply)

	var result types.ResumeAnalysisResult
	if err := json.Unmarshal([]byte(reply), &result); err != nil {
		return a.degraded(fmt.Sprintf("failed to parse assembly response: %v", err), language, fileFormat)
	}

	result.ClampConfidence()
	out := a.finish(&result, language, fileFormat)

	if err := a.validate(out); err != nil {
		return a.degraded(fmt.Sprintf("assembled result failed validation: %v", err), language, fileFormat)
	}
	return out
}

// finish stamps run metadata and fills structural defaults.
func (a *Assembler) finish(result *types.ResumeAnalysisResult, language, fileFormat string) *types.ResumeAnalysisResult {
	result.DocumentLanguage = language
	result.FileFormat = fileFormat
	result.Normalize()
	return result
}

// validate checks the assembled result against both the JSON schema and
// the struct-level constraints.
func (a *Assembler) validate(result *types.ResumeAnalysisResult) error {
	serialized, err := json.Marshal(result)
	if err != nil {
		return err
	}
	if err := schemas.ValidateAnalysisResult(string(serialized)); err != nil {
		return err
	}
	return result.Validate()
}

func (a *Assembler) degraded(reason, language, fileFormat string) *types.ResumeAnalysisResult {
	a.logger.Warn().Str("reason", reason).Msg("result assembly degraded to minimal result")
	return a.finish(types.MinimalResult(reason), language, fileFormat)
}
