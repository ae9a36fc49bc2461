// Package language detects the dominant language of extracted resume text.
package language

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// SampleLength is how much of the document is sent for detection.
// The dominant language is evident well before this bound.
const SampleLength = 1000

// Detector identifies the document language via a cheap LLM call.
type Detector struct {
	client llm.Client
	logger zerolog.Logger
}

// NewDetector creates a language detector around an LLM client.
func NewDetector(client llm.Client, logger zerolog.Logger) *Detector {
	return &Detector{client: client, logger: logger}
}

// Detect returns the ISO 639-1 code of the document's dominant language.
// Detection is best-effort: any failure, or an implausible model reply,
// yields the "unknown" sentinel rather than an error.
func (d *Detector) Detect(ctx context.Context, text string) string {
	sample := strings.TrimSpace(text)
	if sample == "" {
		return types.LanguageUnknown
	}
	if len(sample) > SampleLength {
		// Back up to a rune boundary so the cut never splits a
		// multibyte character.
		cut := SampleLength
		for cut > 0 && !utf8.RuneStart(sample[cut]) {
			cut--
		}
		sample = sample[:cut]
	}

	template := prompts.MustGet("detect-language")
	prompt := prompts.Format(template, map[string]string{"Sample": sample})

	reply, err := d.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		d.logger.Warn().Err(err).Msg("language detection failed, continuing as unknown")
		return types.LanguageUnknown
	}

	code := normalizeCode(reply)
	if code == "" {
		d.logger.Warn().
			Str("reply", strings.TrimSpace(reply)).
			Msg("language detection returned no plausible code, continuing as unknown")
		return types.LanguageUnknown
	}
	return code
}

// normalizeCode reduces a model reply to a bare primary language subtag
// ("en-US" becomes "en"). Returns "" when the reply is not a plausible
// two- or three-letter code.
func normalizeCode(reply string) string {
	code := strings.ToLower(strings.TrimSpace(reply))
	code = strings.Trim(code, ".\"'`")
	if primary, _, found := strings.Cut(code, "-"); found {
		code = primary
	}
	if len(code) < 2 || len(code) > 3 {
		return ""
	}
	for _, r := range code {
		if r < 'a' || r > 'z' {
			return ""
		}
	}
	return code
}
