package vision

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ocrPrompt instructs the model to transcribe rather than summarize.
const ocrPrompt = `Extract ALL text content from this document exactly as it appears.
Preserve the reading order and line breaks. Do not summarize, translate,
or add commentary. If the document contains no readable text, return an
empty response.`

// GeminiDetector performs OCR through Gemini's multimodal input. It
// handles both images and PDFs, including scanned PDFs with no text layer.
type GeminiDetector struct {
	client *genai.Client
	model  string
}

// DefaultOCRModel is the model used when none is configured.
// Transcription needs multimodal input but not advanced reasoning.
const DefaultOCRModel = "gemini-2.5-flash"

// NewGeminiDetector creates an OCR detector backed by the given model.
func NewGeminiDetector(ctx context.Context, apiKey, model string) (*GeminiDetector, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultOCRModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiDetector{client: client, model: model}, nil
}

// DetectText sends the document bytes to the model and returns the
// transcription. An empty transcription is returned as "" with a nil
// error; the caller decides whether that is fatal.
func (d *GeminiDetector) DetectText(ctx context.Context, data []byte, mimeType string) (string, error) {
	model := d.client.GenerativeModel(d.model)
	model.SetTemperature(0) // transcription, not generation

	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: data},
		genai.Text(ocrPrompt),
	)
	if err != nil {
		return "", fmt.Errorf("OCR request failed: %w", err)
	}

	return collectText(resp), nil
}

// Close releases the underlying client.
func (d *GeminiDetector) Close() error {
	if d.client != nil {
		return d.client.Close()
	}
	return nil
}

// collectText joins all text parts of the first candidate. Missing
// candidates or non-text parts yield an empty string.
func collectText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}
