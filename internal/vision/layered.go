package vision

import (
	"context"

	"github.com/rs/zerolog"
)

// LayeredDetector tries the cheap PDF text layer first and falls back to
// model OCR for scanned PDFs and for all image input.
type LayeredDetector struct {
	textLayer TextDetector
	ocr       TextDetector
	logger    zerolog.Logger
}

// NewLayeredDetector combines a text-layer detector with an OCR fallback.
func NewLayeredDetector(textLayer, ocr TextDetector, logger zerolog.Logger) *LayeredDetector {
	return &LayeredDetector{textLayer: textLayer, ocr: ocr, logger: logger}
}

// DetectText routes PDFs through the text layer first. A text-layer
// failure is not fatal; it just means paying for OCR.
func (d *LayeredDetector) DetectText(ctx context.Context, data []byte, mimeType string) (string, error) {
	if mimeType == "application/pdf" && d.textLayer != nil {
		text, err := d.textLayer.DetectText(ctx, data, mimeType)
		if err != nil {
			d.logger.Debug().Err(err).Msg("pdf text layer unavailable, falling back to OCR")
		} else if text != "" {
			return text, nil
		}
	}

	return d.ocr.DetectText(ctx, data, mimeType)
}
