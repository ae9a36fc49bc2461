// Package vision provides the document OCR capability used by text
// extraction: raw file bytes in, plain text out.
package vision

import "context"

// TextDetector converts a document (image or PDF bytes) into plain text.
// Implementations return an empty string, not an error, when the document
// is readable but contains no recognizable text; errors are reserved for
// transport or decoding failures.
type TextDetector interface {
	DetectText(ctx context.Context, data []byte, mimeType string) (string, error)
}

// DetectorFunc adapts a function to the TextDetector interface.
type DetectorFunc func(ctx context.Context, data []byte, mimeType string) (string, error)

// DetectText implements TextDetector.
func (f DetectorFunc) DetectText(ctx context.Context, data []byte, mimeType string) (string, error) {
	return f(ctx, data, mimeType)
}
