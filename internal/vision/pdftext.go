package vision

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFTextDetector reads the embedded text layer of a PDF. It is much
// cheaper than model OCR but returns nothing for scanned documents.
type PDFTextDetector struct{}

// NewPDFTextDetector creates a text-layer PDF detector.
func NewPDFTextDetector() *PDFTextDetector {
	return &PDFTextDetector{}
}

// DetectText extracts the PDF text layer. Non-PDF input is an error;
// a PDF without a text layer returns "".
func (d *PDFTextDetector) DetectText(ctx context.Context, data []byte, mimeType string) (string, error) {
	if mimeType != "application/pdf" {
		return "", fmt.Errorf("unsupported mime type for text-layer extraction: %s", mimeType)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// ledongthuc/pdf needs a file path, so spill to a temp file first.
	tmpFile, err := os.CreateTemp("", "resume-analyzer-*.pdf")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	if _, err := io.Copy(tmpFile, bytes.NewReader(data)); err != nil {
		_ = tmpFile.Close()
		return "", fmt.Errorf("writing temp PDF: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("closing temp PDF: %w", err)
	}

	f, reader, err := pdf.Open(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer func() { _ = f.Close() }()

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting plain text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(textReader); err != nil {
		return "", fmt.Errorf("reading text buffer: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}
