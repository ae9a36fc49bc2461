// Package extraction converts raw resume documents into plain text,
// routing image and PDF input through the OCR capability.
package extraction

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-analyzer/internal/vision"
)

// File formats the service can name. FormatText covers any text/* input.
const (
	FormatPDF   = "pdf"
	FormatImage = "image"
	FormatText  = "txt"
	FormatDOCX  = "docx"
	FormatDOC   = "doc"
	FormatRTF   = "rtf"
)

// DefaultMaxTextLength bounds pre-extracted text input. Longer input is
// truncated, not rejected; partial analysis beats a hard failure here.
const DefaultMaxTextLength = 50000

// ExtractedText is the outcome of text extraction: the plain text plus
// the sniffed source format.
type ExtractedText struct {
	Text         string
	SourceFormat string
}

// Service extracts plain text from resume documents. Media types are
// always sniffed from content; caller-supplied extensions are not trusted.
type Service struct {
	detector      vision.TextDetector
	maxTextLength int
	logger        zerolog.Logger
}

// NewService creates an extraction service around an OCR detector.
func NewService(detector vision.TextDetector, logger zerolog.Logger) *Service {
	return &Service{
		detector:      detector,
		maxTextLength: DefaultMaxTextLength,
		logger:        logger,
	}
}

// WithMaxTextLength overrides the truncation bound for raw text input.
func (s *Service) WithMaxTextLength(n int) *Service {
	if n > 0 {
		s.maxTextLength = n
	}
	return s
}

// Extract sniffs the media type of fileBytes and produces plain text.
// Image and PDF inputs go through OCR; text inputs are decoded directly.
// DOCX/DOC/RTF are recognized but unimplemented and fail with a
// NotImplementedError naming the format.
func (s *Service) Extract(ctx context.Context, fileBytes []byte) (*ExtractedText, error) {
	if len(fileBytes) == 0 {
		return nil, ErrNoInput
	}

	mime := mimetype.Detect(fileBytes)

	switch {
	case mime.Is("application/pdf"):
		return s.throughOCR(ctx, fileBytes, mime.String(), FormatPDF)

	case strings.HasPrefix(mime.String(), "image/"):
		return s.throughOCR(ctx, fileBytes, mime.String(), FormatImage)

	case mime.Is("application/vnd.openxmlformats-officedocument.wordprocessingml.document"):
		return nil, &NotImplementedError{Format: FormatDOCX}

	case mime.Is("application/msword"):
		return nil, &NotImplementedError{Format: FormatDOC}

	case mime.Is("text/rtf"), mime.Is("application/rtf"):
		return nil, &NotImplementedError{Format: FormatRTF}

	case isPlainText(mime):
		return s.FromText(string(fileBytes)), nil

	default:
		return nil, &UnsupportedTypeError{MimeType: mime.String()}
	}
}

// FromText wraps pre-extracted text, truncating it at the configured
// bound. Used when the caller already has text and no file.
func (s *Service) FromText(text string) *ExtractedText {
	if len(text) > s.maxTextLength {
		s.logger.Warn().
			Int("length", len(text)).
			Int("max", s.maxTextLength).
			Msg("raw text exceeds maximum length, truncating")
		// Back up to a rune boundary so the cut never splits a
		// multibyte character.
		cut := s.maxTextLength
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return &ExtractedText{Text: text, SourceFormat: FormatText}
}

// throughOCR runs the detector and converts an empty transcription into
// an ExtractionFailedError.
func (s *Service) throughOCR(ctx context.Context, fileBytes []byte, mimeType, format string) (*ExtractedText, error) {
	text, err := s.detector.DetectText(ctx, fileBytes, mimeType)
	if err != nil {
		return nil, &ExtractionFailedError{Reason: "OCR error", Cause: err}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ExtractionFailedError{Reason: "OCR returned no text"}
	}

	s.logger.Debug().
		Str("format", format).
		Int("bytes", len(fileBytes)).
		Int("chars", len(text)).
		Msg("extracted document text")

	return &ExtractedText{Text: text, SourceFormat: format}, nil
}

// isPlainText reports whether the sniffed type decodes as plain text,
// walking the mimetype hierarchy (text/plain covers csv, html, etc. at
// the root).
func isPlainText(mime *mimetype.MIME) bool {
	for m := mime; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
