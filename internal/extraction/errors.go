package extraction

import (
	"errors"
	"fmt"
)

// ErrNoInput is returned when neither file bytes nor raw text were
// supplied. This is a caller configuration error, never retried.
var ErrNoInput = errors.New("no file content or raw text supplied")

// UnsupportedTypeError indicates content sniffing produced no recognized
// document type.
type UnsupportedTypeError struct {
	MimeType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.MimeType)
}

// NotImplementedError indicates a recognized format this service does not
// extract yet (DOCX/DOC/RTF). Failing loudly here is deliberate: a silent
// no-op would look like an empty resume.
type NotImplementedError struct {
	Format string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("text extraction for %s is not implemented", e.Format)
}

// ExtractionFailedError indicates the OCR capability produced no usable
// text (blank or corrupt scan).
type ExtractionFailedError struct {
	Reason string
	Cause  error
}

func (e *ExtractionFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("text extraction failed: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("text extraction failed: %s", e.Reason)
}

func (e *ExtractionFailedError) Unwrap() error {
	return e.Cause
}
