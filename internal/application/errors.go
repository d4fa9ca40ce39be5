package application

import (
	"errors"
	"fmt"

	"inkwell/internal/domain"
)

// User-input and state errors. Always surfaced with an actionable message,
// never silently swallowed.
var (
	ErrEmptyCapture       = errors.New("capture is empty")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrNoRecentNote       = errors.New("no recent note to fix")
	ErrUnknownCorrelation = errors.New("unknown clarification")
	ErrExpired            = errors.New("clarification expired")
	ErrClarificationOpen  = errors.New("a clarification is already open")
	ErrNoMatch            = errors.New("no matching task or note")
)

// External gateway failures. A timeout is an unavailability, not a hang; a
// response that does not parse against the expected schema is malformed and
// treated as unavailable for filing purposes.
var (
	ErrClassifierUnavailable  = errors.New("classification unavailable")
	ErrTranscriberUnavailable = errors.New("transcription unavailable")
	ErrSummarizerUnavailable  = errors.New("summarization unavailable")
	ErrMalformedResponse      = errors.New("malformed model response")
)

// PartialFilingError reports a degraded success: the document was written
// but the audit append failed, so the ledger is missing this event. The
// filing is real; the caller must surface the degradation rather than
// report full success.
type PartialFilingError struct {
	Document *domain.Document
	Err      error
}

func (e *PartialFilingError) Error() string {
	return fmt.Sprintf("filed %s but audit append failed: %v", e.Document.Path, e.Err)
}

func (e *PartialFilingError) Unwrap() error {
	return e.Err
}

// ValidationError is a user-input failure on a named field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
