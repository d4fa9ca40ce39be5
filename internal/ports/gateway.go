package ports

import (
	"context"

	"inkwell/internal/domain"
)

// Classifier is the external text-classification capability. Failures are
// reported through the application error taxonomy: transport, auth and
// timeout problems wrap ErrClassifierUnavailable; responses that do not
// match the expected shape (including confidence outside [0,1]) wrap
// ErrMalformedResponse. On either failure nothing is filed.
type Classifier interface {
	Classify(ctx context.Context, text string) (*domain.Classification, error)
}

// Summarizer renders a digest fact sheet into prose. A failure never fails
// the digest; callers fall back to the deterministic rendering.
type Summarizer interface {
	Summarize(ctx context.Context, facts string) (string, error)
}

// Transcriber converts a voice capture to text before it enters the
// pipeline. A failure rejects the capture; it is never filed empty.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}
