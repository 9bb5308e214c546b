package services

import "errors"

// Failure taxonomy for the evaluation pipeline. Callers distinguish these with
// errors.Is; per-item failures carry the matching kind into the result table so
// a failed item is never confused with a low score.
var (
	// ErrUnsupportedFormat means the input file extension is not PDF or DOCX.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrExtractionFailed means the extractor could not produce text, usually a
	// corrupt or encrypted file.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrEmbeddingUnavailable means the embedding provider failed after retry
	// exhaustion. It is never downgraded to a zero score.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")

	// ErrTimeout means a single item exceeded its processing budget.
	ErrTimeout = errors.New("evaluation timed out")

	// ErrMissingInput means the batch was started without a job description or
	// without any resumes. Rejected before any processing begins.
	ErrMissingInput = errors.New("provide both a job description and at least one resume")
)

// ErrorKind returns the stable marker persisted and shown for a failed item.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return "UnsupportedFormat"
	case errors.Is(err, ErrExtractionFailed):
		return "ExtractionFailed"
	case errors.Is(err, ErrEmbeddingUnavailable):
		return "EmbeddingUnavailable"
	case errors.Is(err, ErrTimeout):
		return "Timeout"
	case errors.Is(err, ErrMissingInput):
		return "MissingInput"
	default:
		return "Internal"
	}
}
