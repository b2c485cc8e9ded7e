package extraction

import "fmt"

// ErrorCode represents specific extraction failure types.
type ErrorCode string

const (
	CodeNoAmountFound     ErrorCode = "NO_AMOUNT_FOUND"
	CodeNoTransactions    ErrorCode = "NO_TRANSACTIONS_FOUND"
	CodeAIUnavailable     ErrorCode = "AI_UNAVAILABLE"
	CodeAIRateLimited     ErrorCode = "AI_RATE_LIMITED"
	CodeAIContextExceeded ErrorCode = "AI_CONTEXT_EXCEEDED"
	CodeAIMalformedOutput ErrorCode = "AI_MALFORMED_OUTPUT"
	CodeInvalidDocument   ErrorCode = "INVALID_DOCUMENT"
)

// ExtractionError is a structured error for extraction failures.
type ExtractionError struct {
	Code      ErrorCode
	Message   string
	Strategy  string // "heuristic" or "ai"
	Retryable bool
	Cause     error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// IsRetryable returns whether this error is retryable.
func (e *ExtractionError) IsRetryable() bool {
	return e.Retryable
}
