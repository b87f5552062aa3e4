package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies a failed provider call.
type ErrorKind string

const (
	KindUnavailable ErrorKind = "unavailable"      // transport failure or non-429 API error
	KindRateLimited ErrorKind = "rate_limited"     // HTTP 429
	KindTruncated   ErrorKind = "truncated"        // structured output cut off at MaxTokens
	KindInvalid     ErrorKind = "invalid_response" // output does not match the schema
)

// Error is the error every provider returns. Content carries the raw model
// output for truncated and invalid responses.
type Error struct {
	Kind    ErrorKind
	Status  int
	Content json.RawMessage
	Err     error
}

func (e *Error) Error() string {
	msg := "LLM " + strings.ReplaceAll(string(e.Kind), "_", " ")
	if e.Status != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first *Error in err's chain, or "" when
// err did not come from a provider.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// apiError classifies an SDK error by the HTTP status it carried. A zero
// status means the request never got an answer.
func apiError(status int, err error) *Error {
	kind := KindUnavailable
	if status == http.StatusTooManyRequests {
		kind = KindRateLimited
	}
	return &Error{Kind: kind, Status: status, Err: err}
}

// InvalidResponse reports model output that cannot be used.
func InvalidResponse(content json.RawMessage, err error) *Error {
	return &Error{Kind: KindInvalid, Content: content, Err: err}
}
