package mentor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// ErrorKind classifies why a completion call failed. Users always see the same
// apology; the kind exists for operators.
type ErrorKind string

const (
	KindNetwork           ErrorKind = "network"
	KindAuth              ErrorKind = "auth"
	KindRateLimited       ErrorKind = "rate_limited"
	KindMalformedResponse ErrorKind = "malformed_response"
)

var (
	ErrMissingCredential = errors.New("missing api credential")
	ErrMalformedResponse = errors.New("malformed completion response")
)

// Error wraps a failed completion call with its kind.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("mentor unreachable (%s): %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of a completion failure. Unclassified errors are
// reported as network failures.
func KindOf(err error) ErrorKind {
	var mErr *Error
	if errors.As(err, &mErr) {
		return mErr.Kind
	}
	return classify(err).Kind
}

func classify(err error) *Error {
	var mErr *Error
	if errors.As(err, &mErr) {
		return mErr
	}

	switch {
	case errors.Is(err, ErrMissingCredential):
		return &Error{Kind: KindAuth, Err: err}
	case errors.Is(err, ErrMalformedResponse):
		return &Error{Kind: KindMalformedResponse, Err: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: KindNetwork, Err: err}
	}

	if code, ok := apiStatus(err); ok {
		return &Error{Kind: kindForStatus(code), Err: err}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &Error{Kind: KindMalformedResponse, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &Error{Kind: KindNetwork, Err: err}
	}

	return &Error{Kind: kindFromText(err.Error()), Err: err}
}

func apiStatus(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}

func kindForStatus(code int) ErrorKind {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusTooManyRequests:
		return KindRateLimited
	default:
		return KindNetwork
	}
}

// kindFromText inspects provider error strings that carry no typed status,
// e.g. the Ark SDK's "status code: 429" messages.
func kindFromText(msg string) ErrorKind {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "429"),
		strings.Contains(lower, "rate limit"),
		strings.Contains(lower, "quota"),
		strings.Contains(lower, "resource_exhausted"):
		return KindRateLimited
	case strings.Contains(lower, "401"),
		strings.Contains(lower, "403"),
		strings.Contains(lower, "unauthorized"),
		strings.Contains(lower, "permission_denied"),
		strings.Contains(lower, "api key"),
		strings.Contains(lower, "apikey"):
		return KindAuth
	default:
		return KindNetwork
	}
}
