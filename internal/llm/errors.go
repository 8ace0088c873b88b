package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"

	"github.com/openai/openai-go"
)

// Kind classifies why a completion call failed
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindAuth
	KindRateLimit
	KindMalformed
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindRateLimit:
		return "rate_limit"
	case KindMalformed:
		return "malformed_response"
	case KindUpstream:
		return "upstream"
	default:
		return "unknown"
	}
}

// HTTPStatus is the status a caller sees for this kind when failures are not flattened to 200
func (k Kind) HTTPStatus() int {
	switch k {
	case KindRateLimit:
		return http.StatusTooManyRequests
	case KindNetwork, KindAuth, KindMalformed, KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrNoChoices is returned when the completion service answers without any choice
var ErrNoChoices = errors.New("no choices in response")

// CompletionError wraps a failed completion call with its Kind.
// Error() is the wrapped error's text unchanged.
type CompletionError struct {
	Kind Kind
	Err  error
}

func (e *CompletionError) Error() string {
	return e.Err.Error()
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of err, or KindUnknown if err is not a CompletionError
func KindOf(err error) Kind {
	var ce *CompletionError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

func classify(err error) error {
	return &CompletionError{Kind: kindFor(err), Err: err}
}

func kindFor(err error) Kind {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return KindAuth
		case http.StatusTooManyRequests:
			return KindRateLimit
		default:
			return KindUpstream
		}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return KindMalformed
	}

	return KindUnknown
}
