package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
)

var (
	// -- Gateway failure kinds (match with errors.Is) --
	ErrNetworkFailure  = errors.New("network failure")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrBackendRejected = errors.New("backend rejected request")

	// -- Payload problems --
	ErrDecode = errors.New("unexpected response payload")

	// -- Refresh sub-step (never surfaced to callers) --
	errNoRefreshToken     = errors.New("no refresh token stored")
	errRefreshRejected    = errors.New("refresh rejected")
	errRefreshMissingAuth = errors.New("refresh response missing access token")
)

type Kind int

const (
	KindNetworkFailure Kind = iota + 1
	KindUnauthorized
	KindBackendRejected
)

func (k Kind) String() string {
	switch k {
	case KindNetworkFailure:
		return "network_failure"
	case KindUnauthorized:
		return "unauthorized"
	case KindBackendRejected:
		return "backend_rejected"
	default:
		return "unknown"
	}
}

// Error is returned for every failed gateway call.
type Error struct {
	Kind       Kind
	StatusCode int
	// Message is the backend's human readable message, if the payload had one.
	Message string
	Payload json.RawMessage
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s (%d)", e.Kind, e.StatusCode)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNetworkFailure:
		return e.Kind == KindNetworkFailure
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrBackendRejected:
		return e.Kind == KindBackendRejected
	}
	return false
}

// AsError unwraps err into an *Error.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetworkFailure, Err: err}
}

func errorFromResponse(resp *Response) *Error {
	kind := KindBackendRejected
	if resp.StatusCode == http.StatusUnauthorized {
		kind = KindUnauthorized
	}

	e := &Error{Kind: kind, StatusCode: resp.StatusCode}
	if json.Valid(resp.Body) {
		e.Payload = json.RawMessage(resp.Body)
		e.Message = extractMessage(resp.Body)
	}
	return e
}

// extractMessage pulls a displayable message out of the common error payload
// shapes: {"message"}, {"error"}, {"detail"}, {"non_field_errors": [...]},
// or the first {"field": ["msg"]} entry.
func extractMessage(body []byte) string {
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return ""
	}

	for _, key := range []string{"message", "error", "detail"} {
		if raw, ok := obj[key]; ok {
			if msg := firstString(raw); msg != "" {
				return msg
			}
		}
	}
	if raw, ok := obj["non_field_errors"]; ok {
		if msg := firstString(raw); msg != "" {
			return msg
		}
	}

	fields := make([]string, 0, len(obj))
	for k := range obj {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if msg := firstString(obj[field]); msg != "" {
			return field + ": " + msg
		}
	}
	return ""
}

func firstString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	return ""
}

// NewResponseError builds the error the gateway returns for a non-2xx
// status with the given body.
func NewResponseError(status int, body []byte) *Error {
	return errorFromResponse(&Response{StatusCode: status, Body: body})
}
