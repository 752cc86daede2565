package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// ErrUnauthorized marks a backend 401. The caller decides whether to send
// the user back to the login page.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a backend-reported error. Detail carries the backend's
// structured detail payload flattened to a human-readable string.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// newAPIError recovers a readable message from an error response body.
// The body is usually JSON {"detail": ...} where detail is a string or a
// validation structure, but PDF responses can fail with arbitrary bytes;
// those are tried as text before falling back to the bare status.
func newAPIError(status int, body []byte) *APIError {
	return &APIError{Status: status, Detail: detailFromBody(body)}
}

func detailFromBody(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil {
			return s
		}
		return string(payload.Detail)
	}
	if text := strings.TrimSpace(string(body)); text != "" && utf8.ValidString(text) && len(text) <= 512 {
		return text
	}
	return ""
}
