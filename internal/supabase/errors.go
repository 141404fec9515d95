package supabase

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"classroom/internal/apperr"
)

// Error is a non-2xx response from the provider. It is wrapped in an
// apperr.Error and never shown to clients verbatim.
type Error struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("supabase: status %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("supabase: status %d: %s", e.StatusCode, e.Message)
}

// decodeError understands both the PostgREST ({code, message}) and the GoTrue
// ({error, error_description} or {error_code, msg}) error bodies.
func decodeError(status int, raw []byte) *Error {
	var body struct {
		Code             any    `json:"code"`
		ErrorCode        string `json:"error_code"`
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	e := &Error{StatusCode: status}
	if err := json.Unmarshal(raw, &body); err != nil {
		e.Message = strings.TrimSpace(string(raw))
		if e.Message == "" {
			e.Message = http.StatusText(status)
		}
		return e
	}

	switch code := body.Code.(type) {
	case string:
		e.Code = code
	case float64:
		e.Code = fmt.Sprintf("%d", int(code))
	}
	if body.ErrorCode != "" {
		e.Code = body.ErrorCode
	} else if e.Code == "" {
		e.Code = body.Error
	}

	for _, msg := range []string{body.Message, body.Msg, body.ErrorDescription, body.Error} {
		if msg != "" {
			e.Message = msg
			break
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

func classify(e *Error) error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperr.Wrap(apperr.KindUnauthorized, "unauthorized", e)
	case http.StatusNotFound:
		return apperr.Wrap(apperr.KindNotFound, "not found", e)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperr.Wrap(apperr.KindValidation, "invalid request", e)
	default:
		return apperr.Upstream(e)
	}
}
