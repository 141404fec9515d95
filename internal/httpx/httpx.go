// Package httpx holds the JSON request and response helpers shared by handlers
// and middleware.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"classroom/internal/apperr"
)

const maxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into dest, rejecting unknown fields.
// Decode failures are validation errors.
func DecodeJSON(r *http.Request, dest any) error {
	if r.Body == nil {
		return apperr.Validation("request body required")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("request body required")
		}
		return apperr.Wrap(apperr.KindValidation, "invalid JSON body", err)
	}
	return nil
}

func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError writes {"error": msg} with the status of err's kind. Upstream
// failures are logged with their cause and reported generically.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := Classify(r, err)
	RespondJSON(w, status, map[string]any{"error": msg})
}

// RespondAuthError writes the {"success": false, "error": msg} shape used by
// the sign-in endpoints.
func RespondAuthError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := Classify(r, err)
	RespondJSON(w, status, map[string]any{"success": false, "error": msg})
}

// Classify returns the HTTP status and public message for err, logging
// upstream failures on the request logger.
func Classify(r *http.Request, err error) (int, string) {
	if err == nil {
		err = errors.New("unknown error")
	}
	kind := apperr.KindOf(err)
	if kind == apperr.KindUpstream {
		hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("upstream failure")
	} else {
		hlog.FromRequest(r).Debug().Err(err).Str("kind", kind.String()).Msg("request rejected")
	}
	return kind.Status(), apperr.PublicMessage(err)
}
