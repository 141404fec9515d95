package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"classroom/internal/apperr"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"Math"}`},
		{name: "empty body", body: ``, wantErr: true},
		{name: "malformed", body: `{"name":`, wantErr: true},
		{name: "unknown field", body: `{"name":"Math","owner":"x"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dest struct {
				Name string `json:"name"`
			}
			err := DecodeJSON(r, &dest)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperr.Is(err, apperr.KindValidation) {
				t.Fatalf("DecodeJSON() error kind = %v, want validation", apperr.KindOf(err))
			}
		})
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", apperr.Validation("text is required"), http.StatusBadRequest, "text is required"},
		{"not found", apperr.NotFound("todo not found"), http.StatusNotFound, "todo not found"},
		{"unauthorized", apperr.Unauthorized("login required"), http.StatusUnauthorized, "login required"},
		{"upstream hides detail", apperr.Upstream(errors.New("pq: password authentication failed")), http.StatusInternalServerError, "upstream failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondError(rec, httptest.NewRequest(http.MethodGet, "/api/classes", nil), tt.err)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["error"] != tt.wantMsg {
				t.Fatalf("error = %v, want %q", body["error"], tt.wantMsg)
			}
		})
	}
}

func TestRespondAuthError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondAuthError(rec, httptest.NewRequest(http.MethodPost, "/verify-code", nil), apperr.Unauthorized("invalid code"))

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != false || body["error"] != "invalid code" {
		t.Fatalf("body = %v", body)
	}
}
