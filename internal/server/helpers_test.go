package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPathParam(t *testing.T) {
	tests := []struct {
		path   string
		prefix string
		suffix string
		want   string
	}{
		{"/api/investments/inv-1", "/api/investments/", "", "inv-1"},
		{"/api/investments/inv-1/values", "/api/investments/", "/values", "inv-1"},
		{"/api/transactions/tx-9", "/api/transactions/", "", "tx-9"},
		{"/api/other/x", "/api/investments/", "", ""},
		{"/api/investments/inv-1/extra", "/api/investments/", "", "inv-1"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		if got := PathParam(req, tt.prefix, tt.suffix); got != tt.want {
			t.Errorf("PathParam(%q, %q, %q) = %q, want %q", tt.path, tt.prefix, tt.suffix, got, tt.want)
		}
	}
}

func TestRequireMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/api/transactions", nil)
	rec := httptest.NewRecorder()

	if RequireMethod(rec, req, http.MethodGet, http.MethodPost) {
		t.Error("expected mismatch to return false")
	}
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, POST" {
		t.Errorf("Allow = %q, want GET, POST", allow)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/transactions", nil)
	rec = httptest.NewRecorder()
	if !RequireMethod(rec, req, http.MethodGet, http.MethodPost) {
		t.Error("expected match to return true")
	}
}

func TestDecodeJSON_Invalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	var v map[string]interface{}
	if DecodeJSON(rec, req, &v) {
		t.Error("expected decode failure")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestRequireUser_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	rec := httptest.NewRecorder()

	if userID := RequireUser(rec, req); userID != "" {
		t.Errorf("expected empty user ID, got %q", userID)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireUser_Authenticated(t *testing.T) {
	req := asUser(httptest.NewRequest(http.MethodGet, "/api/transactions", nil), "user-1")
	rec := httptest.NewRecorder()

	if userID := RequireUser(rec, req); userID != "user-1" {
		t.Errorf("expected user-1, got %q", userID)
	}
}
