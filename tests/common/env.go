// Package common provides shared test infrastructure for the API suite.
package common

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	zawali "github.com/skander-fourati/zawali/internal/common"

	"github.com/skander-fourati/zawali/internal/app"
	"github.com/skander-fourati/zawali/internal/server"
	"github.com/skander-fourati/zawali/internal/services/analytics"
	"github.com/skander-fourati/zawali/internal/services/importer"
	"github.com/skander-fourati/zawali/internal/services/portfolio"
)

// Env is an in-process test environment: the full HTTP stack (middleware
// included) over in-memory storage. No SurrealDB instance is needed.
type Env struct {
	t      *testing.T
	Server *httptest.Server
	App    *app.App
	Token  string // bearer token for the bootstrapped user
	UserID string
}

// NewEnv starts the API server with a registered default user and returns
// the ready-to-use environment.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	storage := NewMemoryStorage()
	logger := zawali.NewSilentLogger()

	config := zawali.NewDefaultConfig()
	config.Auth.JWTSecret = "api-test-secret"
	config.Auth.TokenExpiry = "1h"

	a := &app.App{
		Config:           config,
		Logger:           logger,
		Storage:          storage,
		ImportService:    importer.NewService(storage, logger),
		AnalyticsService: analytics.NewService(storage, logger),
		PortfolioService: portfolio.NewService(storage, logger),
	}

	srv := server.NewServer(a)
	ts := httptest.NewServer(srv.Handler())

	env := &Env{t: t, Server: ts, App: a}
	env.registerDefaultUser()
	return env
}

// Cleanup shuts the test server down.
func (e *Env) Cleanup() {
	e.Server.Close()
}

// Context returns a plain background context for direct storage access.
func (e *Env) Context() context.Context {
	return context.Background()
}

func (e *Env) registerDefaultUser() {
	e.t.Helper()

	resp, err := e.Post("/api/auth/register", map[string]interface{}{
		"email":    "tester@example.com",
		"name":     "Tester",
		"password": "testing-password",
	})
	if err != nil {
		e.t.Fatalf("failed to register test user: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		e.t.Fatalf("register returned %d", resp.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		e.t.Fatalf("failed to decode register response: %v", err)
	}
	e.Token = body.Token
	e.UserID = body.User.ID
}

// Post sends an unauthenticated JSON POST.
func (e *Env) Post(path string, body interface{}) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}
	return http.Post(e.Server.URL+path, "application/json", bytes.NewReader(data))
}

// AuthPost sends a JSON POST with the default user's bearer token.
func (e *Env) AuthPost(path string, body interface{}) (*http.Response, error) {
	return e.authRequest(http.MethodPost, path, body)
}

// AuthPut sends a JSON PUT with the default user's bearer token.
func (e *Env) AuthPut(path string, body interface{}) (*http.Response, error) {
	return e.authRequest(http.MethodPut, path, body)
}

// AuthGet sends a GET with the default user's bearer token.
func (e *Env) AuthGet(path string) (*http.Response, error) {
	return e.authRequest(http.MethodGet, path, nil)
}

// AuthDelete sends a DELETE with the default user's bearer token.
func (e *Env) AuthDelete(path string) (*http.Response, error) {
	return e.authRequest(http.MethodDelete, path, nil)
}

func (e *Env) authRequest(method, path string, body interface{}) (*http.Response, error) {
	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.Server.URL+path, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.Token)
	return http.DefaultClient.Do(req)
}

// Decode reads a JSON response body into a generic map and closes it.
func Decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return out
}
