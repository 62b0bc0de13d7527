package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDo_DecodesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"validation failed","fields":{"task":"must not be empty","priority":"must be at most 10 characters"}}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTP: srv.Client()}
	err := c.Do(context.Background(), http.MethodPost, "/api/tasks", map[string]string{"task": ""}, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Fields["task"] != "must not be empty" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
	want := "validation failed; priority must be at most 10 characters; task must not be empty (status 400)"
	if apiErr.Error() != want {
		t.Errorf("Error() = %q, want %q", apiErr.Error(), want)
	}
}

func TestDo_PlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer t" {
			t.Errorf("missing bearer token")
		}
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, Token: "t", HTTP: srv.Client()}
	err := c.Do(context.Background(), http.MethodGet, "/api/tasks", nil, nil)
	if err == nil || !strings.Contains(err.Error(), "upstream down") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAPIError_UnauthorizedHint(t *testing.T) {
	err := &APIError{Status: http.StatusUnauthorized, Message: "Token has expired"}
	if !strings.Contains(err.Error(), "todo users login") {
		t.Errorf("missing login hint: %q", err.Error())
	}
}
