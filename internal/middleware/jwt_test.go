package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crucial707/todo-api/internal/apperr"
)

type fakeAuth struct {
	tokens map[string]int
	seen   string
}

func (f *fakeAuth) Authenticate(token string) (int, error) {
	f.seen = token
	if id, ok := f.tokens[token]; ok {
		return id, nil
	}
	if token == "expired" {
		return 0, apperr.Auth("Token has expired", errors.New("token is expired"))
	}
	return 0, errors.New("unclassified failure")
}

func echoUserID(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserID(r.Context())
		if !ok {
			t.Fatal("user id missing from context")
		}
		json.NewEncoder(w).Encode(map[string]int{"user_id": id})
	})
}

func TestAuthenticate_ValidToken(t *testing.T) {
	auth := &fakeAuth{tokens: map[string]int{"good": 7}}
	h := Authenticate(auth)(echoUserID(t))

	req := httptest.NewRequest("GET", "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer good")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var out map[string]int
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["user_id"] != 7 {
		t.Errorf("user_id: got %d, want 7", out["user_id"])
	}
	if auth.seen != "good" {
		t.Errorf("authenticator saw %q", auth.seen)
	}
}

func TestAuthenticate_Rejects(t *testing.T) {
	auth := &fakeAuth{tokens: map[string]int{"good": 7}}
	h := Authenticate(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	cases := []struct {
		name, header, wantErr string
	}{
		{"missing", "", "missing authorization header"},
		{"wrong scheme", "Basic good", "authorization header must use the Bearer scheme"},
		{"no token", "Bearer", "authorization header must use the Bearer scheme"},
		{"expired", "Bearer expired", "Token has expired"},
		{"unknown", "Bearer nope", "invalid token"},
	}
	for _, c := range cases {
		req := httptest.NewRequest("GET", "/api/tasks", nil)
		if c.header != "" {
			req.Header.Set("Authorization", c.header)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s: status %d, want 401", c.name, rr.Code)
			continue
		}
		var out map[string]string
		if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
			t.Fatalf("%s: decode: %v", c.name, err)
		}
		if out["error"] != c.wantErr {
			t.Errorf("%s: error %q, want %q", c.name, out["error"], c.wantErr)
		}
	}
}

func TestAuthenticate_SchemeCaseInsensitive(t *testing.T) {
	auth := &fakeAuth{tokens: map[string]int{"good": 3}}
	h := Authenticate(auth)(echoUserID(t))

	req := httptest.NewRequest("GET", "/api/tasks", nil)
	req.Header.Set("Authorization", "bearer good")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
}
