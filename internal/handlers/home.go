package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"
)

// Home answers the root route.
func Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to Todo API"})
}

// Health is a liveness probe; it never touches the store.
func Health(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "ok")
}

// NotFound and MethodNotAllowed keep router-level misses in the JSON error shape.
func NotFound(w http.ResponseWriter, r *http.Request) {
	JSONError(w, "Not found", http.StatusNotFound)
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// ReadyHandler reports whether the store is reachable.
type ReadyHandler struct {
	DB *sql.DB
}

func (h *ReadyHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		JSONError(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
