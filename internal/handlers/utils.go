package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/crucial707/todo-api/internal/apperr"
	"github.com/go-chi/chi/v5"
)

// writeJSON sends v as a JSON body with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSONObject decodes the request body into dst. empty is true when the
// body is absent, null or {} and dst is then left untouched.
func decodeJSONObject(r *http.Request, dst interface{}) (empty bool, err error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return false, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return true, nil
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return false, apperr.Validation("invalid JSON")
	}
	if len(keys) == 0 {
		return true, nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return false, apperr.Validation("invalid JSON")
	}
	return false, nil
}

// urlID parses a positive integer URL parameter.
func urlID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
