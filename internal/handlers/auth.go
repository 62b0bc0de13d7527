package handlers

import (
	"net/http"

	"github.com/crucial707/todo-api/internal/auth"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Auth *auth.Service
}

type credentialsInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ==========================
// Register (201, no token; the client logs in separately)
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input credentialsInput
	if _, err := decodeJSONObject(r, &input); err != nil {
		WriteError(w, r, err)
		return
	}

	if _, err := h.Auth.Register(r.Context(), input.Username, input.Password); err != nil {
		WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully",
	})
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input credentialsInput
	if _, err := decodeJSONObject(r, &input); err != nil {
		WriteError(w, r, err)
		return
	}

	token, err := h.Auth.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Login successful",
		"token":   token,
	})
}
