package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultAPIURL = "http://localhost:5000"
	tokenFileName = ".todo_token"
)

// ErrNotLoggedIn is returned by LoadToken when no token has been saved.
var ErrNotLoggedIn = errors.New("not logged in: run `todo users login` first")

// APIURLFlag is bound to the root --api-url flag.
var APIURLFlag string

// APIURL returns the base URL for the Todo API: --api-url, then
// TODO_API_URL, then the local default.
func APIURL() string {
	url := defaultAPIURL
	if v := os.Getenv("TODO_API_URL"); v != "" {
		url = v
	}
	if APIURLFlag != "" {
		url = APIURLFlag
	}
	return strings.TrimRight(url, "/")
}

// TokenPath is TODO_TOKEN_FILE or ~/.todo_token.
func TokenPath() (string, error) {
	if v := os.Getenv("TODO_TOKEN_FILE"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, tokenFileName), nil
}

// SaveToken writes the bearer token readable by the current user only.
func SaveToken(token string) error {
	path, err := TokenPath()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

func LoadToken() (string, error) {
	path, err := TokenPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotLoggedIn
	}
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNotLoggedIn
	}
	return token, nil
}

// DeleteToken removes the saved token. removed is false when none existed.
func DeleteToken() (removed bool, err error) {
	path, err := TokenPath()
	if err != nil {
		return false, err
	}
	err = os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}
