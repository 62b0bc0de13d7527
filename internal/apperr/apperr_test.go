package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("register: %w", Conflict("User already exists"))
	if KindOf(wrapped) != KindConflict {
		t.Errorf("KindOf(wrapped conflict) = %v", KindOf(wrapped))
	}
	if Message(wrapped) != "User already exists" {
		t.Errorf("Message(wrapped conflict) = %q", Message(wrapped))
	}
	if KindOf(errors.New("boom")) != KindInternal {
		t.Error("plain errors should be internal")
	}
	if Message(errors.New("boom")) != "" {
		t.Error("plain errors should have no client message")
	}
}

func TestAuthUnwrap(t *testing.T) {
	cause := errors.New("token is expired")
	err := Auth("invalid token", cause)
	if !errors.Is(err, cause) {
		t.Error("expected Auth error to wrap its cause")
	}
	if err.Error() != "invalid token: token is expired" {
		t.Errorf("unexpected Error(): %q", err.Error())
	}
	if KindOf(err).String() != "auth" {
		t.Errorf("unexpected kind string: %q", KindOf(err).String())
	}
}
