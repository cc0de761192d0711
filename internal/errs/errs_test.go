package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOf(t *testing.T) {
	err := Wrap(CodeDuplicateKey, errors.New("E11000 duplicate key"))
	code, ok := CodeOf(err)
	if !ok || code != CodeDuplicateKey {
		t.Fatalf("CodeOf = (%v, %v), want (%v, true)", code, ok, CodeDuplicateKey)
	}

	// codes survive further wrapping
	wrapped := fmt.Errorf("creating user: %w", err)
	code, ok = CodeOf(wrapped)
	if !ok || code != CodeDuplicateKey {
		t.Fatalf("CodeOf through wrap = (%v, %v), want (%v, true)", code, ok, CodeDuplicateKey)
	}

	if _, ok := CodeOf(errors.New("plain")); ok {
		t.Fatal("uncoded errors must report ok=false")
	}
}

func TestErrorStringAndUnwrap(t *testing.T) {
	cause := errors.New("socket closed")
	err := Wrap(CodeInternal, cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable through Unwrap")
	}
	if err.Message != Message(CodeInternal) {
		t.Fatalf("message = %q, want canonical %q", err.Message, Message(CodeInternal))
	}

	bare := New(CodeEmailNotFound)
	if bare.Error() == "" || bare.Unwrap() != nil {
		t.Fatalf("unexpected bare error: %v", bare)
	}
}
