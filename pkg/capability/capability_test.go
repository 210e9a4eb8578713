package capability

import (
	"errors"
	"strings"
	"testing"
)

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds() {
		parsed, err := ParseKind(string(kind))
		if err != nil || parsed != kind {
			t.Fatalf("round trip failed for %s: %v", kind, err)
		}
	}
	if _, err := ParseKind("storage"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestCommandErrorMessage(t *testing.T) {
	err := &CommandError{ExitCode: 2, Stderr: "denied"}
	if !strings.Contains(err.Error(), "exit 2") || !strings.Contains(err.Error(), "denied") {
		t.Fatalf("unexpected message: %s", err)
	}
	var target *CommandError
	if !errors.As(err, &target) {
		t.Fatalf("errors.As must match CommandError")
	}
}
