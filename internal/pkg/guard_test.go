package pkg

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestGuardRecoversPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	Guard(logger, "refresh courses", func() {
		panic("callback exploded")
	})

	out := buf.String()
	if !strings.Contains(out, "panic recovered") {
		t.Errorf("panic not logged: %q", out)
	}
	if !strings.Contains(out, "refresh courses") {
		t.Errorf("operation name missing from log: %q", out)
	}
}

func TestGuardRunsFunction(t *testing.T) {
	ran := false
	Guard(nil, "noop", func() { ran = true })
	if !ran {
		t.Error("Guard must run the wrapped function")
	}
}
