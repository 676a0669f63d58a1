package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEmitWritesLogfmtLine(t *testing.T) {
	out := &bytes.Buffer{}
	logger := New(out, Info)

	logger.Info("snapshot pushed", F("collection", "hotkeys"), F("count", 3))

	line := out.String()
	if !strings.HasPrefix(line, "ts=") {
		t.Fatalf("expected ts first, got %q", line)
	}
	for _, want := range []string{"level=info", "msg=\"snapshot pushed\"", "collection=hotkeys", "count=3"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in line %q", want, line)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	out := &bytes.Buffer{}
	logger := New(out, Warn)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Error("shown", F("err", errors.New("boom")))

	line := out.String()
	if strings.Contains(line, "hidden") {
		t.Fatalf("low levels leaked: %q", line)
	}
	if !strings.Contains(line, "level=error") || !strings.Contains(line, "err=boom") {
		t.Fatalf("expected error line, got %q", line)
	}
}

func TestWithCarriesFields(t *testing.T) {
	out := &bytes.Buffer{}
	logger := New(out, Debug).With(F("req_id", "abc123"))

	logger.Debug("started")

	if !strings.Contains(out.String(), "req_id=abc123") {
		t.Fatalf("expected bound field, got %q", out.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":  Debug,
		"INFO":   Info,
		" warn ": Warn,
		"error":  Error,
		"bogus":  Info,
		"":       Info,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestRequestIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewRequestID()
		if id == "" || seen[id] {
			t.Fatalf("duplicate or empty request id %q", id)
		}
		seen[id] = true
	}
}
