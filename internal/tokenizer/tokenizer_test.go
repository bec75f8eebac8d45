package tokenizer

import (
	"os"
	"path/filepath"
	"testing"
)

type testCounter struct{}

func (testCounter) Name() string { return "stub" }

func (testCounter) CountString(input string) (int, error) { return len([]rune(input)), nil }

func TestCountBytesText(t *testing.T) {
	result, err := CountBytes(testCounter{}, []byte("hello"))
	if err != nil {
		t.Fatalf("CountBytes error: %v", err)
	}
	if !result.Counted {
		t.Fatalf("expected counted result")
	}
	if result.Tokens != len([]rune("hello")) {
		t.Fatalf("expected %d tokens, got %d", len([]rune("hello")), result.Tokens)
	}
}

func TestCountBytesBinary(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02}
	result, err := CountBytes(testCounter{}, data)
	if err != nil {
		t.Fatalf("CountBytes error: %v", err)
	}
	if result.Counted {
		t.Fatalf("expected binary data to be skipped")
	}
}

func TestCountBytesEmpty(t *testing.T) {
	result, err := CountBytes(testCounter{}, nil)
	if err != nil {
		t.Fatalf("CountBytes error: %v", err)
	}
	if !result.Counted {
		t.Fatalf("expected empty data to be counted")
	}
	if result.Tokens != 0 {
		t.Fatalf("expected zero tokens for empty data, got %d", result.Tokens)
	}
}

func TestCountBytesNilCounter(t *testing.T) {
	if _, err := CountBytes(nil, []byte("hello")); err == nil {
		t.Fatalf("expected error for nil counter")
	}
}

func TestCountFileReadsContent(t *testing.T) {
	temporaryDirectory := t.TempDir()
	filePath := filepath.Join(temporaryDirectory, "sample.txt")
	if writeError := os.WriteFile(filePath, []byte("token sample"), 0o600); writeError != nil {
		t.Fatalf("write sample file: %v", writeError)
	}
	result, err := CountFile(testCounter{}, filePath)
	if err != nil {
		t.Fatalf("CountFile error: %v", err)
	}
	if !result.Counted || result.Tokens != len([]rune("token sample")) {
		t.Fatalf("unexpected count result %+v", result)
	}
}

func TestNewCounterKnownModel(t *testing.T) {
	counter, resolvedName, err := NewCounter("gpt-4o")
	if err != nil {
		t.Fatalf("NewCounter error: %v", err)
	}
	if counter == nil {
		t.Fatalf("expected non-nil counter")
	}
	if resolvedName != "gpt-4o" {
		t.Fatalf("expected model gpt-4o, got %q", resolvedName)
	}
	tokens, err := counter.CountString("hello world")
	if err != nil {
		t.Fatalf("CountString error: %v", err)
	}
	if tokens <= 0 {
		t.Fatalf("expected positive token count, got %d", tokens)
	}
}

func TestNewCounterFallsBackForUnknownModel(t *testing.T) {
	counter, resolvedName, err := NewCounter("nonexistent-model")
	if err != nil {
		t.Fatalf("NewCounter error: %v", err)
	}
	if resolvedName != defaultEncodingName {
		t.Fatalf("expected fallback encoding %q, got %q", defaultEncodingName, resolvedName)
	}
	if counter.Name() != defaultEncodingName {
		t.Fatalf("expected counter name %q, got %q", defaultEncodingName, counter.Name())
	}
}
