package cli

import (
	"io"
	"reflect"
	"testing"

	"github.com/spf13/pflag"
)

func TestRegisterCopyFlagParsesValues(t *testing.T) {
	testCases := []struct {
		name        string
		arguments   []string
		expected    bool
		expectError bool
	}{
		{
			name:        "defaults_to_false",
			arguments:   []string{},
			expected:    false,
			expectError: false,
		},
		{
			name:        "sets_true_without_value",
			arguments:   []string{"--copy"},
			expected:    true,
			expectError: false,
		},
		{
			name:        "sets_false_with_equals",
			arguments:   []string{"--copy=false"},
			expected:    false,
			expectError: false,
		},
		{
			name:        "sets_false_with_no",
			arguments:   []string{"--copy", "no"},
			expected:    false,
			expectError: false,
		},
		{
			name:        "rejects_invalid_equals_value",
			arguments:   []string{"--copy=maybe"},
			expected:    false,
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			var flagValue bool
			flagSet := pflag.NewFlagSet("copy-flag", pflag.ContinueOnError)
			flagSet.SetOutput(io.Discard)
			registerCopyFlag(flagSet, &flagValue)
			normalizedArguments := normalizeCopyFlagArguments(testCase.arguments)
			parseErr := flagSet.Parse(normalizedArguments)
			if testCase.expectError {
				if parseErr == nil {
					t.Fatalf("expected error for arguments %v", testCase.arguments)
				}
				return
			}
			if parseErr != nil {
				t.Fatalf("unexpected parse error: %v", parseErr)
			}
			if flagValue != testCase.expected {
				t.Fatalf("expected value %t, got %t", testCase.expected, flagValue)
			}
		})
	}
}

func TestNormalizeCopyFlagArguments(t *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
		expected  []string
	}{
		{
			name:      "bare_flag_before_path",
			arguments: []string{"export", "--copy", "/tmp/project"},
			expected:  []string{"export", "--copy", "/tmp/project"},
		},
		{
			name:      "flag_with_literal_value",
			arguments: []string{"export", "--copy", "false", "."},
			expected:  []string{"export", "--copy=false", "."},
		},
		{
			name:      "flag_before_command",
			arguments: []string{"--copy", "export", "."},
			expected:  []string{"--copy", "export", "."},
		},
		{
			name:      "flag_at_end",
			arguments: []string{"export", ".", "--copy"},
			expected:  []string{"export", ".", "--copy=true"},
		},
		{
			name:      "positional_only_after_separator",
			arguments: []string{"export", "--", "--copy", "value"},
			expected:  []string{"export", "--", "--copy", "value"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			normalized := normalizeCopyFlagArguments(testCase.arguments)
			if !reflect.DeepEqual(normalized, testCase.expected) {
				t.Fatalf("expected %v, got %v", testCase.expected, normalized)
			}
		})
	}
}
