package validation

import (
	"strings"
	"testing"
)

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "trims whitespace", input: "  hello  ", expected: "hello"},
		{name: "keeps newlines and tabs", input: "line1\n\tline2", expected: "line1\n\tline2"},
		{name: "strips control characters", input: "a\x00b\x1fc", expected: "abc"},
		{name: "empty", input: "", expected: ""},
		{name: "only whitespace", input: " \t\n ", expected: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SanitizeText(tt.input); got != tt.expected {
				t.Errorf("SanitizeText(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidateTaskInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   TaskInput
		wantErr string
	}{
		{name: "minimal valid", input: TaskInput{Title: "Buy groceries"}},
		{
			name:  "all fields",
			input: TaskInput{Title: "Meeting", Notes: "bring slides", Location: "Office 3B"},
		},
		{name: "missing title", input: TaskInput{Notes: "no title"}, wantErr: "title must not be empty"},
		{
			name:    "title too long",
			input:   TaskInput{Title: strings.Repeat("x", 501)},
			wantErr: "title exceeds 500 characters",
		},
		{
			name:    "notes too long",
			input:   TaskInput{Title: "ok", Notes: strings.Repeat("n", 10001)},
			wantErr: "notes exceeds 10000 characters",
		},
		{
			name:    "location too long",
			input:   TaskInput{Title: "ok", Location: strings.Repeat("l", 501)},
			wantErr: "location exceeds 500 characters",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateTaskInput(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateTaskInput(%+v) unexpected error: %v", tt.input, err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("ValidateTaskInput error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateTaskFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "all", value: "all"},
		{name: "pending", value: "pending"},
		{name: "completed", value: "completed"},
		{name: "unknown", value: "finished", wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "case sensitive", value: "Pending", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateTaskFilter(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTaskFilter(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}
