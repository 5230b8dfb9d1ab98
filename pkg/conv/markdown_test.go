package conv

import (
	"strings"
	"testing"
)

func TestMarkdownToText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{
			name:     "plain text",
			input:    "The sky is blue.",
			contains: "The sky is blue.",
		},
		{
			name:     "bold stripped",
			input:    "**bold** statement",
			contains: "bold statement",
		},
		{
			name:     "inline code kept",
			input:    "run `go test` now",
			contains: "go test",
		},
		{
			name:     "heading flattened",
			input:    "# Answer\n\nbody text",
			contains: "body text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToText([]byte(tt.input))
			if !strings.Contains(got, tt.contains) {
				t.Errorf("MarkdownToText(%q) = %q, want it to contain %q", tt.input, got, tt.contains)
			}
		})
	}
}

func TestMarkdownToText_Empty(t *testing.T) {
	if got := MarkdownToText(nil); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
