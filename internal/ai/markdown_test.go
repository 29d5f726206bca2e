package ai

import "testing"

func TestMarkdownToText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"heading dropped", "# Title\nBody text", "Body text"},
		{"subheading kept", "## Section\nBody", "## Section\nBody"},
		{"bold", "This is **important**.", "This is important."},
		{"italic", "This is *subtle*.", "This is subtle."},
		{"inline code", "Run `go test` now", "Run go test now"},
		{"link keeps label", "See [the docs](https://example.com).", "See the docs."},
		{"blank lines collapse", "one\n\n\ntwo", "one\ntwo"},
		{"list dashes", "- apples\n- pears", "apples\npears"},
		{"double quotes", `say "hi"`, "say 'hi'"},
		{"trimmed", "\n\n  text  \n", "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MarkdownToText(tt.in); got != tt.want {
				t.Errorf("MarkdownToText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
