package render

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
		wantNot  string
	}{
		{"bold", "**Commands:**", "<strong>Commands:</strong>", "<p>"},
		{"code", "Model: `gpt-4o`", "<code>gpt-4o</code>", "<p>"},
		{"list items become bullets", "- one\n- two", "• one", "<li>"},
		{"angle brackets escaped", "a < b", "&lt;", "<p>"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ToHTML(test.markdown)

			if !strings.Contains(got, test.want) {
				t.Errorf("ToHTML(%q) = %q, want it to contain %q", test.markdown, got, test.want)
			}
			if strings.Contains(got, test.wantNot) {
				t.Errorf("ToHTML(%q) = %q, must not contain %q", test.markdown, got, test.wantNot)
			}
		})
	}
}
