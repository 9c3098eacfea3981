package prompt

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"maybe\n", false},
		{"", false}, // EOF
	}

	for _, tt := range tests {
		var out bytes.Buffer
		c := NewConfirmerWithIO(strings.NewReader(tt.input), &out)
		if got := c.Confirm("delete?"); got != tt.want {
			t.Errorf("Confirm with input %q = %v, want %v", tt.input, got, tt.want)
		}
		if !strings.Contains(out.String(), "delete?") {
			t.Errorf("prompt not written: %q", out.String())
		}
	}
}
