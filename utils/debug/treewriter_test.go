package debug

import (
	"testing"
)

func TestTreeWriter_Empty(t *testing.T) {
	if got := NewTreeWriter().String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
}

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{"no depth", 0, "Document %s", []any{"a"}, "Document a\n"},
		{"nested", 2, "Tweak[%d]", []any{3}, "    Tweak[3]\n"},
		{"no args", 1, "plain", nil, "  plain\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tw := NewTreeWriter()
	tw.TextBlock(1, "Declarations", "margin:0;\n")
	tw.TextBlock(0, "Empty", "")
	want := "  Declarations: \"margin:0;\\n\"\nEmpty: \n"
	if got := tw.String(); got != want {
		t.Errorf("TextBlock() = %q, want %q", got, want)
	}
}

func TestTreeWriter_List(t *testing.T) {
	tw := NewTreeWriter()
	tw.List(0, "Selectors", []string{".a", ".b"})
	tw.List(0, "Nothing", nil)
	want := "Selectors:\n  .a\n  .b\n"
	if got := tw.String(); got != want {
		t.Errorf("List() = %q, want %q", got, want)
	}
}
