package format

import (
	"strings"
	"testing"
)

func TestJSONFormatter(t *testing.T) {
	var sb strings.Builder
	err := JSONFormatter{}.Write(&sb, map[string]any{"name": "Receipt", "pages": 2})
	if err != nil {
		t.Fatalf("write json: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, `"name":"Receipt"`) {
		t.Fatalf("unexpected json output %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatal("expected trailing newline")
	}
}

func TestYAMLFormatter(t *testing.T) {
	var sb strings.Builder
	err := YAMLFormatter{}.Write(&sb, map[string]any{"name": "Receipt", "pages": 2})
	if err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "name: Receipt") {
		t.Fatalf("unexpected yaml output %q", out)
	}
	if !strings.Contains(out, "pages: 2") {
		t.Fatalf("unexpected yaml output %q", out)
	}
}
