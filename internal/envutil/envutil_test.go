package envutil

import "testing"

func TestParseBool(t *testing.T) {
	truthy := []string{"1", "true", "TRUE", " t ", "yes", "Y", "on"}
	for _, v := range truthy {
		if !ParseBool(v) {
			t.Fatalf("expected %q to parse true", v)
		}
	}
	falsy := []string{"", "0", "false", "off", "nope"}
	for _, v := range falsy {
		if ParseBool(v) {
			t.Fatalf("expected %q to parse false", v)
		}
	}
}

func TestString(t *testing.T) {
	t.Setenv("COUNCIL_TEST_KEY", "  value  ")
	if got := String("COUNCIL_TEST_KEY", "fallback"); got != "value" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := String("COUNCIL_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
