package pyrules

import (
	"strings"
	"testing"
)

func TestAllRulesAreDefined(t *testing.T) {
	seen := map[string]Rule{}
	for _, r := range All() {
		code := r.Code()
		if !strings.HasPrefix(code, "PYR") {
			t.Fatalf("rule %d has no proper code: %q", r, code)
		}
		if prev, ok := seen[code]; ok {
			t.Fatalf("code %s is shared by rules %d and %d", code, prev, r)
		}
		seen[code] = r

		if !strings.HasPrefix(r.String(), code+": ") {
			t.Fatalf("String of %s must start with its code, got %q", code, r.String())
		}
		if strings.Contains(r.Description(), "unknown") {
			t.Fatalf("rule %s has no description", code)
		}
	}
}

func TestUnknownRule(t *testing.T) {
	bad := Rule(999)
	if !strings.Contains(bad.Code(), "unknown") {
		t.Fatalf("expected an unknown marker, got %q", bad.Code())
	}
}
