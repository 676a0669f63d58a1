package types

import "testing"

func TestParseScopeCanonicalizesCase(t *testing.T) {
	cases := map[string]Scope{
		"Revit":     ScopeRevit,
		"revit":     ScopeRevit,
		"REVIT":     ScopeRevit,
		"sketchup":  ScopeSketchUp,
		"SketchUp":  ScopeSketchUp,
		"autocad":   ScopeAutoCAD,
		" AutoCAD ": ScopeAutoCAD,
	}
	for raw, want := range cases {
		got, err := ParseScope(raw)
		if err != nil {
			t.Fatalf("ParseScope(%q): %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseScope(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestParseScopeRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "  ", "Blender", "revit2024"} {
		if _, err := ParseScope(raw); err == nil {
			t.Fatalf("ParseScope(%q) should fail", raw)
		}
	}
}

func TestScopeValid(t *testing.T) {
	for _, scope := range Scopes() {
		if !scope.Valid() {
			t.Fatalf("scope %q should be valid", scope)
		}
	}
	if Scope("revit").Valid() {
		t.Fatal("lowercase scope must not be valid; canonical casing only")
	}
}
