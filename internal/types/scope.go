package types

import (
	"fmt"
	"strings"
)

// Scope selects which product context a record or query belongs to.
// Every record and every live query carries exactly one scope; views
// never mix records from two scopes.
type Scope string

const (
	ScopeRevit    Scope = "Revit"
	ScopeSketchUp Scope = "SketchUp"
	ScopeAutoCAD  Scope = "AutoCAD"
)

func Scopes() []Scope {
	return []Scope{ScopeRevit, ScopeSketchUp, ScopeAutoCAD}
}

func (s Scope) Valid() bool {
	switch s {
	case ScopeRevit, ScopeSketchUp, ScopeAutoCAD:
		return true
	}
	return false
}

func ParseScope(raw string) (Scope, error) {
	trimmed := strings.TrimSpace(raw)
	for _, scope := range Scopes() {
		if strings.EqualFold(trimmed, string(scope)) {
			return scope, nil
		}
	}
	return "", fmt.Errorf("unknown scope %q", raw)
}
