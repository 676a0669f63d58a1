// Package refdata holds the reference records that ship with the app.
// These are immutable: they have no owner, never carry the custom
// flag, and are merged with the principal's live records at view time.
package refdata

import "refdesk/internal/types"

// Hotkeys returns the built-in hotkey glossary. Callers get a fresh
// slice; treat the records as read-only.
func Hotkeys() []types.Hotkey {
	return append([]types.Hotkey(nil), hotkeys...)
}

// Workflows returns the built-in workflow guides.
func Workflows() []types.Workflow {
	return append([]types.Workflow(nil), workflows...)
}

// HotkeysForScope filters the static glossary to one product context.
func HotkeysForScope(scope types.Scope) []types.Hotkey {
	out := make([]types.Hotkey, 0, len(hotkeys))
	for _, h := range hotkeys {
		if h.Scope == scope {
			out = append(out, h)
		}
	}
	return out
}

// WorkflowsForScope filters the static workflows to one product context.
func WorkflowsForScope(scope types.Scope) []types.Workflow {
	out := make([]types.Workflow, 0, len(workflows))
	for _, w := range workflows {
		if w.Scope == scope {
			out = append(out, w)
		}
	}
	return out
}
