package sync

import (
	"sort"
	"strings"

	"refdesk/internal/types"
)

type SortDirection int

const (
	SortAscending SortDirection = iota
	SortDescending
)

// ViewOptions selects the ordering and filtering of one rendered
// view. Zero value means "no sort, no search".
type ViewOptions struct {
	SortKey   string
	Direction SortDirection
	Search    string
}

func (o ViewOptions) active() bool {
	return o.SortKey != "" || strings.TrimSpace(o.Search) != ""
}

// buildView merges scope-filtered static records with live records
// into one display sequence. Pure: same inputs, same output. Sorting
// is stable and lexicographic on the string value of the sort key;
// searching is a case-insensitive substring match applied after the
// sort so result order is preserved. When pinCustom is set and
// neither sort nor search is active, custom records come first.
func buildView[T any](
	static, live []T,
	scope types.Scope,
	scopeOf func(T) types.Scope,
	field func(T, string) string,
	isCustom func(T) bool,
	searchFields []string,
	pinCustom bool,
	opts ViewOptions,
) []T {
	rows := make([]T, 0, len(static)+len(live))
	for _, record := range static {
		if scopeOf(record) == scope {
			rows = append(rows, record)
		}
	}
	// The live feed is already scope-filtered by the remote query.
	rows = append(rows, live...)

	if opts.SortKey != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			a := field(rows[i], opts.SortKey)
			b := field(rows[j], opts.SortKey)
			if opts.Direction == SortDescending {
				return a > b
			}
			return a < b
		})
	} else if pinCustom && !opts.active() {
		sort.SliceStable(rows, func(i, j int) bool {
			return isCustom(rows[i]) && !isCustom(rows[j])
		})
	}

	term := strings.ToLower(strings.TrimSpace(opts.Search))
	if term == "" {
		return rows
	}
	filtered := rows[:0:0]
	for _, record := range rows {
		for _, name := range searchFields {
			if strings.Contains(strings.ToLower(field(record, name)), term) {
				filtered = append(filtered, record)
				break
			}
		}
	}
	return filtered
}

// BuildHotkeyView merges static and custom hotkeys for one scope.
// Sortable and searchable fields: command, keys, description.
func BuildHotkeyView(static, live []types.Hotkey, scope types.Scope, opts ViewOptions) []types.Hotkey {
	return buildView(
		static, live, scope,
		func(h types.Hotkey) types.Scope { return h.Scope },
		hotkeyField,
		func(h types.Hotkey) bool { return h.IsCustom },
		[]string{"command", "keys", "description"},
		false,
		opts,
	)
}

// BuildWorkflowView merges static and custom workflows for one scope.
// With no sort or search active, custom workflows are pinned before
// the static set.
func BuildWorkflowView(static, live []types.Workflow, scope types.Scope, opts ViewOptions) []types.Workflow {
	return buildView(
		static, live, scope,
		func(w types.Workflow) types.Scope { return w.Scope },
		workflowField,
		func(w types.Workflow) bool { return w.IsCustom },
		[]string{"title", "description"},
		true,
		opts,
	)
}

// BuildNoteView orders the principal's notes for one scope. Notes
// have no static counterpart, so static is usually empty.
func BuildNoteView(static, live []types.Note, scope types.Scope, opts ViewOptions) []types.Note {
	return buildView(
		static, live, scope,
		func(n types.Note) types.Scope { return n.Scope },
		noteField,
		func(n types.Note) bool { return n.IsCustom },
		[]string{"title", "content"},
		false,
		opts,
	)
}

// Missing or unknown fields compare and search as the empty string;
// views never fail on partial records.

func hotkeyField(h types.Hotkey, name string) string {
	switch name {
	case "command":
		return h.Command
	case "keys":
		return h.Keys
	case "description":
		return h.Description
	}
	return ""
}

func workflowField(w types.Workflow, name string) string {
	switch name {
	case "title":
		return w.Title
	case "description":
		return w.Description
	}
	return ""
}

func noteField(n types.Note, name string) string {
	switch name {
	case "title":
		return n.Title
	case "content":
		return n.Content
	}
	return ""
}
