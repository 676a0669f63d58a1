package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"refdesk/internal/sync"
	"refdesk/internal/types"
)

// recordEditor is the add/edit form: one text input per visible
// field. On save it dispatches a create or replace through the
// gateway; only the visible fields travel, the store merge keeps
// everything else.
type recordEditor struct {
	section  section
	editID   string
	scope    types.Scope
	fields   []editorField
	focusIdx int
}

type editorField struct {
	name  string
	input textinput.Model
}

func editorFieldNames(s section) []string {
	switch s {
	case sectionWorkflows:
		return []string{"title", "description", "steps", "video"}
	case sectionNotes:
		return []string{"title", "content"}
	}
	return []string{"command", "keys", "description"}
}

func newRecordEditor(s section, scope types.Scope, editID string, values map[string]string) *recordEditor {
	names := editorFieldNames(s)
	fields := make([]editorField, 0, len(names))
	for i, name := range names {
		input := textinput.New()
		input.Prompt = ""
		input.Placeholder = name
		input.SetValue(values[name])
		if i == 0 {
			input.Focus()
		}
		fields = append(fields, editorField{name: name, input: input})
	}
	return &recordEditor{
		section: s,
		editID:  editID,
		scope:   scope,
		fields:  fields,
	}
}

func (e *recordEditor) editing() bool {
	return e.editID != ""
}

func (e *recordEditor) next() {
	e.fields[e.focusIdx].input.Blur()
	e.focusIdx = (e.focusIdx + 1) % len(e.fields)
	e.fields[e.focusIdx].input.Focus()
}

func (e *recordEditor) prev() {
	e.fields[e.focusIdx].input.Blur()
	e.focusIdx = (e.focusIdx - 1 + len(e.fields)) % len(e.fields)
	e.fields[e.focusIdx].input.Focus()
}

func (e *recordEditor) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.fields[e.focusIdx].input, cmd = e.fields[e.focusIdx].input.Update(msg)
	return cmd
}

func (e *recordEditor) value(name string) string {
	for _, field := range e.fields {
		if field.name == name {
			return strings.TrimSpace(field.input.Value())
		}
	}
	return ""
}

// save dispatches the form through the mutation gateway. Fire and
// forget: the next snapshot shows the result, the error sink shows
// the failures.
func (e *recordEditor) save(collections *sync.Collections) {
	switch e.section {
	case sectionHotkeys:
		e.saveHotkey(collections)
	case sectionWorkflows:
		e.saveWorkflow(collections)
	case sectionNotes:
		e.saveNote(collections)
	}
}

func (e *recordEditor) saveHotkey(collections *sync.Collections) {
	if e.editing() {
		command := e.value("command")
		keys := e.value("keys")
		description := e.value("description")
		collections.ReplaceHotkey(e.editID, types.HotkeyPatch{
			Command:     &command,
			Keys:        &keys,
			Description: &description,
		})
		return
	}
	collections.CreateHotkey(types.Hotkey{
		Command:     e.value("command"),
		Keys:        e.value("keys"),
		Description: e.value("description"),
		Scope:       e.scope,
	})
}

func (e *recordEditor) saveWorkflow(collections *sync.Collections) {
	steps := parseStepLines(e.value("steps"))
	video := sync.NormalizeVideoRef(e.value("video"))
	if e.editing() {
		title := e.value("title")
		description := e.value("description")
		collections.ReplaceWorkflow(e.editID, types.WorkflowPatch{
			Title:       &title,
			Description: &description,
			Steps:       &steps,
			VideoRef:    &video,
		})
		return
	}
	collections.CreateWorkflow(types.Workflow{
		Title:       e.value("title"),
		Description: e.value("description"),
		Steps:       steps,
		VideoRef:    video,
		Scope:       e.scope,
	})
}

func (e *recordEditor) saveNote(collections *sync.Collections) {
	if e.editing() {
		title := e.value("title")
		content := e.value("content")
		collections.ReplaceNote(e.editID, types.NotePatch{
			Title:   &title,
			Content: &content,
		})
		return
	}
	collections.CreateNote(types.Note{
		Title:   e.value("title"),
		Content: e.value("content"),
		Scope:   e.scope,
	})
}

// parseStepLines splits "step @ 1m30s; step two" style input into
// workflow steps. The part after "@" is kept as the raw time code;
// parsing to seconds happens at render time.
func parseStepLines(raw string) []types.WorkflowStep {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	steps := make([]types.WorkflowStep, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		step := types.WorkflowStep{Description: trimmed}
		if at := strings.LastIndex(trimmed, "@"); at >= 0 {
			step.Description = strings.TrimSpace(trimmed[:at])
			step.Timecode = strings.TrimSpace(trimmed[at+1:])
		}
		steps = append(steps, step)
	}
	return steps
}
