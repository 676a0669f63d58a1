package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"refdesk/internal/sync"
	"refdesk/internal/types"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case feedTickMsg:
		m.clampCursor()
		return m, m.waitForFeeds()

	case mutationErrMsg:
		cmd := m.setStatus(fmt.Sprintf("sync error: %v", msg.err), true)
		return m, tea.Batch(cmd, m.waitForMutationError())

	case statusExpireMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case uiModeSearch:
		return m.handleSearchKey(msg)
	case uiModeEdit:
		return m.handleEditKey(msg)
	case uiModeConfirmDelete:
		return m.handleConfirmKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c":
		return m.quit()
	case "up":
		m.moveCursor(-1)
		return m, nil
	case "down":
		m.moveCursor(1)
		return m, nil
	case "enter":
		m.detail = !m.detail
		return m, nil
	case "esc":
		if m.opts.Search != "" || m.opts.SortKey != "" {
			m.opts = sync.ViewOptions{}
			m.clampCursor()
		}
		return m, nil
	}

	switch actionFor(m.keymap, key) {
	case types.KeyActionQuit:
		return m.quit()
	case types.KeyActionMoveDown:
		m.moveCursor(1)
	case types.KeyActionMoveUp:
		m.moveCursor(-1)
	case types.KeyActionNextScope:
		m.scopeIdx = (m.scopeIdx + 1) % len(types.Scopes())
		m.cursor = 0
		m.detail = false
		m.openFeeds()
		return m, m.waitForFeeds()
	case types.KeyActionNextSection:
		m.section = (m.section + 1) % 3
		m.cursor = 0
		m.detail = false
		m.opts = sync.ViewOptions{}
	case types.KeyActionSearch:
		m.mode = uiModeSearch
		m.search.Clear()
		m.search.Focus()
	case types.KeyActionSort:
		m.cycleSort()
	case types.KeyActionAdd:
		m.editor = newRecordEditor(m.section, m.scope(), "", nil)
		m.mode = uiModeEdit
	case types.KeyActionEdit:
		if editor, ok := m.editorForSelection(); ok {
			m.editor = editor
			m.mode = uiModeEdit
		} else {
			return m, m.setStatus("only custom records can be edited", true)
		}
	case types.KeyActionDelete:
		if id, custom := m.selectedCustomID(); custom && id != "" {
			m.confirmRow = m.cursor
			m.mode = uiModeConfirmDelete
		} else {
			return m, m.setStatus("only custom records can be deleted", true)
		}
	case types.KeyActionCopyKeys:
		return m, m.copySelection()
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = uiModeBrowse
		m.search.Blur()
		m.search.Clear()
		m.opts.Search = ""
		m.clampCursor()
		return m, nil
	case "enter":
		m.mode = uiModeBrowse
		m.search.Blur()
		return m, nil
	case "ctrl+c":
		return m.quit()
	}
	cmd := m.search.Update(msg)
	m.opts.Search = m.search.Value()
	m.clampCursor()
	return m, cmd
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = uiModeBrowse
		m.editor = nil
		return m, nil
	case "tab", "down":
		m.editor.next()
		return m, nil
	case "shift+tab", "up":
		m.editor.prev()
		return m, nil
	case "enter":
		m.editor.save(m.collections)
		verb := "added"
		if m.editor.editing() {
			verb = "updated"
		}
		m.mode = uiModeBrowse
		m.editor = nil
		return m, m.setStatus(fmt.Sprintf("%s %s", m.section.title(), verb), false)
	case "ctrl+c":
		return m.quit()
	}
	return m, m.editor.Update(msg)
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.mode = uiModeBrowse
		if id, custom := m.selectedCustomID(); custom && id != "" {
			m.deleteSelected(id)
			return m, m.setStatus("deleted", false)
		}
		return m, nil
	case "n", "esc", "q":
		m.mode = uiModeBrowse
		return m, nil
	case "ctrl+c":
		return m.quit()
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.closeFeeds()
	return m, tea.Quit
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	count := m.rowCount()
	if count == 0 {
		m.cursor = 0
		return
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= count {
		m.cursor = count - 1
	}
}

// cycleSort walks none -> ascending -> descending -> none on the
// section's primary field.
func (m *Model) cycleSort() {
	key := m.primarySortKey()
	switch {
	case m.opts.SortKey == "":
		m.opts.SortKey = key
		m.opts.Direction = sync.SortAscending
	case m.opts.Direction == sync.SortAscending:
		m.opts.Direction = sync.SortDescending
	default:
		m.opts.SortKey = ""
		m.opts.Direction = sync.SortAscending
	}
	m.clampCursor()
}

func (m Model) primarySortKey() string {
	switch m.section {
	case sectionHotkeys:
		return "command"
	}
	return "title"
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.status = text
	m.statusErr = isErr
	m.statusSeq++
	return m.expireStatus(m.statusSeq)
}

func (m Model) editorForSelection() (*recordEditor, bool) {
	switch m.section {
	case sectionHotkeys:
		rows := m.hotkeyRows()
		if m.cursor < len(rows) && rows[m.cursor].IsCustom {
			h := rows[m.cursor]
			return newRecordEditor(m.section, m.scope(), h.ID, map[string]string{
				"command":     h.Command,
				"keys":        h.Keys,
				"description": h.Description,
			}), true
		}
	case sectionWorkflows:
		rows := m.workflowRows()
		if m.cursor < len(rows) && rows[m.cursor].IsCustom {
			w := rows[m.cursor]
			return newRecordEditor(m.section, m.scope(), w.ID, map[string]string{
				"title":       w.Title,
				"description": w.Description,
				"steps":       formatStepLines(w.Steps),
				"video":       w.VideoRef,
			}), true
		}
	case sectionNotes:
		rows := m.noteRows()
		if m.cursor < len(rows) {
			n := rows[m.cursor]
			return newRecordEditor(m.section, m.scope(), n.ID, map[string]string{
				"title":   n.Title,
				"content": n.Content,
			}), true
		}
	}
	return nil, false
}

func (m Model) selectedCustomID() (string, bool) {
	switch m.section {
	case sectionHotkeys:
		rows := m.hotkeyRows()
		if m.cursor < len(rows) {
			return rows[m.cursor].ID, rows[m.cursor].IsCustom
		}
	case sectionWorkflows:
		rows := m.workflowRows()
		if m.cursor < len(rows) {
			return rows[m.cursor].ID, rows[m.cursor].IsCustom
		}
	case sectionNotes:
		rows := m.noteRows()
		if m.cursor < len(rows) {
			return rows[m.cursor].ID, true
		}
	}
	return "", false
}

func (m Model) deleteSelected(id string) {
	switch m.section {
	case sectionHotkeys:
		m.collections.DeleteHotkey(id)
	case sectionWorkflows:
		m.collections.DeleteWorkflow(id)
	case sectionNotes:
		m.collections.DeleteNote(id)
	}
}

func (m Model) copySelection() tea.Cmd {
	var text, label string
	switch m.section {
	case sectionHotkeys:
		rows := m.hotkeyRows()
		if m.cursor < len(rows) {
			text = rows[m.cursor].Keys
			label = "keys copied"
		}
	case sectionWorkflows:
		rows := m.workflowRows()
		if m.cursor < len(rows) {
			text = rows[m.cursor].Title
			label = "title copied"
		}
	case sectionNotes:
		rows := m.noteRows()
		if m.cursor < len(rows) {
			text = rows[m.cursor].Content
			label = "note copied"
		}
	}
	if text == "" {
		return nil
	}
	if _, err := copyTextToClipboard(text); err != nil {
		return m.setStatus("copy failed: "+err.Error(), true)
	}
	return m.setStatus(label, false)
}

func formatStepLines(steps []types.WorkflowStep) string {
	out := ""
	for i, step := range steps {
		if i > 0 {
			out += "; "
		}
		out += step.Description
		if step.Timecode != "" {
			out += " @ " + step.Timecode
		}
	}
	return out
}
