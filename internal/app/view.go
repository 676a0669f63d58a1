package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"refdesk/internal/sync"
	"refdesk/internal/types"
)

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Faint(true)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true)
	headerStyle    = lipgloss.NewStyle().Bold(true).Faint(true)
	cursorStyle    = lipgloss.NewStyle().Bold(true)
	customStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	statusStyle    = lipgloss.NewStyle().Faint(true)
	detailStyle    = lipgloss.NewStyle().PaddingLeft(2)
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	width := m.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.mode {
	case uiModeEdit:
		b.WriteString(m.renderEditor())
	default:
		b.WriteString(m.renderRows(width))
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderTabs() string {
	var tabs []string
	for i, scope := range types.Scopes() {
		style := tabStyle
		if i == m.scopeIdx {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(string(scope)))
	}
	return strings.Join(tabs, "")
}

func (m Model) renderHeader() string {
	header := m.section.title()
	if m.opts.SortKey != "" {
		dir := "asc"
		if m.opts.Direction == sync.SortDescending {
			dir = "desc"
		}
		header += fmt.Sprintf("  sort:%s/%s", m.opts.SortKey, dir)
	}
	if m.mode == uiModeSearch {
		header += "  " + m.search.View()
	} else if m.opts.Search != "" {
		header += fmt.Sprintf("  search:%q", m.opts.Search)
	}
	return headerStyle.Render(header)
}

func (m Model) renderRows(width int) string {
	loading, feedErr := m.feedState()
	if feedErr != nil {
		return errStyle.Render("live data unavailable: " + feedErr.Error())
	}
	if loading {
		return statusStyle.Render("loading...")
	}

	switch m.section {
	case sectionWorkflows:
		return m.renderWorkflowRows(width)
	case sectionNotes:
		return m.renderNoteRows(width)
	}
	return m.renderHotkeyRows(width)
}

func (m Model) renderHotkeyRows(width int) string {
	rows := m.hotkeyRows()
	if len(rows) == 0 {
		return statusStyle.Render("no hotkeys")
	}
	var b strings.Builder
	for i, h := range rows {
		line := fmt.Sprintf("%-12s %-28s %s", h.Keys, truncate(h.Command, 28), h.Description)
		b.WriteString(m.renderRow(i, line, h.IsCustom, width))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderWorkflowRows(width int) string {
	rows := m.workflowRows()
	if len(rows) == 0 {
		return statusStyle.Render("no workflows")
	}
	var b strings.Builder
	for i, w := range rows {
		line := fmt.Sprintf("%-32s %s", truncate(w.Title, 32), truncate(w.Description, 40))
		b.WriteString(m.renderRow(i, line, w.IsCustom, width))
		if m.detail && i == m.cursor {
			b.WriteString(renderWorkflowDetail(w, width))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderNoteRows(width int) string {
	rows := m.noteRows()
	if len(rows) == 0 {
		return statusStyle.Render("no notes")
	}
	var b strings.Builder
	for i, n := range rows {
		line := fmt.Sprintf("%-32s %s", truncate(n.Title, 32), truncate(n.Content, 40))
		b.WriteString(m.renderRow(i, line, true, width))
		if m.detail && i == m.cursor {
			b.WriteString(detailStyle.Render(renderMarkdown(n.Content, width-4)))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderRow(i int, line string, custom bool, width int) string {
	marker := "  "
	if i == m.cursor {
		marker = "> "
	}
	line = truncate(marker+line, width)
	switch {
	case i == m.cursor:
		line = cursorStyle.Render(line)
	case custom:
		line = customStyle.Render(line)
	}
	return line + "\n"
}

func renderWorkflowDetail(w types.Workflow, width int) string {
	var b strings.Builder
	for idx, step := range w.Steps {
		line := fmt.Sprintf("%d. %s", idx+1, step.Description)
		if step.Timecode != "" {
			line += fmt.Sprintf(" (at %ds)", sync.ParseTimeCode(step.Timecode))
		}
		b.WriteString(detailStyle.Render(truncate(line, width-4)))
		b.WriteString("\n")
	}
	if w.VideoRef != "" {
		b.WriteString(detailStyle.Render("video: " + sync.NormalizeVideoRef(w.VideoRef)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderEditor() string {
	if m.editor == nil {
		return ""
	}
	verb := "Add"
	if m.editor.editing() {
		verb = "Edit"
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s %s (%s)", verb, m.section.title(), m.scope())))
	b.WriteString("\n")
	for i, field := range m.editor.fields {
		marker := "  "
		if i == m.editor.focusIdx {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%-12s %s\n", marker, field.name, field.input.View()))
	}
	b.WriteString(statusStyle.Render("enter save · esc cancel · tab next field"))
	return b.String()
}

func (m Model) renderFooter() string {
	if m.mode == uiModeConfirmDelete {
		return errStyle.Render("delete selected record? y/n")
	}
	if m.status != "" {
		if m.statusErr {
			return errStyle.Render(m.status)
		}
		return statusStyle.Render(m.status)
	}
	bindings := m.keymap.Bindings
	return statusStyle.Render(fmt.Sprintf(
		"%s scope · %s section · %s search · %s sort · %s add · %s edit · %s delete · %s copy · %s quit",
		bindings[types.KeyActionNextScope],
		bindings[types.KeyActionNextSection],
		bindings[types.KeyActionSearch],
		bindings[types.KeyActionSort],
		bindings[types.KeyActionAdd],
		bindings[types.KeyActionEdit],
		bindings[types.KeyActionDelete],
		bindings[types.KeyActionCopyKeys],
		bindings[types.KeyActionQuit],
	))
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
