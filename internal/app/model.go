// Package app is the terminal UI: scope tabs across the top, one
// section per record kind, live data underneath via the sync layer.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"refdesk/internal/refdata"
	"refdesk/internal/sync"
	"refdesk/internal/types"
)

const (
	tickInterval  = 100 * time.Millisecond
	statusTimeout = 4 * time.Second
)

type uiMode int

const (
	uiModeBrowse uiMode = iota
	uiModeSearch
	uiModeEdit
	uiModeConfirmDelete
)

type section int

const (
	sectionHotkeys section = iota
	sectionWorkflows
	sectionNotes
)

func (s section) collection() types.Collection {
	switch s {
	case sectionWorkflows:
		return types.CollectionWorkflows
	case sectionNotes:
		return types.CollectionNotes
	}
	return types.CollectionHotkeys
}

func (s section) title() string {
	switch s {
	case sectionWorkflows:
		return "Workflows"
	case sectionNotes:
		return "Notes"
	}
	return "Hotkeys"
}

type feedTickMsg struct{}

type mutationErrMsg struct {
	err sync.MutationError
}

type statusExpireMsg struct {
	seq int
}

type Model struct {
	collections *sync.Collections
	keymap      *types.Keymap

	scopeIdx int
	section  section
	cursor   int

	hotkeyFeed   *sync.Feed[types.Hotkey]
	workflowFeed *sync.Feed[types.Workflow]
	noteFeed     *sync.Feed[types.Note]

	opts   sync.ViewOptions
	mode   uiMode
	search *searchInput
	editor *recordEditor

	detail     bool
	status     string
	statusErr  bool
	statusSeq  int
	width      int
	height     int
	quitting   bool
	confirmRow int
}

func NewModel(collections *sync.Collections, keymap *types.Keymap, defaultScope types.Scope) Model {
	m := Model{
		collections: collections,
		keymap:      keymap,
		search:      newSearchInput(),
	}
	if keymap == nil {
		m.keymap = types.DefaultKeymap()
	}
	for i, scope := range types.Scopes() {
		if scope == defaultScope {
			m.scopeIdx = i
		}
	}
	m.openFeeds()
	return m
}

func (m Model) scope() types.Scope {
	return types.Scopes()[m.scopeIdx]
}

func (m *Model) openFeeds() {
	m.closeFeeds()
	scope := m.scope()
	m.hotkeyFeed = m.collections.Hotkeys(scope)
	m.workflowFeed = m.collections.Workflows(scope)
	m.noteFeed = m.collections.Notes(scope)
}

func (m *Model) closeFeeds() {
	if m.hotkeyFeed != nil {
		m.hotkeyFeed.Release()
	}
	if m.workflowFeed != nil {
		m.workflowFeed.Release()
	}
	if m.noteFeed != nil {
		m.noteFeed.Release()
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForFeeds(), m.waitForMutationError())
}

// waitForFeeds wakes the program when any live feed changes. Ticks
// coalesce on the sync side, so a flat poll-style wait is enough.
func (m Model) waitForFeeds() tea.Cmd {
	hotkeys := m.hotkeyFeed.Changed()
	workflows := m.workflowFeed.Changed()
	notes := m.noteFeed.Changed()
	return func() tea.Msg {
		select {
		case <-hotkeys:
		case <-workflows:
		case <-notes:
		case <-time.After(tickInterval):
		}
		return feedTickMsg{}
	}
}

func (m Model) waitForMutationError() tea.Cmd {
	errs := m.collections.Errors()
	return func() tea.Msg {
		err, ok := <-errs
		if !ok {
			return nil
		}
		return mutationErrMsg{err: err}
	}
}

func (m Model) expireStatus(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return statusExpireMsg{seq: seq}
	})
}

// hotkeyRows merges the static dataset with the live feed for the
// current scope and view options.
func (m Model) hotkeyRows() []types.Hotkey {
	live, _, _ := m.hotkeyFeed.State()
	return sync.BuildHotkeyView(refdata.Hotkeys(), live, m.scope(), m.opts)
}

func (m Model) workflowRows() []types.Workflow {
	live, _, _ := m.workflowFeed.State()
	return sync.BuildWorkflowView(refdata.Workflows(), live, m.scope(), m.opts)
}

func (m Model) noteRows() []types.Note {
	live, _, _ := m.noteFeed.State()
	return sync.BuildNoteView(nil, live, m.scope(), m.opts)
}

func (m Model) rowCount() int {
	switch m.section {
	case sectionWorkflows:
		return len(m.workflowRows())
	case sectionNotes:
		return len(m.noteRows())
	}
	return len(m.hotkeyRows())
}

func (m Model) feedState() (loading bool, err error) {
	switch m.section {
	case sectionWorkflows:
		_, loading, err = m.workflowFeed.State()
	case sectionNotes:
		_, loading, err = m.noteFeed.State()
	default:
		_, loading, err = m.hotkeyFeed.State()
	}
	return loading, err
}
