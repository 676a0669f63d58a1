package app

import (
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
)

type searchInput struct {
	input textinput.Model
}

func newSearchInput() *searchInput {
	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "search"
	return &searchInput{input: input}
}

func (s *searchInput) Focus() {
	s.input.Focus()
}

func (s *searchInput) Blur() {
	s.input.Blur()
}

func (s *searchInput) Clear() {
	s.input.SetValue("")
}

func (s *searchInput) Value() string {
	return s.input.Value()
}

func (s *searchInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *searchInput) View() string {
	return s.input.View()
}
