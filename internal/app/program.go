package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"refdesk/internal/client"
	"refdesk/internal/sync"
	"refdesk/internal/types"
)

// Run wires the sync layer around an authenticated client and drives
// the terminal UI until the user quits.
func Run(c *client.Client, defaultScope types.Scope) error {
	ctx := context.Background()
	principal, err := c.Identity(ctx)
	if err != nil {
		return fmt.Errorf("resolve identity: %w", err)
	}

	keymap, err := c.GetKeymap(ctx)
	if err != nil || keymap == nil {
		keymap = types.DefaultKeymap()
	}

	collections := sync.NewCollections(c, principal, nil)
	defer collections.Close()

	model := NewModel(collections, keymap, defaultScope)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
