package main

import (
	"context"
	"flag"
	"io"

	"refdesk/internal/types"
)

type UICommand struct {
	stderr    io.Writer
	newClient clientFactory
	version   string
}

func NewUICommand(stderr io.Writer, newClient clientFactory, version string) *UICommand {
	return &UICommand{
		stderr:    stderr,
		newClient: newClient,
		version:   version,
	}
}

func (c *UICommand) Run(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	restartDaemon := fs.Bool("restart-daemon", false, "restart daemon if version mismatch")
	scopeFlag := fs.String("scope", "", "initial scope (Revit, SketchUp, AutoCAD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	if err := client.EnsureDaemonVersion(ctx, c.version, *restartDaemon); err != nil {
		return err
	}

	scope := defaultScope()
	if *scopeFlag != "" {
		parsed, err := types.ParseScope(*scopeFlag)
		if err != nil {
			return err
		}
		scope = parsed
	}
	return client.RunUI(scope)
}
