package main

import (
	"io"
	"os"

	"refdesk/internal/types"
)

type commandRunner interface {
	Run(args []string) error
}

type commandWiring struct {
	stdout     io.Writer
	stderr     io.Writer
	newClient  clientFactory
	runDaemon  func(background bool) error
	killDaemon func() error
	version    string
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newDaemonClient,
		runDaemon: runDaemonProcess,
		killDaemon: func() error {
			return killDaemonWithFactory(newDaemonClient)
		},
		version: buildVersion(),
	}
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	return map[string]commandRunner{
		"daemon":    NewDaemonCommand(wiring.stderr, wiring.runDaemon, wiring.killDaemon),
		"ui":        NewUICommand(wiring.stderr, wiring.newClient, wiring.version),
		"hotkeys":   NewCollectionCommand(types.CollectionHotkeys, wiring.stdout, wiring.stderr, wiring.newClient),
		"workflows": NewCollectionCommand(types.CollectionWorkflows, wiring.stdout, wiring.stderr, wiring.newClient),
		"notes":     NewCollectionCommand(types.CollectionNotes, wiring.stdout, wiring.stderr, wiring.newClient),
		"config":    NewConfigCommand(wiring.stdout, wiring.stderr),
	}
}
