package main

import (
	"fmt"
	"os"
)

const usageText = `refdesk is a CAD reference tool: hotkeys, workflows and notes.

Usage:
  refdesk <command> [flags]

Commands:
  ui         run the terminal UI
  daemon     run the local document daemon
  hotkeys    list or edit hotkey records
  workflows  list or edit workflow records
  notes      list or edit note records
  config     print configuration (effective or defaults)
  help       show help

Flags:
  -h, --help   show help

Daemon flags:
  --background    run in background (logs to file)
  --force         stop any running daemon before starting
  --kill          stop any running daemon and exit

Examples:
  refdesk ui
  refdesk hotkeys --scope SketchUp
  refdesk hotkeys add --command "Push/Pull" --keys P --scope SketchUp
  refdesk notes add --title "Layer states" --content "LAYERP restores." --scope AutoCAD
  refdesk config --format toml
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return
	}

	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}
