package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"refdesk/internal/store"
	"refdesk/internal/sync"
	"refdesk/internal/types"
)

// CollectionCommand lists, adds and removes records of one collection
// through the daemon. `list` is the default verb.
type CollectionCommand struct {
	collection types.Collection
	stdout     io.Writer
	stderr     io.Writer
	newClient  clientFactory
}

func NewCollectionCommand(collection types.Collection, stdout, stderr io.Writer, newClient clientFactory) *CollectionCommand {
	return &CollectionCommand{
		collection: collection,
		stdout:     stdout,
		stderr:     stderr,
		newClient:  newClient,
	}
}

func (c *CollectionCommand) Run(args []string) error {
	verb := "list"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		verb = args[0]
		args = args[1:]
	}
	switch verb {
	case "list":
		return c.runList(args)
	case "add":
		return c.runAdd(args)
	case "rm":
		return c.runRemove(args)
	}
	return fmt.Errorf("unknown %s verb: %s (want list, add or rm)", c.collection, verb)
}

func (c *CollectionCommand) runList(args []string) error {
	fs := flag.NewFlagSet(string(c.collection), flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	scopeFlag := fs.String("scope", "", "scope to list (Revit, SketchUp, AutoCAD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	scope, err := c.resolveScope(*scopeFlag)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	if err := client.EnsureDaemon(ctx); err != nil {
		return err
	}
	docs, err := client.ListDocuments(ctx, c.collection, scope)
	if err != nil {
		return err
	}
	c.printDocuments(docs)
	return nil
}

func (c *CollectionCommand) runAdd(args []string) error {
	fs := flag.NewFlagSet(string(c.collection)+" add", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	scopeFlag := fs.String("scope", "", "record scope (Revit, SketchUp, AutoCAD)")

	var command, keys, description, title, content, video string
	var steps stringList
	switch c.collection {
	case types.CollectionHotkeys:
		fs.StringVar(&command, "command", "", "command name")
		fs.StringVar(&keys, "keys", "", "key sequence")
		fs.StringVar(&description, "description", "", "description")
	case types.CollectionWorkflows:
		fs.StringVar(&title, "title", "", "workflow title")
		fs.StringVar(&description, "description", "", "description")
		fs.StringVar(&video, "video", "", "video URL or id")
		fs.Var(&steps, "step", "workflow step, \"description @ 1m30s\" (repeatable)")
	case types.CollectionNotes:
		fs.StringVar(&title, "title", "", "note title")
		fs.StringVar(&content, "content", "", "note body (markdown)")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	scope, err := c.resolveScope(*scopeFlag)
	if err != nil {
		return err
	}

	fields, err := c.buildFields(scope, command, keys, description, title, content, video, steps)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	if err := client.EnsureDaemon(ctx); err != nil {
		return err
	}
	doc, err := client.CreateDocument(ctx, c.collection, fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "added %s %s\n", strings.TrimSuffix(string(c.collection), "s"), doc.ID())
	return nil
}

func (c *CollectionCommand) runRemove(args []string) error {
	fs := flag.NewFlagSet(string(c.collection)+" rm", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: refdesk %s rm <id>", c.collection)
	}
	id := fs.Arg(0)

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	if err := client.EnsureDaemon(ctx); err != nil {
		return err
	}
	if err := client.DeleteDocument(ctx, c.collection, id); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "removed %s\n", id)
	return nil
}

func (c *CollectionCommand) resolveScope(raw string) (types.Scope, error) {
	if strings.TrimSpace(raw) == "" {
		return defaultScope(), nil
	}
	return types.ParseScope(raw)
}

func (c *CollectionCommand) buildFields(scope types.Scope, command, keys, description, title, content, video string, steps stringList) (store.Document, error) {
	fields := store.Document{"scope": string(scope)}
	switch c.collection {
	case types.CollectionHotkeys:
		if command == "" || keys == "" {
			return nil, errors.New("--command and --keys are required")
		}
		fields["command"] = command
		fields["keys"] = keys
		if description != "" {
			fields["description"] = description
		}
	case types.CollectionWorkflows:
		if title == "" {
			return nil, errors.New("--title is required")
		}
		fields["title"] = title
		if description != "" {
			fields["description"] = description
		}
		if video != "" {
			fields["video_ref"] = sync.NormalizeVideoRef(video)
		}
		if len(steps) > 0 {
			parsed := make([]map[string]string, 0, len(steps))
			for _, raw := range steps {
				step := map[string]string{"description": strings.TrimSpace(raw)}
				if at := strings.LastIndex(raw, "@"); at >= 0 {
					step["description"] = strings.TrimSpace(raw[:at])
					step["timecode"] = strings.TrimSpace(raw[at+1:])
				}
				parsed = append(parsed, step)
			}
			fields["steps"] = parsed
		}
	case types.CollectionNotes:
		if title == "" {
			return nil, errors.New("--title is required")
		}
		fields["title"] = title
		if content != "" {
			fields["content"] = content
		}
	}
	return fields, nil
}

func (c *CollectionCommand) printDocuments(docs []store.Document) {
	writer := tabwriter.NewWriter(c.stdout, 0, 8, 2, ' ', 0)
	switch c.collection {
	case types.CollectionHotkeys:
		fmt.Fprintln(writer, "ID\tKEYS\tCOMMAND\tSCOPE\tDESCRIPTION")
		for _, doc := range docs {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
				doc.ID(), docField(doc, "keys"), docField(doc, "command"), doc.Scope(), docField(doc, "description"))
		}
	case types.CollectionWorkflows:
		fmt.Fprintln(writer, "ID\tTITLE\tSCOPE\tSTEPS\tVIDEO")
		for _, doc := range docs {
			steps := 0
			if list, ok := doc["steps"].([]any); ok {
				steps = len(list)
			}
			fmt.Fprintf(writer, "%s\t%s\t%s\t%d\t%s\n",
				doc.ID(), docField(doc, "title"), doc.Scope(), steps, docField(doc, "video_ref"))
		}
	case types.CollectionNotes:
		fmt.Fprintln(writer, "ID\tTITLE\tSCOPE\tUPDATED")
		for _, doc := range docs {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
				doc.ID(), docField(doc, "title"), doc.Scope(), docField(doc, "updated_at"))
		}
	}
	_ = writer.Flush()
}

func docField(doc store.Document, key string) string {
	value, ok := doc[key].(string)
	if !ok {
		return ""
	}
	return value
}

type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}
