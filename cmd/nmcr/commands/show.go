package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	ferrors "git.home.luguber.info/inful/nmcr/internal/foundation/errors"
	"git.home.luguber.info/inful/nmcr/internal/model"
	"git.home.luguber.info/inful/nmcr/internal/templates"
)

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	ID   string `arg:"" help:"Template id"`
	JSON bool   `name:"json" help:"Print the template as JSON"`
}

func (s *ShowCmd) Run(g *Global, root *CLI) error {
	cat, err := loadCatalog(context.Background(), root)
	if err != nil {
		return err
	}
	t, err := lookup(cat, s.ID)
	if err != nil {
		return err
	}
	if s.JSON {
		return writeJSON(g.Out, t)
	}

	switch v := t.(type) {
	case model.TemplateFile:
		showFile(g.Out, v)
	case model.TemplateTree:
		_, _ = fmt.Fprintf(g.Out, "%s (tree)\n", v.Name)
		if v.Description != "" {
			_, _ = fmt.Fprintf(g.Out, "\n%s\n", v.Description)
		}
		for _, f := range v.Files {
			_, _ = fmt.Fprintln(g.Out)
			showFile(g.Out, f)
		}
	}
	return nil
}

func showFile(out io.Writer, f model.TemplateFile) {
	_, _ = fmt.Fprintf(out, "# %s (%s)\n", f.Name, f.ID)
	if f.HasPath() {
		_, _ = fmt.Fprintf(out, "path: %s\n", f.Path)
	}
	for _, a := range f.Args {
		_, _ = fmt.Fprintf(out, "arg: %s\n", formatArg(a))
	}
	fence := "```"
	_, _ = fmt.Fprintf(out, "%s%s\n%s\n%s\n", fence, f.Lang, f.Content, fence)
}

// SchemaCmd implements the 'schema' command.
type SchemaCmd struct {
	ID string `arg:"" help:"Template id"`
}

func (s *SchemaCmd) Run(g *Global, root *CLI) error {
	cat, err := loadCatalog(context.Background(), root)
	if err != nil {
		return err
	}
	t, err := lookup(cat, s.ID)
	if err != nil {
		return err
	}
	return writeJSON(g.Out, templates.SchemaFor(t))
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode JSON").Build()
	}
	return nil
}
