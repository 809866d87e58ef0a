package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/nmcr/internal/catalog"
	ferrors "git.home.luguber.info/inful/nmcr/internal/foundation/errors"
	"git.home.luguber.info/inful/nmcr/internal/templates"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	SkipInvalid bool `name:"skip-invalid" help:"Report invalid documents and keep checking the rest"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	p, err := loadProject(root)
	if err != nil {
		return err
	}
	cat, err := p.load(context.Background(), c.SkipInvalid, nil)
	if err != nil {
		return err
	}

	resolver := catalog.NewResolver()
	warnings := 0
	for _, src := range cat.Sources() {
		for _, d := range src.Diagnostics {
			warnings++
			_, _ = fmt.Fprintf(g.Out, "%s: warning: %s (%s)\n", resolver.Format(d.Location), d.Message, d.Kind)
		}
	}
	for _, id := range cat.IDs() {
		ref, ok := cat.GetFile(id)
		if !ok {
			continue
		}
		f := ref.TemplateFile()
		for _, name := range templates.Undeclared(f) {
			warnings++
			_, _ = fmt.Fprintf(g.Out, "%s: warning: %s uses undeclared placeholder %q\n", resolver.Format(f.Location), f.ID, name)
		}
	}
	adapter := ferrors.NewCLIErrorAdapter(root.Verbose, nil)
	for _, s := range cat.Skipped() {
		_, _ = fmt.Fprintf(g.Out, "%s: %s\n", s.Path, adapter.FormatError(s.Err))
	}

	_, _ = fmt.Fprintf(g.Out, "%d documents, %d files, %d trees, %d warnings, %d skipped\n",
		len(cat.Sources()), len(cat.StandaloneFiles()), len(cat.TreeTemplates()), warnings, len(cat.Skipped()))

	if n := len(cat.Skipped()); n > 0 {
		return ferrors.ValidationError("some template documents are invalid").
			WithContext("skipped", n).
			Build()
	}
	return nil
}
