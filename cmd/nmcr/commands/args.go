package commands

import (
	"context"

	"git.home.luguber.info/inful/nmcr/internal/templates"
)

// ArgsCmd implements the 'args' command.
type ArgsCmd struct {
	ID          string   `arg:"" help:"Template id"`
	Set         []string `name:"set" help:"Argument value (key=value)"`
	Interactive bool     `short:"i" help:"Prompt for missing arguments"`
}

func (a *ArgsCmd) Run(g *Global, root *CLI) error {
	cat, err := loadCatalog(context.Background(), root)
	if err != nil {
		return err
	}
	t, err := lookup(cat, a.ID)
	if err != nil {
		return err
	}
	overrides, err := templates.ParseSetFlags(a.Set)
	if err != nil {
		return err
	}

	var prompter templates.Prompter
	if a.Interactive {
		prompter = newLinePrompter(g.In, g.Out)
	}
	values, err := templates.ResolveInputs(t.TemplateID(), templates.ArgsOf(t), overrides, prompter)
	if err != nil {
		return err
	}
	if err := templates.Validate(t, values); err != nil {
		return err
	}
	return writeJSON(g.Out, values)
}
