package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/nmcr/internal/config"
	"git.home.luguber.info/inful/nmcr/internal/discovery"
	ferrors "git.home.luguber.info/inful/nmcr/internal/foundation/errors"
	"git.home.luguber.info/inful/nmcr/internal/frontmatter"
)

// starterName is the document init places in the templates directory.
const starterName = "starter.md"

const starterBody = "# Starter\n" +
	"\n" +
	"## Readme\n" +
	"\n" +
	"Write to `README.md`:\n" +
	"\n" +
	"### Args\n" +
	"\n" +
	"- `name`: Project name\n" +
	"- `description?`: One line summary\n" +
	"\n" +
	"### Template\n" +
	"\n" +
	"```markdown\n" +
	"# {{name}}\n" +
	"\n" +
	"{{description}}\n" +
	"```\n" +
	"\n" +
	"## Gitignore\n" +
	"\n" +
	"Write to `.gitignore`:\n" +
	"\n" +
	"### Template\n" +
	"\n" +
	"```\n" +
	"/dist\n" +
	"```\n"

// InitCmd implements the 'init' command.
type InitCmd struct {
	Path      string `arg:"" optional:"" default:"." help:"Project directory or configuration file"`
	Force     bool   `help:"Overwrite existing configuration file"`
	Templates string `help:"Glob selecting template documents, relative to the project directory"`
}

func (i *InitCmd) Run(g *Global, _ *CLI) error {
	return RunInit(g, i.Path, i.Templates, i.Force)
}

// RunInit writes the configuration for path and, when the templates glob
// would pick it up, a starter document.
func RunInit(g *Global, path, templates string, force bool) error {
	cfg, err := config.Init(path, force)
	if err != nil {
		return err
	}
	if templates != "" {
		cfg.Templates = templates
	}
	if err := cfg.Write(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Out, "Wrote configuration to %s\n", cfg.Path)

	starter, err := starterPath(cfg)
	if err != nil || starter == "" {
		return err
	}
	if _, statErr := os.Stat(starter); statErr == nil {
		return nil
	}
	if err := writeStarter(starter); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Out, "Wrote starter template to %s\n", starter)
	return nil
}

// starterPath places the starter at the glob base, or returns "" when the
// glob would not select it.
func starterPath(cfg *config.Config) (string, error) {
	m, err := discovery.Compile(cfg.Templates)
	if err != nil {
		return "", err
	}
	rel := starterName
	if base := m.Base(); base != "" && base != "." {
		rel = base + "/" + starterName
	}
	if !m.Match(rel) {
		return "", nil
	}
	return filepath.Join(cfg.Dir(), filepath.FromSlash(rel)), nil
}

func writeStarter(path string) error {
	style := frontmatter.Style{Newline: "\n"}
	fm, err := frontmatter.SerializeYAML(frontmatter.Metadata{
		Name:        "Starter",
		Description: "Templates created by nmcr init",
	}, style)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to render starter frontmatter").Build()
	}
	content := frontmatter.Join(fm, []byte(starterBody), true, style)

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create templates directory").
			WithContext("path", filepath.Dir(path)).
			Build()
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write starter template").
			WithContext("path", path).
			Build()
	}
	return nil
}
