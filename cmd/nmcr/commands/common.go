package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/nmcr/internal/catalog"
	"git.home.luguber.info/inful/nmcr/internal/config"
	"git.home.luguber.info/inful/nmcr/internal/discovery"
	ferrors "git.home.luguber.info/inful/nmcr/internal/foundation/errors"
	"git.home.luguber.info/inful/nmcr/internal/logfields"
	"git.home.luguber.info/inful/nmcr/internal/metrics"
	"git.home.luguber.info/inful/nmcr/internal/model"
)

// Global carries the streams commands read from and write to.
type Global struct {
	Out io.Writer
	In  io.Reader
}

// NewGlobal binds the process streams.
func NewGlobal() *Global {
	return &Global{Out: os.Stdout, In: os.Stdin}
}

// CLI definition & global flags.
type CLI struct {
	Project string           `short:"p" help:"Project directory or configuration file (default: search from the working directory)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init   InitCmd   `cmd:"" help:"Create a project configuration and a starter template"`
	List   ListCmd   `cmd:"" help:"List templates in the catalog"`
	Show   ShowCmd   `cmd:"" help:"Show one template"`
	Schema SchemaCmd `cmd:"" help:"Print the JSON Schema of a template's arguments"`
	Check  CheckCmd  `cmd:"" help:"Parse all template documents and report problems"`
	Args   ArgsCmd   `cmd:"" help:"Resolve and validate arguments for a template"`
	Watch  WatchCmd  `cmd:"" help:"Rebuild the catalog whenever template documents change"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// project is the configuration plus the documents it selects.
type project struct {
	cfg   *config.Config
	files []discovery.DocFile
}

func loadProject(root *CLI) (*project, error) {
	cfg, err := config.Find(root.Project)
	if err != nil {
		return nil, err
	}
	files, err := discovery.Discover(cfg.Dir(), cfg.Templates)
	if err != nil {
		return nil, err
	}
	slog.Debug("Project loaded",
		logfields.Path(cfg.Path),
		logfields.Documents(len(files)))
	return &project{cfg: cfg, files: files}, nil
}

func (p *project) load(ctx context.Context, skipInvalid bool, rec metrics.Recorder) (*catalog.Catalog, error) {
	return catalog.LoadWithOptions(ctx, discovery.Paths(p.files), catalog.Options{
		Concurrency: runtime.GOMAXPROCS(0),
		SkipInvalid: skipInvalid,
		Recorder:    rec,
	})
}

func loadCatalog(ctx context.Context, root *CLI) (*catalog.Catalog, error) {
	p, err := loadProject(root)
	if err != nil {
		return nil, err
	}
	return p.load(ctx, false, nil)
}

func lookup(cat *catalog.Catalog, id string) (model.Template, error) {
	t, ok := cat.Get(id)
	if !ok {
		return nil, ferrors.NotFoundError("template not found").
			WithContext("template_id", id).
			Build()
	}
	return t, nil
}

// linePrompter asks for missing arguments one line at a time.
type linePrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{reader: bufio.NewReader(in), writer: out}
}

func (c *linePrompter) Prompt(arg model.Arg) (string, error) {
	label := arg.Name
	if arg.Kind != "" && arg.Kind != model.ArgKindAny {
		label += " <" + string(arg.Kind) + ">"
	}
	if arg.Required {
		label += " (required)"
	}
	if arg.Description != "" {
		label += " - " + arg.Description
	}
	_, _ = fmt.Fprintf(c.writer, "%s: ", label)

	line, err := c.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
