package commands

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/nmcr/internal/catalog"
	"git.home.luguber.info/inful/nmcr/internal/model"
)

// ListCmd implements the 'list' command.
type ListCmd struct{}

func (l *ListCmd) Run(g *Global, root *CLI) error {
	p, err := loadProject(root)
	if err != nil {
		return err
	}
	cat, err := p.load(context.Background(), false, nil)
	if err != nil {
		return err
	}
	if cat.IsEmpty() {
		_, _ = fmt.Fprintln(g.Out, "No templates found.")
		return nil
	}
	newListing(g.Out, p.cfg.Dir()).render(cat)
	return nil
}

const contentOffset = 2

type listing struct {
	out      io.Writer
	root     string
	resolver *catalog.Resolver
}

func newListing(out io.Writer, root string) *listing {
	return &listing{out: out, root: root, resolver: catalog.NewResolver()}
}

func (l *listing) printf(indent int, format string, args ...any) {
	_, _ = fmt.Fprintf(l.out, "%s"+format+"\n", append([]any{strings.Repeat(" ", indent)}, args...)...)
}

func (l *listing) blank() { _, _ = fmt.Fprintln(l.out) }

// render prints trees first, then standalone files.
func (l *listing) render(cat *catalog.Catalog) {
	first := true
	separate := func() {
		if !first {
			l.blank()
			l.blank()
		}
		first = false
	}
	for _, t := range cat.TreeTemplates() {
		separate()
		l.tree(t)
	}
	for _, f := range cat.StandaloneFiles() {
		separate()
		l.file(f, 0)
	}
}

func (l *listing) tree(t model.TemplateTree) {
	indent := 1 + contentOffset
	l.printf(0, "📁 %s (%s)", t.ID, l.location(t.Location))
	l.printf(indent, "->")
	l.pathTree(buildPathTree(t.Files), strings.Repeat(" ", indent))
	l.blank()
	if desc := cleanDescription(t.Description); desc != "" {
		l.block(desc, indent)
		l.blank()
	}
	if len(t.Files) == 0 {
		l.printf(indent, "Files: (none)")
		return
	}
	l.printf(indent, "Files:")
	l.blank()
	for i, f := range t.Files {
		l.file(f, indent)
		if i+1 < len(t.Files) {
			l.blank()
		}
	}
}

func (l *listing) file(f model.TemplateFile, indent int) {
	detail := indent + contentOffset + 1
	l.printf(indent, "📄 %s (%s)", f.ID, l.location(f.Location))

	target := "[string]"
	if f.HasPath() {
		target = f.Path
	}
	if lang := detectLanguage(f); lang != "" {
		target += " (" + lang + ")"
	}
	l.printf(detail, "-> %s", target)

	desc := cleanDescription(f.Description)
	if desc == "" && len(f.Args) == 0 {
		return
	}
	l.blank()
	if desc != "" {
		l.block(desc, detail)
		if len(f.Args) > 0 {
			l.blank()
		}
	}
	if len(f.Args) > 0 {
		l.printf(detail, "Arguments:")
		l.blank()
		for _, a := range f.Args {
			l.printf(detail, "- %s", formatArg(a))
		}
	}
}

func (l *listing) block(text string, indent int) {
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			l.blank()
			continue
		}
		l.printf(indent, "%s", line)
	}
}

// location renders a span as ./relative/path:line.
func (l *listing) location(loc model.Location) string {
	display := loc.DisplayPath()
	if loc.Path != "" {
		if rel, err := filepath.Rel(l.root, filepath.FromSlash(loc.Path)); err == nil && !strings.HasPrefix(rel, "..") {
			display = "./" + filepath.ToSlash(rel)
		}
	}
	pos, err := l.resolver.Resolve(loc)
	if err != nil {
		return display
	}
	return fmt.Sprintf("%s:%d", display, pos.Line)
}

type pathNode struct {
	entries []*pathEntry
}

type pathEntry struct {
	name string
	dir  *pathNode
	loc  model.Location
}

func (n *pathNode) insert(segments []string, loc model.Location) {
	head := segments[0]
	if len(segments) == 1 {
		for _, e := range n.entries {
			if e.dir == nil && e.name == head {
				e.loc = loc
				return
			}
		}
		n.entries = append(n.entries, &pathEntry{name: head, loc: loc})
		return
	}
	for _, e := range n.entries {
		if e.dir != nil && e.name == head {
			e.dir.insert(segments[1:], loc)
			return
		}
	}
	child := &pathNode{}
	child.insert(segments[1:], loc)
	n.entries = append(n.entries, &pathEntry{name: head, dir: child})
}

func buildPathTree(files []model.TemplateFile) *pathNode {
	root := &pathNode{}
	for _, f := range files {
		p := strings.TrimPrefix(strings.ReplaceAll(f.Path, `\`, "/"), "./")
		var segments []string
		for _, s := range strings.Split(p, "/") {
			if s != "" {
				segments = append(segments, s)
			}
		}
		if len(segments) > 0 {
			root.insert(segments, f.Location)
		}
	}
	return root
}

func (l *listing) pathTree(n *pathNode, prefix string) {
	for i, e := range n.entries {
		last := i+1 == len(n.entries)
		connector, next := "├──", "│   "
		if last {
			connector, next = "└──", "    "
		}
		if e.dir != nil {
			l.printf(0, "%s%s %s", prefix, connector, e.name)
			l.pathTree(e.dir, prefix+next)
			continue
		}
		l.printf(0, "%s%s %s (%s)", prefix, connector, e.name, l.location(e.loc))
	}
}

func formatArg(a model.Arg) string {
	kind := string(a.Kind)
	if a.Kind == model.ArgKindAny || kind == "" {
		kind = "string"
	}
	out := fmt.Sprintf("%s [%s]", a.Name, kind)
	if !a.Required {
		out += " (optional)"
	}
	if desc := strings.TrimSpace(a.Description); desc != "" {
		out += ": " + desc
	}
	return out
}

// cleanDescription trims lines, collapses blank runs and drops "`path`:"
// markers that only announce an output path.
func cleanDescription(s string) string {
	var lines []string
	prevBlank := true
	for _, raw := range strings.Split(s, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			if !prevBlank {
				lines = append(lines, "")
				prevBlank = true
			}
			continue
		}
		if isPathMarker(line) {
			continue
		}
		lines = append(lines, line)
		prevBlank = false
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func isPathMarker(line string) bool {
	if strings.HasPrefix(line, "`") && strings.HasSuffix(line, "`:") {
		return true
	}
	stem, ok := strings.CutSuffix(line, ":")
	return ok && !strings.Contains(stem, " ")
}

func detectLanguage(f model.TemplateFile) string {
	if f.HasPath() {
		base := path.Base(f.Path)
		if ext := path.Ext(base); ext != base && len(ext) > 1 {
			return ext[1:]
		}
	}
	return strings.TrimSpace(f.Lang)
}
