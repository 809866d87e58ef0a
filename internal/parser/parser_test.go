package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/nmcr/internal/foundation/errors"
	"git.home.luguber.info/inful/nmcr/internal/model"
)

const fence = "```"

func doc(lines ...string) string {
	return strings.ReplaceAll(strings.Join(lines, "\n"), "~~~", fence) + "\n"
}

var packageDoc = doc(
	"# Package",
	"",
	"## Lib",
	"",
	"### `./Cargo.toml`",
	"",
	"~~~toml",
	"[package]",
	`name = "{{name}}"`,
	"~~~",
	"",
	"### `./src/lib.rs`",
	"",
	"~~~rust",
	"pub fn hello() {}",
	"~~~",
)

func TestParse_TreeDetection(t *testing.T) {
	res, err := ParseString("package", packageDoc)
	require.NoError(t, err)
	require.Equal(t, StrategyCodeBlocks, res.Strategy)
	require.Empty(t, res.Diagnostics)

	coll, ok := res.Document.(*model.CollectionDocument)
	require.True(t, ok, "expected collection, got %T", res.Document)
	require.Equal(t, "package", coll.Collection.Name)

	trees, files := coll.Collection.Split()
	require.Len(t, files, 2)
	require.Equal(t, "package_lib_cargo_toml", files[0].ID)
	require.Equal(t, "package_lib_src_lib_rs", files[1].ID)
	require.Equal(t, "./Cargo.toml", files[0].Path)
	require.Equal(t, "toml", files[0].Lang)
	require.Equal(t, "[package]\nname = \"{{name}}\"", files[0].Content)

	require.Len(t, trees, 1)
	require.Equal(t, "package_lib", trees[0].ID)
	require.Equal(t, "Lib", trees[0].Name)
	require.Equal(t, files, trees[0].Files)
}

func TestParse_HelloWorld(t *testing.T) {
	input := doc(
		"# Hello World",
		"",
		"A *friendly* greeting.",
		"",
		"~~~python",
		`print("hi")`,
		"~~~",
	)
	res, err := ParseString("hello", input)
	require.NoError(t, err)

	single, ok := res.Document.(*model.TemplateDocument)
	require.True(t, ok, "expected template, got %T", res.Document)
	file, ok := single.Template.(model.TemplateFile)
	require.True(t, ok)
	require.Equal(t, "hello_world", file.ID)
	require.Equal(t, "Hello World", file.Name)
	require.Equal(t, "python", file.Lang)
	require.Equal(t, `print("hi")`, file.Content)
	require.Equal(t, "A friendly greeting.", file.Description)
	require.Empty(t, file.Path)
	require.Equal(t, model.Location{Span: model.Span{Start: 0, End: len(input)}}, file.Location)
}

func TestParse_Arguments(t *testing.T) {
	input := doc(
		"# Components",
		"",
		"## Button",
		"",
		"Renders a button.",
		"",
		"### Arguments",
		"",
		"- `name` [string]: Display name.",
		"- `includeProps?` [boolean]",
		"",
		"### Template",
		"",
		"~~~tsx",
		"export const {{name}} = () => <button />;",
		"~~~",
	)
	res, err := ParseString("components", input)
	require.NoError(t, err)
	require.Equal(t, StrategyHeadings, res.Strategy)

	single, ok := res.Document.(*model.TemplateDocument)
	require.True(t, ok, "expected template, got %T", res.Document)
	file := single.Template.(model.TemplateFile)
	require.Equal(t, "components_button", file.ID)
	require.Equal(t, "Renders a button.", file.Description)
	require.Equal(t, "tsx", file.Lang)
	require.Equal(t, []model.Arg{
		{Name: "name", Kind: model.ArgKindString, Required: true, Description: "Display name."},
		{Name: "includeProps", Kind: model.ArgKindBoolean, Required: false, Description: ""},
	}, file.Args)
}

func TestParse_ArgumentSeparators(t *testing.T) {
	input := doc(
		"## Thing",
		"",
		"### args",
		"",
		"- `a` - dash separated",
		"- `b` — em dash",
		"- `c` [number] – en dash",
		"- `d` [date]: unknown tag stays",
		"- no code span here",
		"- `e` plain",
		"",
		"~~~",
		"x",
		"~~~",
	)
	res, err := ParseString("t", input)
	require.NoError(t, err)
	file := res.Document.(*model.TemplateDocument).Template.(model.TemplateFile)
	require.Equal(t, []model.Arg{
		{Name: "a", Kind: model.ArgKindAny, Required: true, Description: "dash separated"},
		{Name: "b", Kind: model.ArgKindAny, Required: true, Description: "em dash"},
		{Name: "c", Kind: model.ArgKindNumber, Required: true, Description: "en dash"},
		{Name: "d", Kind: model.ArgKindAny, Required: true, Description: "[date]: unknown tag stays"},
		{Name: "e", Kind: model.ArgKindAny, Required: true, Description: "plain"},
	}, file.Args)
	require.Equal(t, "x", file.Content)
}

func TestParse_HeadingTree(t *testing.T) {
	input := doc(
		"# Rust",
		"",
		"## Crate",
		"",
		"Scaffold a crate.",
		"",
		"### Args",
		"",
		"- `name`: Crate name.",
		"",
		"### `Cargo.toml`",
		"",
		"~~~toml",
		"[package]",
		"~~~",
		"",
		"### Library",
		"",
		"Write to `src/lib.rs`:",
		"",
		"~~~rust",
		"pub fn run() {}",
		"~~~",
	)
	res, err := ParseString("rust", input)
	require.NoError(t, err)

	tree, ok := res.Document.(*model.TreeDocument)
	require.True(t, ok, "expected tree, got %T", res.Document)
	require.Equal(t, "rust_crate", tree.Tree.ID)
	require.Equal(t, "Scaffold a crate.", tree.Tree.Description)
	require.Len(t, tree.Tree.Files, 2)
	require.Equal(t, "rust_crate_cargo_toml", tree.Tree.Files[0].ID)
	require.Equal(t, "Cargo.toml", tree.Tree.Files[0].Path)
	require.Equal(t, "rust_crate_library", tree.Tree.Files[1].ID)
	require.Equal(t, "src/lib.rs", tree.Tree.Files[1].Path)
}

func TestParse_HeadingCollectionUsesAncestorMetadata(t *testing.T) {
	input := doc(
		"# Web",
		"",
		"Frontend snippets.",
		"",
		"## Page",
		"",
		"### Template",
		"",
		"~~~html",
		"<main></main>",
		"~~~",
		"",
		"## Style",
		"",
		"### Template",
		"",
		"~~~css",
		"main {}",
		"~~~",
	)
	res, err := ParseString("web", input)
	require.NoError(t, err)

	coll, ok := res.Document.(*model.CollectionDocument)
	require.True(t, ok, "expected collection, got %T", res.Document)
	require.Equal(t, "Web", coll.Collection.Name)
	require.Equal(t, "Frontend snippets.", coll.Collection.Description)
	require.Equal(t, model.Span{Start: 0, End: len(input)}, coll.Collection.Location.Span)

	ids := make([]string, 0, 2)
	for _, tmpl := range coll.Collection.Templates {
		ids = append(ids, tmpl.TemplateID())
	}
	require.Equal(t, []string{"web_page", "web_style"}, ids)
}

func TestParse_FrontmatterOverridesCollectionMetadata(t *testing.T) {
	input := "---\nname: Greetings\ndescription: Say hello\n---\n" + doc(
		"# Hello",
		"",
		"~~~sh",
		"echo hello",
		"~~~",
		"",
		"# Bye",
		"",
		"~~~sh",
		"echo bye",
		"~~~",
	)
	res, err := ParseString("greet", input)
	require.NoError(t, err)

	coll := res.Document.(*model.CollectionDocument).Collection
	require.Equal(t, "Greetings", coll.Name)
	require.Equal(t, "Say hello", coll.Description)

	first := coll.Templates[0].(model.TemplateFile)
	require.Equal(t, 47, first.Location.Span.Start, "spans are relative to the original text")
	require.True(t, strings.HasPrefix(input[first.Location.Span.Start:], "# Hello"))
}

func TestParse_NoTemplatesFound(t *testing.T) {
	inputs := map[string]string{
		"prose only":              doc("# Title", "", "Just prose."),
		"two code blocks":         doc("# Title", "", "~~~", "a", "~~~", "", "~~~", "b", "~~~"),
		"empty":                   "",
		"subhead without content": doc("## Thing", "", "### Args", "", "- `a`: x"),
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := ParseString("x", input)
			require.ErrorIs(t, err, ErrNoTemplatesFound)
			require.True(t, ferrors.HasCategory(err, ferrors.CategoryStructure))
			require.Contains(t, err.Error(), "No templates found in markdown")
		})
	}
}

func TestParse_MissingIdentifier(t *testing.T) {
	_, err := ParseString("x", doc("# ???", "", "~~~sh", "echo", "~~~"))
	var missing *MissingIdentifierError
	require.True(t, errors.As(err, &missing), "got %v", err)
	require.Equal(t, []string{"???"}, missing.HeadingPath)
}

func TestParse_MissingIdentifier_Headings(t *testing.T) {
	res, err := ParseString("x", doc("# ???", "", "## Template", "", "~~~sh", "echo", "~~~"))
	require.Nil(t, res)
	var missing *MissingIdentifierError
	require.True(t, errors.As(err, &missing), "got %v", err)
	require.Equal(t, []string{"???"}, missing.HeadingPath)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryStructure))
}

func TestParse_EmptyTemplateBlockIsSkipped(t *testing.T) {
	_, err := ParseString("x", doc("# A", "", "## Template", "", "~~~", "~~~"))
	require.ErrorIs(t, err, ErrNoTemplatesFound)

	res, err := ParseString("x", doc(
		"# Empty",
		"",
		"## Template",
		"",
		"~~~",
		"~~~",
		"",
		"# Kept",
		"",
		"## Template",
		"",
		"~~~",
		"body",
		"~~~",
	))
	require.NoError(t, err)
	require.Equal(t, StrategyHeadings, res.Strategy)
	single, ok := res.Document.(*model.TemplateDocument)
	require.True(t, ok, "got %T", res.Document)
	file, ok := single.Template.(model.TemplateFile)
	require.True(t, ok)
	require.Equal(t, "kept", file.ID)
	require.Equal(t, "body", file.Content)
}

func TestParse_NestedTree(t *testing.T) {
	input := doc(
		"# A",
		"",
		"## `x.txt`",
		"",
		"~~~",
		"x",
		"~~~",
		"",
		"## B",
		"",
		"### `y.txt`",
		"",
		"~~~",
		"y",
		"~~~",
	)
	_, err := ParseString("nested", input)
	var nested *NestedTreeError
	require.True(t, errors.As(err, &nested), "got %v", err)
	require.Equal(t, "a", nested.Outer)
	require.Equal(t, "a_b", nested.Inner)
}

func TestParse_TreePromotionIsAllOrNothing(t *testing.T) {
	input := strings.Replace(packageDoc, "### `./src/lib.rs`", "### Library source", 1)

	res, err := ParseString("package", input)
	require.NoError(t, err)

	coll := res.Document.(*model.CollectionDocument).Collection
	trees, files := coll.Split()
	require.Empty(t, trees)
	require.Len(t, files, 2)
	require.Equal(t, "package_lib_library_source", files[1].ID)

	require.Len(t, res.Diagnostics, 1)
	require.Equal(t, DiagnosticDegradedTree, res.Diagnostics[0].Kind)
	require.Contains(t, res.Diagnostics[0].Message, `"Lib"`)
}

func TestParse_HeadingTreeDegradesToStandalone(t *testing.T) {
	input := doc(
		"## Crate",
		"",
		"### Args",
		"",
		"- `name`",
		"",
		"### `Cargo.toml`",
		"",
		"~~~toml",
		"[package]",
		"~~~",
		"",
		"### Readme",
		"",
		"~~~md",
		"# {{name}}",
		"~~~",
	)
	res, err := ParseString("crate", input)
	require.NoError(t, err)

	coll := res.Document.(*model.CollectionDocument).Collection
	trees, files := coll.Split()
	require.Empty(t, trees)
	require.Equal(t, "crate_cargo_toml", files[0].ID)
	require.Equal(t, "crate_readme", files[1].ID)
	require.Equal(t, "crate", coll.Name)
	require.Len(t, res.Diagnostics, 1)
}

func TestParse_Idempotent(t *testing.T) {
	first, err := ParseString("package", packageDoc)
	require.NoError(t, err)
	second, err := ParseString("package", packageDoc)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestParse_UnterminatedFrontmatter(t *testing.T) {
	_, err := ParseString("x", "---\nname: x\n# Title\n")
	var structural *StructuralError
	require.True(t, errors.As(err, &structural), "got %v", err)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greetings.md")
	require.NoError(t, os.WriteFile(path, []byte(packageDoc), 0o600))

	res, err := ParseFile(path, Options{})
	require.NoError(t, err)
	require.Equal(t, filepath.ToSlash(path), res.Path)
	require.NotEmpty(t, res.Fingerprint)

	coll := res.Document.(*model.CollectionDocument).Collection
	require.Equal(t, "greetings", coll.Name)
	require.Equal(t, filepath.ToSlash(path), coll.Templates[0].TemplateLocation().Path)

	_, err = ParseFile(filepath.Join(dir, "missing.md"), Options{})
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))

	bad := filepath.Join(dir, "bad.md")
	require.NoError(t, os.WriteFile(bad, []byte("# Nothing\n"), 0o600))
	_, err = ParseFile(bad, Options{})
	path, ok := ferrors.ContextString(err, "path")
	require.True(t, ok)
	require.Equal(t, filepath.ToSlash(bad), path)
}

func TestIsSubhead(t *testing.T) {
	for _, title := range []string{"args", " Arguments ", "TEMPLATE", "Args"} {
		require.True(t, IsSubhead(title), title)
	}
	for _, title := range []string{"argument", "templates", "Template file"} {
		require.False(t, IsSubhead(title), title)
	}
}

func TestStem(t *testing.T) {
	require.Equal(t, "rust", Stem("tmpls/rust.md"))
	require.Equal(t, "archive.tar", Stem("archive.tar.gz"))
}
