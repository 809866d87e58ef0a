package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/nmcr/internal/foundation/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_YAML(t *testing.T) {
	t.Setenv(EnvTemplates, "")
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "templates: docs/*.md\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "docs/*.md", cfg.Templates)
	require.Equal(t, filepath.Dir(path), cfg.Dir())
}

func TestLoad_TOML(t *testing.T) {
	t.Setenv(EnvTemplates, "")
	path := filepath.Join(t.TempDir(), LegacyFileName)
	writeFile(t, path, "templates = \"./t/**/*.md\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "./t/**/*.md", cfg.Templates)
}

func TestLoad_DefaultsWhenEmpty(t *testing.T) {
	t.Setenv(EnvTemplates, "")
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "{}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultTemplatesGlob, cfg.Templates)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv(EnvTemplates, "other/*.md")
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "templates: docs/*.md\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "other/*.md", cfg.Templates)
}

func TestLoad_ExpandsEnvFromDotEnv(t *testing.T) {
	t.Setenv(EnvTemplates, "")
	t.Setenv("NMCR_TEST_DIR", "")
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "NMCR_TEST_DIR=snippets\n")
	writeFile(t, filepath.Join(dir, FileName), "templates: ${NMCR_TEST_DIR}/*.md\n")
	// godotenv does not override variables that are set, even when empty.
	require.NoError(t, os.Unsetenv("NMCR_TEST_DIR"))

	cfg, err := Load(filepath.Join(dir, FileName))
	require.NoError(t, err)
	require.Equal(t, "snippets/*.md", cfg.Templates)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv(EnvTemplates, "")
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, FileName))
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))

	bad := filepath.Join(dir, "bad", FileName)
	writeFile(t, bad, "templates: [unclosed\n")
	_, err = Load(bad)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	invalid := filepath.Join(dir, "invalid", FileName)
	writeFile(t, invalid, "templates: \"tmpls/[a-\"\n")
	_, err = Load(invalid)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}

func TestFind_WalksParents(t *testing.T) {
	t.Setenv(EnvTemplates, "")
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "templates: a/*.md\n")
	nested := filepath.Join(root, "x", "y")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	cfg, err := Find(nested)
	require.NoError(t, err)
	require.Equal(t, "a/*.md", cfg.Templates)

	abs, err := filepath.Abs(filepath.Join(root, FileName))
	require.NoError(t, err)
	require.Equal(t, abs, cfg.Path)
}

func TestFind_PrefersYAMLOverLegacy(t *testing.T) {
	t.Setenv(EnvTemplates, "")
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "templates: yaml/*.md\n")
	writeFile(t, filepath.Join(root, LegacyFileName), "templates = \"toml/*.md\"\n")

	cfg, err := Find(root)
	require.NoError(t, err)
	require.Equal(t, "yaml/*.md", cfg.Templates)
}

func TestFind_ExplicitFile(t *testing.T) {
	t.Setenv(EnvTemplates, "")
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "templates: c/*.md\n")

	cfg, err := Find(path)
	require.NoError(t, err)
	require.Equal(t, path, cfg.Path)
}

func TestInitAndWrite(t *testing.T) {
	t.Setenv(EnvTemplates, "")
	dir := filepath.Join(t.TempDir(), "new", "project")

	cfg, err := Init(dir, false)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, FileName), cfg.Path)
	require.Equal(t, DefaultTemplatesGlob, cfg.Templates)
	require.NoError(t, cfg.Write())

	loaded, err := Load(cfg.Path)
	require.NoError(t, err)
	require.Equal(t, DefaultTemplatesGlob, loaded.Templates)

	_, err = Init(dir, false)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	again, err := Init(dir, true)
	require.NoError(t, err)
	require.Equal(t, cfg.Path, again.Path)
}

func TestWrite_TOML(t *testing.T) {
	t.Setenv(EnvTemplates, "")
	path := filepath.Join(t.TempDir(), LegacyFileName)
	cfg, err := Init(path, false)
	require.NoError(t, err)
	cfg.Templates = "x/*.md"
	require.NoError(t, cfg.Write())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "templates = \"x/*.md\"\n", string(data))
}

func TestResolvePath(t *testing.T) {
	require.Equal(t, filepath.Join("a", FileName), ResolvePath("a"))
	require.Equal(t, filepath.Join("a", FileName), ResolvePath(filepath.Join("a", FileName)))
	require.Equal(t, filepath.Join("a", LegacyFileName), ResolvePath(filepath.Join("a", LegacyFileName)))
}
