// Package config loads the project configuration that tells nmcr where its
// template documents live.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/nmcr/internal/foundation/errors"
)

const (
	// FileName is the configuration file written by Init.
	FileName = "nmcr.yaml"
	// LegacyFileName is still read when no FileName exists in a directory.
	LegacyFileName = "nmcr.toml"
	// DefaultTemplatesGlob is relative to the configuration directory.
	DefaultTemplatesGlob = "./tmpls/**/*.md"
	// EnvTemplates overrides the templates glob of any loaded file.
	EnvTemplates = "NMCR_TEMPLATES"
)

// Config is a project configuration together with the file it belongs to.
type Config struct {
	Path string `yaml:"-" toml:"-"`

	// Templates is a glob selecting template documents, relative to Dir.
	Templates string `yaml:"templates" toml:"templates"`
}

// Dir is the directory template globs are resolved against.
func (c *Config) Dir() string {
	return filepath.Dir(c.Path)
}

func (c *Config) isTOML() bool {
	return strings.EqualFold(filepath.Ext(c.Path), ".toml")
}

// ResolvePath returns path itself when it names a configuration file, or
// the FileName inside it otherwise.
func ResolvePath(path string) string {
	switch filepath.Base(path) {
	case FileName, LegacyFileName:
		return path
	}
	return filepath.Join(path, FileName)
}

// Find locates the configuration for start. A file is loaded directly; a
// directory is searched, then each of its parents.
func Find(start string) (*Config, error) {
	if start == "" {
		start = "."
	}
	info, err := os.Stat(start)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "cannot access project path").
			WithContext("path", start).
			Build()
	}
	if !info.IsDir() {
		return Load(start)
	}

	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "cannot resolve project path").
			WithContext("path", start).
			Build()
	}
	for {
		for _, name := range []string{FileName, LegacyFileName} {
			candidate := filepath.Join(dir, name)
			if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
				return Load(candidate)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, ferrors.NotFoundError("no config file found in current or parent directories").
		WithContext("path", start).
		Build()
}

// Load reads the configuration at path. Environment variables referenced
// in the file are expanded, and .env files next to it are loaded first.
func Load(path string) (*Config, error) {
	cfg := &Config{Path: path}
	loadEnvFiles(cfg.Dir())

	// #nosec G304 -- path is the user's own project configuration.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.NotFoundError("configuration file not found").
				WithContext("path", path).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read config file").
			WithContext("path", path).
			Build()
	}

	expanded := os.ExpandEnv(string(data))
	if cfg.isTOML() {
		_, err = toml.Decode(expanded, cfg)
	} else {
		err = yaml.Unmarshal([]byte(expanded), cfg)
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").
			WithContext("path", path).
			Build()
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init returns a default configuration for path, which may be a directory
// or a configuration file. An existing file is only replaced with force.
func Init(path string, force bool) (*Config, error) {
	path = ResolvePath(path)
	if _, err := os.Stat(path); err == nil && !force {
		return nil, ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}
	cfg := &Config{Path: path}
	applyDefaults(cfg)
	return cfg, nil
}

// Write stores the configuration at Path, creating parent directories.
func (c *Config) Write() error {
	if err := validate(c); err != nil {
		return err
	}
	if err := os.MkdirAll(c.Dir(), 0o750); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create config directory").
			WithContext("path", c.Dir()).
			Build()
	}

	var data []byte
	var err error
	if c.isTOML() {
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(c)
		data = buf.Bytes()
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal config").Build()
	}

	if err := os.WriteFile(c.Path, data, 0o600); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", c.Path).
			Build()
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvTemplates)); v != "" {
		cfg.Templates = v
	}
}

func applyDefaults(cfg *Config) {
	cfg.Templates = strings.TrimSpace(cfg.Templates)
	if cfg.Templates == "" {
		cfg.Templates = DefaultTemplatesGlob
	}
}
