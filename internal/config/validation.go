package config

import (
	"strings"

	"github.com/gobwas/glob"

	ferrors "git.home.luguber.info/inful/nmcr/internal/foundation/errors"
)

// validate rejects a configuration whose templates glob cannot be compiled.
func validate(cfg *Config) error {
	pattern := strings.TrimSpace(cfg.Templates)
	if pattern == "" {
		return ferrors.ValidationError("templates glob must not be empty").
			WithContext("path", cfg.Path).
			Build()
	}
	if _, err := glob.Compile(pattern, '/'); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid templates glob").
			WithContext("path", cfg.Path).
			WithContext("templates", pattern).
			Build()
	}
	return nil
}
