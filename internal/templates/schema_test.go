package templates

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/nmcr/internal/foundation/errors"
	"git.home.luguber.info/inful/nmcr/internal/model"
)

func TestSchemaFor_File(t *testing.T) {
	args := append([]model.Arg(nil), packageArgs...)
	args[0].Description = " Package name "
	file := model.TemplateFile{ID: "npm_package", Args: args}

	out, err := json.Marshal(SchemaFor(file))
	require.NoError(t, err)
	require.Equal(t,
		`{"type":"object","properties":{"name":{"type":"string","description":"Package name"},`+
			`"private":{"type":"boolean"},"version":{"type":"number"},"extra":{}},`+
			`"required":["name"],"additionalProperties":false}`,
		string(out))
}

func TestSchemaFor_NoArgs(t *testing.T) {
	out, err := json.Marshal(SchemaFor(model.TemplateFile{ID: "plain"}))
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"object","properties":{},"additionalProperties":false}`, string(out))
}

func TestValidate(t *testing.T) {
	file := model.TemplateFile{ID: "npm_package", Args: packageArgs}

	require.NoError(t, Validate(file, map[string]any{"name": "x", "private": true, "version": 2.0}))

	err := Validate(file, map[string]any{"name": "x", "private": "yes", "bogus": 1.0})
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))

	var serr *SchemaValidationError
	require.True(t, errors.As(err, &serr))
	require.Equal(t, "npm_package", serr.TemplateID)
	require.NotEmpty(t, serr.Issues)

	var locations []string
	for _, issue := range serr.Issues {
		locations = append(locations, issue.Location)
	}
	require.Contains(t, locations, "#/private")
}

func TestValidate_MissingRequired(t *testing.T) {
	file := model.TemplateFile{ID: "npm_package", Args: packageArgs}
	err := Validate(file, map[string]any{})
	var serr *SchemaValidationError
	require.True(t, errors.As(err, &serr))
	require.Contains(t, serr.Error(), "name")
}

func TestValidate_ResolvedInputs(t *testing.T) {
	file := model.TemplateFile{ID: "npm_package", Args: packageArgs}
	values, err := ResolveInputs(file.ID, file.Args, map[string]string{"name": "a", "version": "3"}, nil)
	require.NoError(t, err)
	require.NoError(t, Validate(file, values))
}
