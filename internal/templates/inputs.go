// Package templates validates argument values against the arguments a
// template declares, ahead of handing both to a rendering engine.
package templates

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	ferrors "git.home.luguber.info/inful/nmcr/internal/foundation/errors"
	"git.home.luguber.info/inful/nmcr/internal/model"
)

// MissingArgumentError lists required arguments absent from an input map.
type MissingArgumentError struct {
	TemplateID string
	Missing    []string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing required arguments for template %q: %s", e.TemplateID, strings.Join(e.Missing, ", "))
}

// Prompter collects a value for an argument that was not supplied. An
// empty answer leaves the argument unset.
type Prompter interface {
	Prompt(arg model.Arg) (string, error)
}

// ArgsOf returns the arguments of t. For a tree that is the union over its
// files in first-declared order; an argument is required when any file
// requires it.
func ArgsOf(t model.Template) []model.Arg {
	switch t := t.(type) {
	case model.TemplateFile:
		return t.Args
	case model.TemplateTree:
		var out []model.Arg
		seen := map[string]int{}
		for _, f := range t.Files {
			for _, a := range f.Args {
				if i, ok := seen[a.Name]; ok {
					out[i].Required = out[i].Required || a.Required
					continue
				}
				seen[a.Name] = len(out)
				out = append(out, a)
			}
		}
		return out
	}
	return nil
}

// ParseSetFlags turns key=value pairs into a map. Later pairs win.
func ParseSetFlags(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, ferrors.ValidationError("argument must have the form key=value").
				WithContext("argument", pair).
				Build()
		}
		out[key] = value
	}
	return out, nil
}

// MissingRequired returns the required argument names that have no value,
// in declaration order.
func MissingRequired(args []model.Arg, values map[string]any) []string {
	var missing []string
	for _, a := range args {
		if !a.Required {
			continue
		}
		if v, ok := values[a.Name]; !ok || v == nil {
			missing = append(missing, a.Name)
		}
	}
	return missing
}

// ResolveInputs converts raw string values to the kinds their arguments
// declare, prompts for unset arguments when prompter is non-nil, and
// fails with a *MissingArgumentError when a required argument stays unset.
// Values for undeclared names are kept as strings.
func ResolveInputs(templateID string, args []model.Arg, overrides map[string]string, prompter Prompter) (map[string]any, error) {
	result := make(map[string]any, len(overrides))
	byName := make(map[string]model.Arg, len(args))
	for _, a := range args {
		byName[a.Name] = a
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := overrides[key]
		arg, ok := byName[key]
		if !ok {
			result[key] = value
			continue
		}
		parsed, hasValue, err := parseInputValue(arg, value)
		if err != nil {
			return nil, err
		}
		if hasValue {
			result[key] = parsed
		}
	}

	if prompter != nil {
		for _, a := range args {
			if _, ok := result[a.Name]; ok {
				continue
			}
			response, err := prompter.Prompt(a)
			if err != nil {
				return nil, err
			}
			parsed, hasValue, err := parseInputValue(a, response)
			if err != nil {
				return nil, err
			}
			if hasValue {
				result[a.Name] = parsed
			}
		}
	}

	if missing := MissingRequired(args, result); len(missing) > 0 {
		return nil, ferrors.WrapError(&MissingArgumentError{TemplateID: templateID, Missing: missing},
			ferrors.CategoryValidation, "invalid template arguments").
			WithContext("template_id", templateID).
			Build()
	}
	return result, nil
}

// parseInputValue reports hasValue=false for blank input.
func parseInputValue(arg model.Arg, input string) (any, bool, error) {
	value := strings.TrimSpace(input)
	if value == "" {
		return nil, false, nil
	}

	switch arg.Kind {
	case model.ArgKindBoolean:
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return nil, false, invalidValue(arg, value, "invalid boolean")
		}
		return parsed, true, nil
	case model.ArgKindNumber:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, false, invalidValue(arg, value, "invalid number")
		}
		return parsed, true, nil
	case model.ArgKindString, model.ArgKindAny, "":
		return value, true, nil
	default:
		return nil, false, ferrors.InternalError("unsupported argument kind").
			WithContext("kind", string(arg.Kind)).
			Build()
	}
}

func invalidValue(arg model.Arg, value, message string) error {
	return ferrors.ValidationError(fmt.Sprintf("%s for %s", message, arg.Name)).
		WithContext("argument", arg.Name).
		WithContext("value", value).
		Build()
}
