package model

import (
	"encoding/json"

	"git.home.luguber.info/inful/nmcr/internal/foundation/normalization"
)

// ArgKind is the declared value type of a template argument.
type ArgKind string

const (
	ArgKindAny     ArgKind = "any"
	ArgKindBoolean ArgKind = "boolean"
	ArgKindString  ArgKind = "string"
	ArgKindNumber  ArgKind = "number"
)

var argKinds = normalization.New("argument kind", map[string]ArgKind{
	"boolean": ArgKindBoolean,
	"string":  ArgKindString,
	"number":  ArgKindNumber,
	"any":     ArgKindAny,
})

// ParseArgKind maps a type tag (case-insensitive) to an ArgKind.
// Unknown tags report ok=false.
func ParseArgKind(tag string) (ArgKind, bool) {
	kind, ok := argKinds.Lookup(tag)
	if !ok {
		return ArgKindAny, false
	}
	return kind, true
}

// UnmarshalJSON accepts any of the known kind names.
func (k *ArgKind) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := argKinds.Parse(raw)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Arg is a declared template argument.
type Arg struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Kind        ArgKind `json:"kind"`
	Required    bool    `json:"required"`
}

// UnmarshalJSON defaults Required to true and Kind to any when absent.
func (a *Arg) UnmarshalJSON(data []byte) error {
	type plain Arg
	decoded := plain{Kind: ArgKindAny, Required: true}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*a = Arg(decoded)
	return nil
}

// RequiredArgNames returns the names of required args in declaration order.
func RequiredArgNames(args []Arg) []string {
	var names []string
	for _, arg := range args {
		if arg.Required {
			names = append(names, arg.Name)
		}
	}
	return names
}
