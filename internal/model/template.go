package model

import (
	"encoding/json"
	"fmt"
)

const (
	kindFile = "file"
	kindTree = "tree"
)

// Template is the closed union of TemplateFile and TemplateTree.
type Template interface {
	TemplateID() string
	TemplateName() string
	TemplateLocation() Location
	isTemplate()
}

// TemplateFile is a single output file template.
type TemplateFile struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Args        []Arg    `json:"args"`
	Lang        string   `json:"lang,omitempty"` // fence info-string, empty when absent
	Content     string   `json:"content"`        // raw code block text
	Path        string   `json:"path,omitempty"` // output path template, empty when absent
	Location    Location `json:"location"`
}

func (TemplateFile) isTemplate()                  {}
func (f TemplateFile) TemplateID() string         { return f.ID }
func (f TemplateFile) TemplateName() string       { return f.Name }
func (f TemplateFile) TemplateLocation() Location { return f.Location }

// HasPath reports whether the file declares a non-empty output path.
func (f TemplateFile) HasPath() bool { return f.Path != "" }

// MarshalJSON adds the "file" discriminator.
func (f TemplateFile) MarshalJSON() ([]byte, error) {
	type plain TemplateFile
	return json.Marshal(struct {
		Kind string `json:"kind"`
		plain
	}{Kind: kindFile, plain: plain(f)})
}

// TemplateTree is a set of sibling files sharing a destination root.
//
// Trees never contain trees.
type TemplateTree struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Files       []TemplateFile `json:"files"`
	Location    Location       `json:"location"`
}

func (TemplateTree) isTemplate()                  {}
func (t TemplateTree) TemplateID() string         { return t.ID }
func (t TemplateTree) TemplateName() string       { return t.Name }
func (t TemplateTree) TemplateLocation() Location { return t.Location }

// MarshalJSON adds the "tree" discriminator.
func (t TemplateTree) MarshalJSON() ([]byte, error) {
	type plain TemplateTree
	return json.Marshal(struct {
		Kind string `json:"kind"`
		plain
	}{Kind: kindTree, plain: plain(t)})
}

// TemplateCollection holds everything a single document produced when it
// yields more than one top-level entity.
type TemplateCollection struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Templates   []Template `json:"templates"`
	Location    Location   `json:"location"`
}

// UnmarshalJSON decodes the heterogeneous template list by discriminator.
func (c *TemplateCollection) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name        string            `json:"name"`
		Description string            `json:"description"`
		Templates   []json.RawMessage `json:"templates"`
		Location    Location          `json:"location"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	templates := make([]Template, 0, len(raw.Templates))
	for _, item := range raw.Templates {
		t, err := UnmarshalTemplate(item)
		if err != nil {
			return err
		}
		templates = append(templates, t)
	}
	*c = TemplateCollection{
		Name:        raw.Name,
		Description: raw.Description,
		Templates:   templates,
		Location:    raw.Location,
	}
	return nil
}

// Split partitions the collection into trees and bare files, preserving order.
func (c TemplateCollection) Split() (trees []TemplateTree, files []TemplateFile) {
	for _, t := range c.Templates {
		switch v := t.(type) {
		case TemplateTree:
			trees = append(trees, v)
		case TemplateFile:
			files = append(files, v)
		}
	}
	return trees, files
}

// UnmarshalTemplate decodes a single JSON template using its "kind" field.
func UnmarshalTemplate(data []byte) (Template, error) {
	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.Kind {
	case kindFile:
		var f TemplateFile
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
		return f, nil
	case kindTree:
		var t TemplateTree
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unknown template kind %q", head.Kind)
	}
}
