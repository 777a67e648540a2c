// Package script replays UI event sequences against a headless roster session.
//
// A script is a YAML or JSON document listing actions in order:
//
//	name: onboarding
//	steps:
//	  - action: add
//	  - action: select
//	    record: "#0"
//	  - action: edit
//	    field: firstname
//	    value: Ada
//	  - action: expect
//	    expect: {firstname: Ada, dirty: "true"}
//	  - action: save
package script

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Action is the kind of a step.
type Action string

const (
	ActionAdd      Action = "add"
	ActionSelect   Action = "select"
	ActionDeselect Action = "deselect"
	ActionEdit     Action = "edit"
	ActionSave     Action = "save"
	ActionReset    Action = "reset"
	ActionRemove   Action = "remove"
	ActionExpect   Action = "expect"
)

// Common errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported script format")
	ErrUnknownAction     = errors.New("unknown action")
	ErrInvalidStep       = errors.New("invalid step")
)

// Format of a script file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Script is a named list of steps.
type Script struct {
	Name  string `json:"name" yaml:"name"`
	Steps []Step `json:"steps" yaml:"steps"`
	// Path is the file the script was loaded from, if any.
	Path string `json:"-" yaml:"-"`
}

// Step is one UI event.
type Step struct {
	Action Action `json:"action" yaml:"action"`
	// Record is an id, or "#n" for the n-th row. Used by select, remove and expect.
	Record string `json:"record,omitempty" yaml:"record,omitempty"`
	Field  string `json:"field,omitempty" yaml:"field,omitempty"`
	Value  string `json:"value,omitempty" yaml:"value,omitempty"`
	// Expect maps field names (and "dirty") to expected display values.
	Expect map[string]string `json:"expect,omitempty" yaml:"expect,omitempty"`
}

// FormatFor picks a format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Parse decodes a script and validates its actions.
func Parse(r io.Reader, format Format) (*Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var s Script
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("yaml decode failed: %w", err)
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&s); err != nil {
			return nil, fmt.Errorf("json decode failed: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the script at path. The name defaults to the file name.
func Load(path string) (*Script, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Parse(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Path = path
	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	return s, nil
}

// Validate checks that every step carries what its action needs.
func (s *Script) Validate() error {
	for i, st := range s.Steps {
		switch st.Action {
		case ActionAdd, ActionDeselect, ActionSave, ActionReset, ActionRemove:
		case ActionSelect:
			if st.Record == "" {
				return fmt.Errorf("step %d: %w: select needs a record", i, ErrInvalidStep)
			}
		case ActionEdit:
			if st.Field == "" {
				return fmt.Errorf("step %d: %w: edit needs a field", i, ErrInvalidStep)
			}
		case ActionExpect:
			if len(st.Expect) == 0 {
				return fmt.Errorf("step %d: %w: expect needs at least one entry", i, ErrInvalidStep)
			}
		default:
			return fmt.Errorf("step %d: %w: %q", i, ErrUnknownAction, st.Action)
		}
	}
	return nil
}

// Discover expands doublestar patterns into a sorted, de-duplicated file list.
func Discover(patterns ...string) ([]string, error) {
	var out []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		out = append(out, matches...)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}
