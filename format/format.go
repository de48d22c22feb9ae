// Package format renders ground programs for the "ground" CLI subcommand
// and loads the rule set the grounder operates on, mirroring the split the
// teacher's internal/presentation package makes between pretty and JSON
// output — except here the alternate encoding is YAML, and the same codec
// doubles as the "parse hook point": a structural encoding of a Program
// stands in for the surface-syntax parser, which the specification keeps
// outside the grounder's scope as a free-standing external collaborator.
package format

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/asporia/grounder/ast"
)

// Kind selects an output encoding for a ground program.
type Kind string

const (
	Text Kind = "text"
	YAML Kind = "yaml"
)

// Write renders rules to w in the requested encoding. Text produces the
// newline-separated ASP-Core-2-flavored syntax of §6 (`p(1,2).`,
// `not p(X)`, choice and constraint heads) via ast.Rule.String; YAML
// produces a structural encoding that round-trips through LoadProgram.
func Write(w io.Writer, kind Kind, rules []*ast.Rule) error {
	switch kind {
	case YAML:
		return writeYAML(w, rules)
	default:
		return writeText(w, rules)
	}
}

func writeText(w io.Writer, rules []*ast.Rule) error {
	for _, r := range rules {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return errors.Wrap(err, "writing ground program")
		}
	}
	return nil
}

func writeYAML(w io.Writer, rules []*ast.Rule) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	if err := enc.Encode(struct {
		Rules []*ast.Rule `yaml:"rules"`
	}{Rules: rules}); err != nil {
		return errors.Wrap(err, "encoding ground program as yaml")
	}
	return nil
}

// LoadProgram decodes a YAML-encoded Program from r. It is the concrete
// default behind the CLI's parse hook point: a real deployment can swap
// this for a generated surface-syntax parser without touching anything
// downstream, since both only ever need to produce an *ast.Program.
func LoadProgram(r io.Reader) (*ast.Program, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(false)
	var prog ast.Program
	if err := dec.Decode(&prog); err != nil {
		return nil, errors.Wrap(err, "decoding program")
	}
	return &prog, nil
}
