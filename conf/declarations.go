package conf

import (
	"encoding/json"
	"fmt"
	"io"
)

// Declaration is an OptionSpec bound to its section. Declarations
// can be read from JSON so programs that validate foreign
// configuration files do not need compiled-in registrations.
type Declaration struct {
	Section string `json:"section"`
	OptionSpec
}

// UnmarshalJSON unmarshals blob into decl. The boolean "secret" member
// is translated into the SecretValue annotation.
func (decl *Declaration) UnmarshalJSON(blob []byte) error {
	type embed OptionSpec
	var wrapped struct {
		embed
		Section string `json:"section"`
		Secret  bool   `json:"secret"`
	}

	if err := json.Unmarshal(blob, &wrapped); err != nil {
		return err
	}

	decl.Section = wrapped.Section
	decl.OptionSpec = OptionSpec(wrapped.embed)
	if wrapped.Secret {
		decl.Annotations.With(SecretValue())
	}

	return nil
}

// LoadDeclarations reads a JSON array of declarations from r.
func LoadDeclarations(r io.Reader) ([]Declaration, error) {
	var decls []Declaration
	if err := json.NewDecoder(r).Decode(&decls); err != nil {
		return nil, fmt.Errorf("failed to decode declarations: %w", err)
	}

	for idx, d := range decls {
		if d.Section == "" {
			return nil, fmt.Errorf("declaration #%d: section missing: %w", idx, ErrInvalidDeclaration)
		}
		if d.Name == "" {
			return nil, fmt.Errorf("declaration #%d (%s): name missing: %w", idx, d.Section, ErrInvalidDeclaration)
		}
	}

	return decls, nil
}

// RegisterAll registers every declaration in order.
func (r *Registry) RegisterAll(decls []Declaration) {
	for _, d := range decls {
		r.Register(d.Section, d.OptionSpec)
	}
}
