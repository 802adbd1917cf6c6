package conf

import "strings"

// DynamicOption is a reserved option name. Registering it for a section
// means the section accepts options that are not declared one by one.
const DynamicOption = "__dynamic"

// OptionSpec describes an option
type OptionSpec struct {
	// Name is the name of the option. Option names are
	// case-insensitive and stored in lower case.
	Name string `json:"name"`

	// AllowedValues restricts the values the option may take.
	// An empty list means any value is accepted.
	AllowedValues []string `json:"allowed_values,omitempty"`

	// Description is a human readable description of
	// the option.
	Description string `json:"description,omitempty"`

	// Required may be set to true if the option must be set
	// whenever its section is present.
	Required bool `json:"required,omitempty"`

	// SectionRequired may be set to true if the section of this
	// option must be present in the final configuration.
	SectionRequired bool `json:"section_required,omitempty"`

	// AllowMultiple marks the value as a whitespace separated list.
	// Each element is checked against AllowedValues on its own.
	AllowMultiple bool `json:"allow_multiple,omitempty"`

	// Annotations can be used to add arbitrary metadata to
	// option definitions. For example, such annotations can
	// be later used in help or documentation generators.
	Annotations Annotation `json:"annotations,omitempty"`
}

// IsDynamic returns true if spec is the DynamicOption placeholder.
func (spec OptionSpec) IsDynamic() bool {
	return spec.Name == DynamicOption
}

// Allows reports whether value is permitted by spec. It does not split
// multi-value options, see SplitValues for that.
func (spec OptionSpec) Allows(value string) bool {
	if len(spec.AllowedValues) == 0 {
		return true
	}
	for _, allowed := range spec.AllowedValues {
		if allowed == value {
			return true
		}
	}
	return false
}

func normalizeOption(name string) string {
	return strings.ToLower(name)
}
