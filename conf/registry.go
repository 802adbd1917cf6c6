package conf

import "sort"

// SectionRegistry is used to validate sections when
// loading files. It's default implementation is Registry.
type SectionRegistry interface {
	// OptionsForSection returns the option registry that defines all options
	// allowed in the section name. It returns a boolean value to
	// indicate if a section with name was found. If false is returned
	// the section is treated as unknown.
	OptionsForSection(name string) (OptionRegistry, bool)
}

// OptionRegistry is used to validate all options in a section.
// It's default implementation is SectionSpec.
type OptionRegistry interface {
	// HasOption returns true if the option with name is defined
	// in the option registry.
	HasOption(optName string) bool

	// GetOption returns the definition of the option defined by optName.
	GetOption(optName string) (OptionSpec, bool)

	// All returns all options defined in the option registry (if supported).
	All() []OptionSpec
}

// LookupStatus tells how a (section, option) pair relates to the
// declarations of a Registry.
type LookupStatus int

// All possible lookup results.
const (
	// StatusKnown means the option has been declared explicitly.
	StatusKnown LookupStatus = iota
	// StatusDynamic means the option is accepted because its section
	// declares DynamicOption.
	StatusDynamic
	// StatusUnknownOption means the section is known but the option
	// is not.
	StatusUnknownOption
	// StatusUnknownSection means nothing has been declared for the
	// section.
	StatusUnknownSection
)

func (s LookupStatus) String() string {
	switch s {
	case StatusKnown:
		return "known"
	case StatusDynamic:
		return "dynamic"
	case StatusUnknownOption:
		return "unknown option"
	case StatusUnknownSection:
		return "unknown section"
	}
	return "invalid"
}

// Registry holds the option declarations of a program. Independent
// components declare what they need by calling Register during
// start-up. Declarations are never removed.
//
// A Registry is not safe for concurrent modification.
type Registry struct {
	sections map[string]SectionSpec
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sections: make(map[string]SectionSpec),
	}
}

// Register declares spec for section. A later declaration of the same
// option replaces the earlier one. The stored declaration is returned.
func (r *Registry) Register(section string, spec OptionSpec) OptionSpec {
	if spec.Name != DynamicOption {
		spec.Name = normalizeOption(spec.Name)
	}
	r.sections[section] = r.sections[section].with(spec)
	return spec
}

// RegisterDynamic declares that section accepts options that are not
// known in advance.
func (r *Registry) RegisterDynamic(section, doc string) OptionSpec {
	return r.Register(section, OptionSpec{
		Name:        DynamicOption,
		Description: doc,
	})
}

// OptionsForSection implements SectionRegistry.
func (r *Registry) OptionsForSection(name string) (OptionRegistry, bool) {
	spec, ok := r.sections[name]
	if !ok {
		return nil, false
	}
	return spec, true
}

// Sections returns the names of all registered sections sorted
// alphabetically.
func (r *Registry) Sections() []string {
	names := make([]string, 0, len(r.sections))
	for name := range r.sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSectionRegistered returns true if at least one option has been
// declared for section.
func (r *Registry) IsSectionRegistered(section string) bool {
	_, ok := r.sections[section]
	return ok
}

// IsOptionRegistered returns true if option has been declared for
// section. Unless strict is set, options of dynamic sections are
// always considered registered.
func (r *Registry) IsOptionRegistered(section, option string, strict bool) bool {
	_, status := r.Lookup(section, option)
	if status == StatusKnown {
		return true
	}
	return !strict && status == StatusDynamic
}

// Lookup returns the declaration of option in section together with
// a status that tells whether the option, or even the section, is
// unknown. The returned spec is only valid for StatusKnown.
func (r *Registry) Lookup(section, option string) (OptionSpec, LookupStatus) {
	specs, ok := r.sections[section]
	if !ok {
		return OptionSpec{}, StatusUnknownSection
	}

	if spec, ok := specs.GetOption(option); ok && !spec.IsDynamic() {
		return spec, StatusKnown
	}

	if specs.IsDynamic() {
		return OptionSpec{}, StatusDynamic
	}

	return OptionSpec{}, StatusUnknownOption
}

// RequiredOptions returns the names of all required options of section
// in registration order. Unknown sections do not have required options.
func (r *Registry) RequiredOptions(section string) []string {
	var res []string
	for _, spec := range r.sections[section] {
		if spec.Required && !spec.IsDynamic() {
			res = append(res, spec.Name)
		}
	}
	return res
}

// RequiredSections returns, sorted by name, all sections that must be
// present in a configuration.
func (r *Registry) RequiredSections() []string {
	var res []string
	for _, name := range r.Sections() {
		if r.sections[name].SectionRequired() {
			res = append(res, name)
		}
	}
	return res
}

// AllowedValues returns the values permitted for option. It returns
// nil if the option is not registered explicitly or is unconstrained.
func (r *Registry) AllowedValues(section, option string) []string {
	spec, status := r.Lookup(section, option)
	if status != StatusKnown {
		return nil
	}
	return spec.AllowedValues
}

// AllowMultiple returns true if option is declared to hold a whitespace
// separated list of values.
func (r *Registry) AllowMultiple(section, option string) bool {
	spec, status := r.Lookup(section, option)
	return status == StatusKnown && spec.AllowMultiple
}

// isSecret returns true if the value of option must not be printed.
func (r *Registry) isSecret(section, option string) bool {
	if r == nil {
		return false
	}
	spec, status := r.Lookup(section, option)
	return status == StatusKnown && IsSecret(spec)
}
