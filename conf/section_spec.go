package conf

import "sort"

// SectionSpec describes all options that can be used in a
// given section. Options keep the order they were registered in.
type SectionSpec []OptionSpec

// GetOption searches for the OptionSpec with name optName.
func (specs SectionSpec) GetOption(optName string) (OptionSpec, bool) {
	optName = normalizeOption(optName)
	for _, opt := range specs {
		if opt.Name == optName {
			return opt, true
		}
	}

	return OptionSpec{}, false
}

// HasOption returns true if the section spec defines an option
// with name optName.
func (specs SectionSpec) HasOption(optName string) bool {
	_, ok := specs.GetOption(optName)
	return ok
}

// All returns all options defined for the section.
func (specs SectionSpec) All() []OptionSpec {
	return ([]OptionSpec)(specs)
}

// IsDynamic returns true if the section accepts undeclared options.
func (specs SectionSpec) IsDynamic() bool {
	return specs.HasOption(DynamicOption)
}

// SectionRequired returns true if at least one option requires
// the section to be present.
func (specs SectionSpec) SectionRequired() bool {
	for _, opt := range specs {
		if opt.SectionRequired {
			return true
		}
	}
	return false
}

// with replaces the option with the same name as spec in place or
// appends spec. Like append, the result must be used instead of specs.
func (specs SectionSpec) with(spec OptionSpec) SectionSpec {
	for idx, opt := range specs {
		if opt.Name == spec.Name {
			specs[idx] = spec
			return specs
		}
	}
	return append(specs, spec)
}

// sorted returns a copy of specs ordered by option name.
func (specs SectionSpec) sorted() SectionSpec {
	res := make(SectionSpec, len(specs))
	copy(res, specs)
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Name < res[j].Name
	})
	return res
}
