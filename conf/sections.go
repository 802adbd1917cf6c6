package conf

// Option is a single option with its value.
type Option struct {
	Name  string
	Value string
}

// Options is an ordered list of options. Option names are unique.
type Options []Option

// Get returns the option with name or nil.
func (opts Options) Get(name string) *Option {
	name = normalizeOption(name)
	for idx := range opts {
		if opts[idx].Name == name {
			return &opts[idx]
		}
	}
	return nil
}

// Section is a named group of options.
type Section struct {
	Name    string
	Options Options
}

// set assigns value to name, keeping the position of an existing option.
func (s *Section) set(name, value string) {
	name = normalizeOption(name)
	if opt := s.Options.Get(name); opt != nil {
		opt.Value = value
		return
	}
	s.Options = append(s.Options, Option{Name: name, Value: value})
}

// remove deletes name and reports whether it has been present.
func (s *Section) remove(name string) bool {
	name = normalizeOption(name)
	for idx, opt := range s.Options {
		if opt.Name == name {
			s.Options = append(s.Options[:idx], s.Options[idx+1:]...)
			return true
		}
	}
	return false
}

// Sections is a convenience type for working with a slice
// of sections.
type Sections []Section

// Get returns the section identified by name. Section names
// are case sensitive. If no section matches name nil is returned.
func (ss Sections) Get(name string) *Section {
	for idx, s := range ss {
		if s.Name == name {
			return &ss[idx]
		}
	}
	return nil
}

// Has checks if a section with name is available.
func (ss Sections) Has(name string) bool {
	return ss.Get(name) != nil
}
