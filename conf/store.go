package conf

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// Store holds a parsed configuration. Values are addressed by
// (section, option) pairs.
type Store struct {
	path     string
	sections Sections
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Path returns the file the store has been loaded from. It is empty
// for stores that have not been read from a file.
func (s *Store) Path() string {
	return s.path
}

// Sections returns the names of all sections in the order they have
// been defined.
func (s *Store) Sections() []string {
	names := make([]string, len(s.sections))
	for idx, sec := range s.sections {
		names[idx] = sec.Name
	}
	return names
}

// HasSection returns true if section exists.
func (s *Store) HasSection(section string) bool {
	return s.sections.Has(section)
}

// AddSection adds an empty section.
func (s *Store) AddSection(section string) error {
	if section == "" {
		return &UsageError{Key: []string{section}}
	}
	if s.sections.Has(section) {
		return fmt.Errorf("%s: %w", section, ErrDuplicateSection)
	}
	s.sections = append(s.sections, Section{Name: section})
	return nil
}

// Options returns the names of all options of section.
func (s *Store) Options(section string) ([]string, error) {
	sec := s.sections.Get(section)
	if sec == nil {
		return nil, fmt.Errorf("%s: %w", section, ErrSectionNotExists)
	}

	names := make([]string, len(sec.Options))
	for idx, opt := range sec.Options {
		names[idx] = opt.Name
	}
	return names, nil
}

// HasOption returns true if option is set in section.
func (s *Store) HasOption(section, option string) bool {
	sec := s.sections.Get(section)
	return sec != nil && sec.Options.Get(option) != nil
}

// Get returns the raw value of option in section.
func (s *Store) Get(section, option string) (string, error) {
	if err := checkKey(section, option); err != nil {
		return "", err
	}

	sec := s.sections.Get(section)
	if sec == nil {
		return "", fmt.Errorf("%s: %w", section, ErrSectionNotExists)
	}

	opt := sec.Options.Get(option)
	if opt == nil {
		return "", fmt.Errorf("%s.%s: %w", section, normalizeOption(option), ErrOptionNotSet)
	}

	return opt.Value, nil
}

// Lookup is like Get but accepts the key as a list. Any key that is
// not exactly a (section, option) pair yields a *UsageError.
func (s *Store) Lookup(key ...string) (string, error) {
	if err := checkKey(key...); err != nil {
		return "", err
	}
	return s.Get(key[0], key[1])
}

// Set assigns value to option. The section must exist.
func (s *Store) Set(section, option, value string) error {
	if err := checkKey(section, option); err != nil {
		return err
	}

	sec := s.sections.Get(section)
	if sec == nil {
		return fmt.Errorf("%s: %w", section, ErrSectionNotExists)
	}

	sec.set(option, value)
	return nil
}

// Delete removes option from section. It reports whether the option
// has been set before.
func (s *Store) Delete(section, option string) (bool, error) {
	if err := checkKey(section, option); err != nil {
		return false, err
	}

	sec := s.sections.Get(section)
	if sec == nil {
		return false, fmt.Errorf("%s: %w", section, ErrSectionNotExists)
	}

	return sec.remove(option), nil
}

// GetList returns the value of option split into its elements. See
// SplitValues.
func (s *Store) GetList(section, option string) ([]string, error) {
	val, err := s.Get(section, option)
	if err != nil {
		return nil, err
	}
	return SplitValues(val), nil
}

// Merge applies all overrides to s. Sections are created as needed and
// existing values are replaced.
func (s *Store) Merge(ov Overrides) {
	for _, o := range ov {
		if !s.sections.Has(o.Section) {
			s.sections = append(s.sections, Section{Name: o.Section})
		}
		s.sections.Get(o.Section).set(o.Option, o.Value)
	}
}

// Clone returns a deep copy of s.
func (s *Store) Clone() *Store {
	c := &Store{
		path:     s.path,
		sections: make(Sections, len(s.sections)),
	}
	for idx, sec := range s.sections {
		c.sections[idx] = Section{
			Name:    sec.Name,
			Options: append(Options(nil), sec.Options...),
		}
	}
	return c
}

// SplitValues splits the value of a multi-value option. Elements are
// separated by whitespace; quoting keeps whitespace inside an element.
// Values without quotes, values containing '#' and values with
// unbalanced quotes are split on whitespace only.
func SplitValues(value string) []string {
	if !strings.ContainsAny(value, `"'`) || strings.Contains(value, "#") {
		return strings.Fields(value)
	}

	values, err := shlex.Split(value)
	if err != nil {
		return strings.Fields(value)
	}
	return values
}
