package conf

import (
	"fmt"
	"regexp"
)

// maxInterpolationDepth limits how many references are followed when
// expanding a value. It stops reference cycles.
const maxInterpolationDepth = 10

var referenceRe = regexp.MustCompile(`%(%|\(([^)]+)\)s)`)

// Expand returns the value of option with all %(name)s references
// replaced by the value of the option name in the same section. "%%"
// yields a literal percent sign. Get never expands references.
func (s *Store) Expand(section, option string) (string, error) {
	raw, err := s.Get(section, option)
	if err != nil {
		return "", err
	}
	return s.expand(section, option, raw, 1)
}

func (s *Store) expand(section, option, value string, depth int) (string, error) {
	if depth > maxInterpolationDepth {
		return "", fmt.Errorf("%s.%s: %w", section, option, ErrInterpolationDepth)
	}

	var err error
	res := referenceRe.ReplaceAllStringFunc(value, func(ref string) string {
		if err != nil {
			return ref
		}
		if ref == "%%" {
			return "%"
		}

		name := normalizeOption(ref[2 : len(ref)-2])
		raw, getErr := s.Get(section, name)
		if getErr != nil {
			err = fmt.Errorf("%s.%s: %s: %w", section, option, ref, ErrInterpolationKey)
			return ref
		}

		expanded, expandErr := s.expand(section, name, raw, depth+1)
		if expandErr != nil {
			err = expandErr
			return ref
		}
		return expanded
	})

	if err != nil {
		return "", err
	}
	return res, nil
}
