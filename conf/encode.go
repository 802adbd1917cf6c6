package conf

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteTo writes s in the format understood by Deserialize. It
// implements io.WriterTo.
func (s *Store) WriteTo(w io.Writer) (int64, error) {
	return writeSections(s.sections, nil, w)
}

// WriteMasked is like WriteTo but replaces the values of all options
// that reg marks as secret.
func (s *Store) WriteMasked(w io.Writer, reg *Registry) (int64, error) {
	return writeSections(s.sections, reg, w)
}

func writeSections(sections Sections, reg *Registry, w io.Writer) (int64, error) {
	var total int64
	for idx, sec := range sections {
		if idx > 0 {
			n, err := io.WriteString(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}

		n, err := fmt.Fprintf(w, "[%s]\n", sec.Name)
		total += int64(n)
		if err != nil {
			return total, err
		}

		for _, opt := range sec.Options {
			value := opt.Value
			if reg.isSecret(sec.Name, opt.Name) {
				value = maskedValue
			}

			n, err := fmt.Fprintf(w, "%s = %s\n", opt.Name, encodeValue(value))
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}

	return total, nil
}

// encodeValue indents continuation lines so multi-line values survive
// a round trip through Deserialize. Values that Deserialize would
// otherwise alter are written as a double-quoted string.
func encodeValue(value string) string {
	if needsQuoting(value) {
		return strconv.Quote(value)
	}
	return strings.ReplaceAll(value, "\n", "\n\t")
}

func needsQuoting(value string) bool {
	if value == "" || value[0] == '"' || strings.ContainsRune(value, '\r') {
		return true
	}

	for idx, line := range strings.Split(value, "\n") {
		if line != strings.TrimSpace(line) || hasInlineComment(line) {
			return true
		}
		// continuation lines that are blank or look like comments
		// are skipped by Deserialize.
		if idx > 0 && (line == "" || line[0] == '#' || line[0] == ';') {
			return true
		}
	}
	return false
}
