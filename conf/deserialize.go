package conf

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/hashicorp/go-multierror"
)

var (
	sectionRe = regexp.MustCompile(`^\[([^\]]+)\]`)
	optionRe  = regexp.MustCompile(`^([^:=\s][^:=]*?)\s*[:=]\s*(.*)$`)
)

// Deserialize parses the configuration read from r. path is only used
// for error messages and returned by Store.Path.
//
// The format consists of [section] headers followed by "key = value"
// or "key: value" lines. Lines starting with '#' or ';' are comments,
// a ';' preceded by whitespace starts an inline comment. Indented lines
// continue the value of the previous option. Option names are case
// insensitive. Sections that appear more than once are merged and the
// last value of an option wins.
//
// All lines that cannot be parsed are reported together.
func Deserialize(path string, r io.Reader) (*Store, error) {
	store := &Store{path: path}

	var (
		errs    *multierror.Error
		current *Section
		lastOpt string
		lineNo  int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || trimmed[0] == '#' || trimmed[0] == ';' {
			continue
		}

		// continuation of the previous value
		if unicode.IsSpace(rune(line[0])) && current != nil && lastOpt != "" {
			opt := current.Options.Get(lastOpt)
			opt.Value += "\n" + trimmed
			continue
		}

		if m := sectionRe.FindStringSubmatch(line); m != nil {
			name := m[1]
			if !store.sections.Has(name) {
				store.sections = append(store.sections, Section{Name: name})
			}
			current = store.sections.Get(name)
			lastOpt = ""
			continue
		}

		if current == nil {
			errs = multierror.Append(errs, &ParseError{
				Path: path,
				Line: lineNo,
				Text: line,
				Err:  ErrMissingSection,
			})
			// without a section there's nothing we can attach
			// continuation lines to.
			lastOpt = ""
			continue
		}

		m := optionRe.FindStringSubmatch(line)
		if m == nil {
			errs = multierror.Append(errs, &ParseError{
				Path: path,
				Line: lineNo,
				Text: line,
				Err:  ErrInvalidLine,
			})
			lastOpt = ""
			continue
		}

		name := normalizeOption(strings.TrimSpace(m[1]))
		current.set(name, cleanValue(m[2]))
		lastOpt = name
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return store, nil
}

// cleanValue strips inline comments and surrounding whitespace. A
// value that consists of a single double-quoted string, optionally
// followed by an inline comment, is unquoted using Go escapes; "" is
// an empty value.
func cleanValue(val string) string {
	val = strings.TrimSpace(val)

	if strings.HasPrefix(val, `"`) {
		if quoted, err := strconv.QuotedPrefix(val); err == nil {
			rest := strings.TrimSpace(val[len(quoted):])
			if rest == "" || rest[0] == ';' {
				unquoted, _ := strconv.Unquote(quoted)
				return unquoted
			}
		}
	}

	if pos := inlineCommentIndex(val); pos >= 0 {
		val = val[:pos]
	}
	return strings.TrimSpace(val)
}

// inlineCommentIndex returns the position of the first ';' that is
// preceded by whitespace, or -1.
func inlineCommentIndex(val string) int {
	for idx := 1; idx < len(val); idx++ {
		if val[idx] == ';' && unicode.IsSpace(rune(val[idx-1])) {
			return idx
		}
	}
	return -1
}

func hasInlineComment(val string) bool {
	return inlineCommentIndex(val) >= 0
}
