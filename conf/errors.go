package conf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ExitFailure is the exit status used whenever a configuration cannot be
// loaded.
const ExitFailure = 1

// Commonly used validation and error messages.
var (
	ErrMalformedKey       = errors.New("malformed configuration key")
	ErrMalformedOverride  = errors.New("malformed override")
	ErrConfigNotFound     = errors.New("config file not found")
	ErrSectionNotExists   = errors.New("section does not exist")
	ErrDuplicateSection   = errors.New("section already exists")
	ErrOptionNotSet       = errors.New("option not set")
	ErrMissingSection     = errors.New("option defined before first section header")
	ErrInvalidLine        = errors.New("invalid line")
	ErrInterpolationDepth = errors.New("interpolation depth exceeded")
	ErrInterpolationKey   = errors.New("bad interpolation reference")
	ErrValidation         = errors.New("configuration problems")
	ErrInvalidDeclaration = errors.New("invalid declaration")
)

// UsageError is returned when a value is addressed by anything other
// than a (section, option) pair.
type UsageError struct {
	Key []string
}

func (e *UsageError) Error() string {
	quoted := make([]string, len(e.Key))
	for idx, k := range e.Key {
		quoted[idx] = fmt.Sprintf("%q", k)
	}

	return fmt.Sprintf(
		"config usage must be in the form Get(\"section\", \"option\"); given something more like Get(%s)",
		strings.Join(quoted, ", "),
	)
}

// Unwrap implements errors.Unwrap.
func (e *UsageError) Unwrap() error { return ErrMalformedKey }

func checkKey(key ...string) error {
	if len(key) != 2 || key[0] == "" || key[1] == "" {
		return &UsageError{Key: key}
	}
	return nil
}

// OverrideError is returned by ParseOverrides for tokens that are not
// in the form section.option=value.
type OverrideError struct {
	Token string
}

func (e *OverrideError) Error() string {
	return "invalid argument; not in form section.key=value: " + e.Token
}

// Unwrap implements errors.Unwrap.
func (e *OverrideError) Unwrap() error { return ErrMalformedOverride }

// NotFoundError lists every location that was searched for a
// configuration file.
type NotFoundError struct {
	Paths []string

	// Attempts holds the reason each path has been rejected.
	Attempts *multierror.Error
}

func (e *NotFoundError) Error() string {
	var sb strings.Builder
	sb.WriteString("Couldn't find config file.  Looked in:")
	for _, p := range e.Paths {
		sb.WriteString("\n - ")
		sb.WriteString(p)
	}
	sb.WriteString("\nto no avail.")
	return sb.String()
}

// Unwrap implements errors.Unwrap.
func (e *NotFoundError) Unwrap() error { return ErrConfigNotFound }

// ParseError describes a single line of a configuration file that
// could not be interpreted.
type ParseError struct {
	Path string
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	path := e.Path
	if path == "" {
		path = "<input>"
	}
	return fmt.Sprintf("%s:%d: %s: %q", path, e.Line, e.Err, e.Text)
}

// Unwrap implements errors.Unwrap.
func (e *ParseError) Unwrap() error { return e.Err }
