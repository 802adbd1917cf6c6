package conf

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ProblemKind classifies a validation problem.
type ProblemKind int

// All kinds of problems reported by Validate.
const (
	UnknownOption ProblemKind = iota
	IllegalValue
	MissingOption
	MissingSection
)

func (k ProblemKind) String() string {
	switch k {
	case UnknownOption:
		return "unknown option"
	case IllegalValue:
		return "illegal value"
	case MissingOption:
		return "missing option"
	case MissingSection:
		return "missing section"
	}
	return "invalid"
}

// Problem is a single violation of a declaration. It implements error.
type Problem struct {
	Kind    ProblemKind
	Section string
	Option  string
	// Value is the rejected value for IllegalValue problems.
	Value   string
	Allowed []string
}

func (p Problem) Error() string {
	switch p.Kind {
	case UnknownOption:
		return fmt.Sprintf("Unknown configuration variable %s.%s", p.Section, p.Option)
	case IllegalValue:
		quoted := make([]string, len(p.Allowed))
		for idx, v := range p.Allowed {
			quoted[idx] = "'" + v + "'"
		}
		return fmt.Sprintf("Illegal value '%s' for configuration variable %s.%s.  Permitted values are: %s",
			p.Value, p.Section, p.Option, strings.Join(quoted, ", "))
	case MissingOption:
		return fmt.Sprintf("Required configuration variable %s.%s is absent", p.Section, p.Option)
	case MissingSection:
		return fmt.Sprintf("Required configuration section %s is absent", p.Section)
	}
	return "invalid problem"
}

// Report is the result of validating a store.
type Report struct {
	// Problems holds all violations in the order they have been found.
	Problems []Problem
	// UnknownSections lists sections nothing has been declared for.
	// They are tolerated and do not count as problems.
	UnknownSections []string
}

// OK returns true if no problems have been found.
func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

// Err returns nil if r has no problems and a *ValidationError
// otherwise.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	return &ValidationError{Report: r}
}

// ValidationError is returned by Loader.Load if the merged
// configuration violates at least one declaration.
type ValidationError struct {
	Report *Report
}

func (e *ValidationError) Error() string {
	merr := new(multierror.Error)
	for _, p := range e.Report.Problems {
		merr = multierror.Append(merr, p)
	}
	merr.ErrorFormat = func(errs []error) string {
		lines := make([]string, len(errs))
		for idx, err := range errs {
			lines[idx] = "  " + err.Error()
		}
		return "Configuration Problems:\n" + strings.Join(lines, "\n")
	}
	return merr.Error()
}

// Unwrap implements errors.Unwrap.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validate checks every section and option of store against reg. It
// never stops at the first violation.
func Validate(store *Store, reg *Registry) *Report {
	report := new(Report)

	for _, sec := range store.sections {
		if !reg.IsSectionRegistered(sec.Name) {
			report.UnknownSections = append(report.UnknownSections, sec.Name)
			continue
		}

		for _, opt := range sec.Options {
			report.Problems = append(report.Problems, validateOption(sec.Name, opt, reg)...)
		}

		for _, name := range reg.RequiredOptions(sec.Name) {
			if sec.Options.Get(name) == nil {
				report.Problems = append(report.Problems, Problem{
					Kind:    MissingOption,
					Section: sec.Name,
					Option:  name,
				})
			}
		}
	}

	for _, name := range reg.RequiredSections() {
		if !store.HasSection(name) {
			report.Problems = append(report.Problems, Problem{
				Kind:    MissingSection,
				Section: name,
			})
		}
	}

	return report
}

func validateOption(section string, opt Option, reg *Registry) []Problem {
	spec, status := reg.Lookup(section, opt.Name)
	switch status {
	case StatusDynamic:
		return nil
	case StatusKnown:
	default:
		return []Problem{{
			Kind:    UnknownOption,
			Section: section,
			Option:  opt.Name,
		}}
	}

	if len(spec.AllowedValues) == 0 {
		return nil
	}

	// quotes have no meaning here, every whitespace separated token
	// must be an allowed value on its own.
	values := []string{opt.Value}
	if spec.AllowMultiple {
		values = strings.Fields(opt.Value)
	}

	var problems []Problem
	for _, v := range values {
		if spec.Allows(v) {
			continue
		}
		if IsSecret(spec) {
			v = maskedValue
		}
		problems = append(problems, Problem{
			Kind:    IllegalValue,
			Section: section,
			Option:  opt.Name,
			Value:   v,
			Allowed: spec.AllowedValues,
		})
	}
	return problems
}
