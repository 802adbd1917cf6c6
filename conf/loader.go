package conf

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
)

// Loader loads configuration files, applies overrides and validates
// the result against a Registry.
type Loader struct {
	registry  *Registry
	fs        afero.Fs
	home      string
	envPrefix string
	environ   func() []string
	logger    *log.Logger
	output    io.Writer
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFs sets the file system configuration files are read from.
// Defaults to the operating system's file system.
func WithFs(fs afero.Fs) LoaderOption {
	return func(l *Loader) {
		l.fs = fs
	}
}

// WithHomeDir sets the directory used for ~ lookups. Defaults to the
// home directory of the current user.
func WithHomeDir(dir string) LoaderOption {
	return func(l *Loader) {
		l.home = dir
	}
}

// WithEnv enables reading PREFIX_SECTION_OPTION environment variables.
// They take precedence over the configuration file but not over
// command line overrides. If environ is nil os.Environ is used.
func WithEnv(prefix string, environ func() []string) LoaderOption {
	return func(l *Loader) {
		l.envPrefix = prefix
		l.environ = environ
	}
}

// WithLogger sets the logger used for status messages.
func WithLogger(logger *log.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithOutput sets where Report writes to. Defaults to os.Stderr.
func WithOutput(w io.Writer) LoaderOption {
	return func(l *Loader) {
		l.output = w
	}
}

// NewLoader returns a loader that validates against reg.
func NewLoader(reg *Registry, opts ...LoaderOption) *Loader {
	l := &Loader{
		registry: reg,
		fs:       afero.NewOsFs(),
		output:   os.Stderr,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.logger == nil {
		l.logger = log.NewWithOptions(l.output, log.Options{
			Level: log.InfoLevel,
		})
	}

	return l
}

// Registry returns the registry used for validation.
func (l *Loader) Registry() *Registry {
	return l.registry
}

// Load reads the configuration called name, merges the override tokens
// and validates the result. If name is empty the configuration only
// consists of the overrides. See CandidatePaths for where name is
// searched.
//
// Malformed tokens and missing or unreadable files are reported
// immediately. Validation problems are collected and returned together
// as a *ValidationError.
func (l *Loader) Load(name string, tokens []string) (*Store, error) {
	overrides, err := ParseOverrides(tokens)
	if err != nil {
		return nil, err
	}

	store := NewStore()
	if name != "" {
		paths, err := l.candidates(name)
		if err != nil {
			return nil, err
		}

		store, err = LoadFirst(l.fs, paths)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("loaded configuration", "path", store.Path())
	}

	if l.envPrefix != "" {
		envOverrides, err := ParseFromEnv(l.envPrefix, l.environ, l.registry)
		if err != nil {
			return nil, err
		}
		store.Merge(envOverrides)
	}

	store.Merge(overrides)

	report := Validate(store, l.registry)
	for _, section := range report.UnknownSections {
		l.logger.Warn("Ignoring unknown configuration section", "section", section)
	}

	if err := report.Err(); err != nil {
		return nil, err
	}

	return store, nil
}

// MustLoad is like Load but reports any error and terminates the
// process with ExitFailure.
func (l *Loader) MustLoad(name string, tokens []string) *Store {
	store, err := l.Load(name, tokens)
	if err != nil {
		if rerr := l.Report(err); rerr != nil {
			l.logger.Error("failed to report configuration error", "err", rerr)
		}
		os.Exit(ExitFailure)
	}
	return store
}

// Report writes err to the loader's output. See ReportTo.
func (l *Loader) Report(err error) error {
	return l.ReportTo(l.output, err)
}

// ReportTo writes err to w. Validation errors are preceded by the
// documentation of all declared options.
func (l *Loader) ReportTo(w io.Writer, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		if werr := l.registry.WriteDocs(w); werr != nil {
			return fmt.Errorf("failed to write documentation: %w", werr)
		}
	}

	if _, werr := fmt.Fprintln(w, err.Error()); werr != nil {
		return fmt.Errorf("failed to write error: %w", werr)
	}
	return nil
}

func (l *Loader) candidates(name string) ([]string, error) {
	home := l.home
	if home == "" {
		var err error
		home, err = homedir.Dir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine home directory: %w", err)
		}
	}
	return CandidatePaths(name, home), nil
}
