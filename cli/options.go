// Package cli connects command line parsing with the configuration
// loader. Arguments in the form section.option=value are treated as
// configuration overrides, everything else is left to pflag or
// returned as positional arguments.
package cli

import (
	"errors"
	"fmt"

	"github.com/ppacher/confreg/conf"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ConfigFlag is the name of the reserved flag that selects the
// configuration file.
const ConfigFlag = "config"

// ErrMissingPositional is returned when positional arguments are
// required but none have been given.
var ErrMissingPositional = errors.New("this program expects one or more positional arguments that are missing")

// UnexpectedArgsError is returned when positional arguments are given
// to a program that does not accept any.
type UnexpectedArgsError struct {
	Args []string
}

func (e *UnexpectedArgsError) Error() string {
	return fmt.Sprintf("arguments %v not understood", e.Args)
}

// Result is returned by LoadOptions and FromCommand.
type Result struct {
	Config *conf.Store
	Flags  *pflag.FlagSet
	Args   []string
}

// IsOverride reports whether arg is a configuration override.
func IsOverride(arg string) bool {
	return conf.IsOverride(arg)
}

// SplitArgs separates override tokens from positional arguments. The
// relative order within both lists is kept.
func SplitArgs(args []string) (overrides, positional []string) {
	for _, arg := range args {
		if IsOverride(arg) {
			overrides = append(overrides, arg)
		} else {
			positional = append(positional, arg)
		}
	}
	return overrides, positional
}

// AddConfigFlag adds the -c/--config flag to fs unless it is already
// defined.
func AddConfigFlag(fs *pflag.FlagSet) {
	if fs.Lookup(ConfigFlag) != nil {
		return
	}
	fs.StringP(ConfigFlag, "c", "", "the path to a config file to read options from")
}

// LoadOptions parses argv using fs, loads the configuration named by
// --config together with all override tokens and enforces the
// positional argument contract. If fs is nil a new flag set is used.
func LoadOptions(fs *pflag.FlagSet, argv []string, loader *conf.Loader, positional bool) (*Result, error) {
	if fs == nil {
		fs = pflag.NewFlagSet("", pflag.ContinueOnError)
	}
	AddConfigFlag(fs)

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}

	return load(fs, fs.Args(), loader, positional)
}

// FromCommand is like LoadOptions for cobra commands. Flags must
// already be parsed and args are the arguments passed to RunE. The
// -c/--config flag must have been added to the command or one of its
// parents, see AddConfigFlag.
func FromCommand(cmd *cobra.Command, args []string, loader *conf.Loader, positional bool) (*Result, error) {
	return load(cmd.Flags(), args, loader, positional)
}

func load(fs *pflag.FlagSet, args []string, loader *conf.Loader, positional bool) (*Result, error) {
	name, err := fs.GetString(ConfigFlag)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s flag: %w", ConfigFlag, err)
	}

	overrides, rest := SplitArgs(args)

	store, err := loader.Load(name, overrides)
	if err != nil {
		return nil, err
	}

	switch {
	case positional && len(rest) == 0:
		return nil, ErrMissingPositional
	case !positional && len(rest) > 0:
		return nil, &UnexpectedArgsError{Args: rest}
	}

	return &Result{
		Config: store,
		Flags:  fs,
		Args:   rest,
	}, nil
}
