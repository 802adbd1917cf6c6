package main

import (
	"fmt"

	"github.com/ppacher/confreg/cli"
	"github.com/ppacher/confreg/conf"
	"github.com/ppacher/confreg/internal/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type app struct {
	fs           afero.Fs
	environ      func() []string
	declarations string
	envPrefix    string

	registry *conf.Registry
	loader   *conf.Loader
	log      logger.Logger
}

func newApp(fs afero.Fs) *app {
	return &app{
		fs:  fs,
		log: logger.NewLogger(logger.DefaultConfig()),
	}
}

// setup builds the registry and the loader once all persistent flags
// are parsed.
func (a *app) setup(cmd *cobra.Command) error {
	reg := conf.NewRegistry()
	logger.Register(reg)

	if a.declarations != "" {
		if err := a.loadDeclarations(reg); err != nil {
			return err
		}
	}

	opts := []conf.LoaderOption{
		conf.WithFs(a.fs),
		conf.WithOutput(cmd.ErrOrStderr()),
		conf.WithLogger(logger.NewCharmLogger(&logger.Config{
			Level:  logger.InfoLevel,
			Output: cmd.ErrOrStderr(),
		})),
	}
	if a.envPrefix != "" {
		opts = append(opts, conf.WithEnv(a.envPrefix, a.environ))
	}

	a.registry = reg
	a.loader = conf.NewLoader(reg, opts...)
	return nil
}

func (a *app) loadDeclarations(reg *conf.Registry) error {
	f, err := a.fs.Open(a.declarations)
	if err != nil {
		return fmt.Errorf("failed to open declarations: %w", err)
	}
	defer f.Close()

	decls, err := conf.LoadDeclarations(f)
	if err != nil {
		return fmt.Errorf("%s: %w", a.declarations, err)
	}

	reg.RegisterAll(decls)
	return nil
}

// load loads and validates the configuration and reconfigures the
// application logger from the [log] section.
func (a *app) load(cmd *cobra.Command, args []string, positional bool) (*cli.Result, error) {
	res, err := cli.FromCommand(cmd, args, a.loader, positional)
	if err != nil {
		return nil, err
	}

	base := logger.DefaultConfig()
	base.Output = cmd.ErrOrStderr()

	cfg, err := logger.ConfigFromStore(res.Config, base)
	if err != nil {
		return nil, err
	}
	a.log = logger.NewLogger(cfg)

	return res, nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "confreg",
		Short:         "Validate configuration files against declared options",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	cli.AddConfigFlag(flags)
	flags.StringVar(&a.declarations, "declarations", "", "JSON file with additional option declarations")
	flags.StringVar(&a.envPrefix, "env-prefix", "", "read PREFIX_SECTION_OPTION environment variables")

	root.AddCommand(
		checkCmd(a),
		dumpCmd(a),
		getCmd(a),
		docsCmd(a),
	)

	return root
}

func checkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [section.option=value...]",
		Short: "Validate the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.load(cmd, args, false)
			if err != nil {
				return err
			}
			a.log.Info("configuration is valid", "path", res.Config.Path())
			return nil
		},
	}
}

func dumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump [section.option=value...]",
		Short: "Print the merged configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.load(cmd, args, false)
			if err != nil {
				return err
			}
			_, err = res.Config.WriteMasked(cmd.OutOrStdout(), a.registry)
			return err
		},
	}
}

func getCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <section> <option> [section.option=value...]",
		Short: "Print a single configuration value",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.load(cmd, args, true)
			if err != nil {
				return err
			}
			if len(res.Args) != 2 {
				return &cli.UnexpectedArgsError{Args: res.Args}
			}

			val, err := res.Config.Get(res.Args[0], res.Args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), val)
			return nil
		},
	}
}

func docsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: "Print all declared options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.registry.WriteDocs(cmd.OutOrStdout())
		},
	}
}
