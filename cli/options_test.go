package cli_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/ppacher/confreg/cli"
	"github.com/ppacher/confreg/conf"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoader(t *testing.T, out io.Writer) *conf.Loader {
	t.Helper()

	reg := conf.NewRegistry()
	reg.Register("corpus", conf.OptionSpec{
		Name:            "load",
		AllowedValues:   []string{"english-mz", "chinese-mz"},
		Required:        true,
		SectionRequired: true,
	})

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "ontonotes.conf", []byte("[corpus]\nload = chinese-mz\n"), 0644))

	return conf.NewLoader(reg,
		conf.WithFs(fs),
		conf.WithHomeDir("/home/user"),
		conf.WithOutput(out),
		conf.WithLogger(log.New(io.Discard)),
	)
}

func TestSplitArgs(t *testing.T) {
	cases := []struct {
		Args       []string
		Overrides  []string
		Positional []string
	}{
		{nil, nil, nil},
		{
			[]string{"input.txt", "corpus.load=english-mz", "output.txt"},
			[]string{"corpus.load=english-mz"},
			[]string{"input.txt", "output.txt"},
		},
		{
			[]string{"a=b.c", "file.txt", "x.y=1=2"},
			[]string{"x.y=1=2"},
			[]string{"a=b.c", "file.txt"},
		},
	}

	for idx, c := range cases {
		overrides, positional := cli.SplitArgs(c.Args)
		assert.Equalf(t, c.Overrides, overrides, "case #%d", idx)
		assert.Equalf(t, c.Positional, positional, "case #%d", idx)
	}
}

func TestLoadOptions(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	verbose := fs.BoolP("verbose", "v", false, "")

	res, err := cli.LoadOptions(fs, []string{"-c", "ontonotes", "-v", "input.txt", "corpus.load=english-mz"}, newLoader(t, io.Discard), true)
	require.NoError(t, err)

	assert.True(t, *verbose)
	assert.Equal(t, []string{"input.txt"}, res.Args)
	assert.Same(t, fs, res.Flags)

	val, err := res.Config.Get("corpus", "load")
	assert.NoError(t, err)
	assert.Equal(t, "english-mz", val)
}

func TestLoadOptionsPositionalContract(t *testing.T) {
	loader := newLoader(t, io.Discard)

	_, err := cli.LoadOptions(nil, []string{"--config", "ontonotes"}, loader, true)
	assert.True(t, errors.Is(err, cli.ErrMissingPositional))

	_, err = cli.LoadOptions(nil, []string{"--config", "ontonotes", "a", "b"}, loader, false)
	var uerr *cli.UnexpectedArgsError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, []string{"a", "b"}, uerr.Args)
	assert.Equal(t, "arguments [a b] not understood", err.Error())

	res, err := cli.LoadOptions(nil, []string{"corpus.load=english-mz"}, loader, false)
	require.NoError(t, err)
	assert.Empty(t, res.Args)
	assert.Empty(t, res.Config.Path())
}

func TestLoadOptionsErrors(t *testing.T) {
	loader := newLoader(t, io.Discard)

	_, err := cli.LoadOptions(nil, []string{"-c", "missing", "x"}, loader, true)
	assert.True(t, errors.Is(err, conf.ErrConfigNotFound))

	_, err = cli.LoadOptions(nil, []string{"corpus.load=english-mz", "corpus.=x"}, loader, false)
	assert.True(t, errors.Is(err, conf.ErrMalformedOverride))

	_, err = cli.LoadOptions(nil, []string{"x"}, loader, true)
	assert.True(t, errors.Is(err, conf.ErrValidation))

	_, err = cli.LoadOptions(nil, []string{"--unknown"}, loader, true)
	assert.Error(t, err)
}

func TestFromCommand(t *testing.T) {
	loader := newLoader(t, io.Discard)

	var res *cli.Result
	root := &cobra.Command{Use: "root", SilenceUsage: true, SilenceErrors: true}
	cli.AddConfigFlag(root.PersistentFlags())

	sub := &cobra.Command{
		Use: "sub",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			res, err = cli.FromCommand(cmd, args, loader, true)
			return err
		},
	}
	root.AddCommand(sub)

	root.SetArgs([]string{"sub", "-c", "ontonotes", "input.txt"})
	require.NoError(t, root.Execute())

	assert.Equal(t, []string{"input.txt"}, res.Args)
	val, err := res.Config.Get("corpus", "load")
	assert.NoError(t, err)
	assert.Equal(t, "chinese-mz", val)
}

func TestReport(t *testing.T) {
	var loaderOut, out bytes.Buffer
	loader := newLoader(t, &loaderOut)

	cli.Report(&out, loader, errors.New("something failed"))
	assert.Contains(t, out.String(), "ERROR")
	assert.Contains(t, out.String(), "something failed")
	assert.Empty(t, loaderOut.String())

	_, err := loader.Load("", nil)
	require.Error(t, err)

	out.Reset()
	cli.Report(&out, loader, err)
	assert.Empty(t, loaderOut.String())
	assert.Contains(t, out.String(), "Allowed configuration arguments:")
	assert.Contains(t, out.String(), "Required configuration section corpus is absent")
	assert.NotContains(t, out.String(), "ERROR")

	out.Reset()
	cli.Report(&out, nil, err)
	assert.Contains(t, out.String(), "Configuration Problems:")
}
