package conf_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/ppacher/confreg/conf"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corpusRegistry() *conf.Registry {
	reg := conf.NewRegistry()
	reg.Register("corpus", conf.OptionSpec{
		Name:            "load",
		AllowedValues:   []string{"english-mz", "chinese-mz"},
		Description:     "The corpus to load.",
		Required:        true,
		SectionRequired: true,
	})
	reg.Register("corpus", conf.OptionSpec{Name: "data_in"})
	return reg
}

func newTestLoader(fs afero.Fs, opts ...conf.LoaderOption) (*conf.Loader, *bytes.Buffer) {
	out := new(bytes.Buffer)
	opts = append([]conf.LoaderOption{
		conf.WithFs(fs),
		conf.WithHomeDir("/home/user"),
		conf.WithOutput(out),
		conf.WithLogger(log.NewWithOptions(out, log.Options{Level: log.DebugLevel})),
	}, opts...)
	return conf.NewLoader(corpusRegistry(), opts...), out
}

func TestCandidatePaths(t *testing.T) {
	assert.Equal(t, []string{
		"ontonotes.conf",
		"/home/user/.ontonotes.conf",
		"ontonotes",
		"/home/user/.ontonotes",
	}, conf.CandidatePaths("ontonotes", "/home/user"))
}

func TestLoaderCandidatePrecedence(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/home/user/.ontonotes.conf", []byte("[corpus]\nload = chinese-mz\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "ontonotes", []byte("[corpus]\nload = english-mz\n"), 0644))

	l, _ := newTestLoader(fs)
	s, err := l.Load("ontonotes", nil)
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.ontonotes.conf", s.Path())

	val, err := s.Get("corpus", "load")
	assert.NoError(t, err)
	assert.Equal(t, "chinese-mz", val)

	require.NoError(t, afero.WriteFile(fs, "ontonotes.conf", []byte("[corpus]\nload = english-mz\n"), 0644))
	s, err = l.Load("ontonotes", nil)
	require.NoError(t, err)
	assert.Equal(t, "ontonotes.conf", s.Path())
}

func TestLoaderSkipsDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("ontonotes.conf", 0755))
	require.NoError(t, afero.WriteFile(fs, "ontonotes", []byte("[corpus]\nload = english-mz\n"), 0644))

	l, _ := newTestLoader(fs)
	s, err := l.Load("ontonotes", nil)
	require.NoError(t, err)
	assert.Equal(t, "ontonotes", s.Path())
}

func TestLoaderNotFound(t *testing.T) {
	l, _ := newTestLoader(afero.NewMemMapFs())

	_, err := l.Load("ontonotes", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, conf.ErrConfigNotFound))

	var nerr *conf.NotFoundError
	require.True(t, errors.As(err, &nerr))
	assert.Len(t, nerr.Paths, 4)
	assert.Equal(t, strings.Join([]string{
		"Couldn't find config file.  Looked in:",
		" - ontonotes.conf",
		" - /home/user/.ontonotes.conf",
		" - ontonotes",
		" - /home/user/.ontonotes",
		"to no avail.",
	}, "\n"), err.Error())
}

func TestLoaderOverrides(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "ontonotes.conf", []byte("[corpus]\nload = chinese-mz\ndata_in = /data\n"), 0644))

	l, _ := newTestLoader(fs)
	s, err := l.Load("ontonotes", []string{"corpus.load=english-mz"})
	require.NoError(t, err)

	val, err := s.Get("corpus", "load")
	assert.NoError(t, err)
	assert.Equal(t, "english-mz", val)

	val, err = s.Get("corpus", "data_in")
	assert.NoError(t, err)
	assert.Equal(t, "/data", val)
}

func TestLoaderOverridesOnly(t *testing.T) {
	l, _ := newTestLoader(afero.NewMemMapFs())

	s, err := l.Load("", []string{"corpus.load=english-mz"})
	require.NoError(t, err)
	val, err := s.Get("corpus", "load")
	assert.NoError(t, err)
	assert.Equal(t, "english-mz", val)

	_, err = l.Load("", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, conf.ErrValidation))
	assert.Contains(t, err.Error(), "Required configuration section corpus is absent")
}

func TestLoaderMalformedOverride(t *testing.T) {
	// the file system is never consulted for malformed tokens.
	l, _ := newTestLoader(afero.NewReadOnlyFs(afero.NewMemMapFs()))

	_, err := l.Load("ontonotes", []string{"corpus.load=english-mz", "badtoken"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, conf.ErrMalformedOverride))
	assert.False(t, errors.Is(err, conf.ErrConfigNotFound))
	assert.Contains(t, err.Error(), "badtoken")
}

func TestLoaderEnvPrecedence(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "ontonotes.conf", []byte("[corpus]\nload = chinese-mz\ndata_in = /file\n"), 0644))

	environ := func() []string {
		return []string{
			"ONTO_CORPUS_LOAD=english-mz",
			"ONTO_CORPUS_DATA_IN=/env",
		}
	}

	l, _ := newTestLoader(fs, conf.WithEnv("ONTO", environ))
	s, err := l.Load("ontonotes", []string{"corpus.data_in=/cli"})
	require.NoError(t, err)

	val, _ := s.Get("corpus", "load")
	assert.Equal(t, "english-mz", val)

	val, _ = s.Get("corpus", "data_in")
	assert.Equal(t, "/cli", val)
}

func TestLoaderUnknownSection(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "ontonotes.conf", []byte("[corpus]\nload = english-mz\n[future]\nanything = goes\n"), 0644))

	l, out := newTestLoader(fs)
	s, err := l.Load("ontonotes", nil)
	require.NoError(t, err)
	assert.True(t, s.HasSection("future"))
	assert.Contains(t, out.String(), "Ignoring unknown configuration section")
	assert.Contains(t, out.String(), "future")
}

func TestLoaderParseErrorStopsSearch(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "ontonotes.conf", []byte("garbage\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "ontonotes", []byte("[corpus]\nload = english-mz\n"), 0644))

	l, _ := newTestLoader(fs)
	_, err := l.Load("ontonotes", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, conf.ErrMissingSection))
}

func TestLoaderReport(t *testing.T) {
	l, out := newTestLoader(afero.NewMemMapFs())

	_, err := l.Load("", []string{"corpus.load=german-mz", "corpus.typo=1"})
	require.Error(t, err)

	out.Reset()
	require.NoError(t, l.Report(err))

	report := out.String()
	assert.True(t, strings.HasPrefix(report, "\nAllowed configuration arguments:\n"))
	assert.Contains(t, report, "   Section corpus: (required)")
	assert.Contains(t, report, "Configuration Problems:")
	assert.Contains(t, report, "  Illegal value 'german-mz' for configuration variable corpus.load.  Permitted values are: 'english-mz', 'chinese-mz'")
	assert.Contains(t, report, "  Unknown configuration variable corpus.typo")

	out.Reset()
	require.NoError(t, l.Report(&conf.NotFoundError{Paths: []string{"x"}}))
	assert.NotContains(t, out.String(), "Allowed configuration arguments:")

	out.Reset()
	var other bytes.Buffer
	require.NoError(t, l.ReportTo(&other, err))
	assert.Empty(t, out.String())
	assert.Contains(t, other.String(), "Configuration Problems:")

	assert.Error(t, l.ReportTo(failingWriter{}, err))
	assert.Error(t, l.ReportTo(failingWriter{}, errors.New("plain")))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}
