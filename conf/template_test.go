package conf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddSection("corpus"))
	require.NoError(t, s.Set("corpus", "root", "/home/user/corpora"))
	require.NoError(t, s.Set("corpus", "data_in", "%(root)s/ontonotes/data"))
	require.NoError(t, s.Set("corpus", "data_out", "%(DATA_IN)s/out"))
	require.NoError(t, s.Set("corpus", "ratio", "50%% of %(root)s"))

	cases := []struct {
		Option string
		Value  string
	}{
		{"root", "/home/user/corpora"},
		{"data_in", "/home/user/corpora/ontonotes/data"},
		{"data_out", "/home/user/corpora/ontonotes/data/out"},
		{"ratio", "50% of /home/user/corpora"},
	}

	for _, c := range cases {
		val, err := s.Expand("corpus", c.Option)
		assert.NoErrorf(t, err, c.Option)
		assert.Equalf(t, c.Value, val, c.Option)
	}

	// Get returns raw values.
	raw, err := s.Get("corpus", "data_in")
	assert.NoError(t, err)
	assert.Equal(t, "%(root)s/ontonotes/data", raw)
}

func TestExpandErrors(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddSection("loop"))
	require.NoError(t, s.Set("loop", "a", "%(b)s"))
	require.NoError(t, s.Set("loop", "b", "%(a)s"))
	require.NoError(t, s.Set("loop", "c", "%(missing)s"))

	_, err := s.Expand("loop", "a")
	assert.True(t, errors.Is(err, ErrInterpolationDepth))

	_, err = s.Expand("loop", "c")
	assert.True(t, errors.Is(err, ErrInterpolationKey))

	_, err = s.Expand("loop", "unset")
	assert.True(t, errors.Is(err, ErrOptionNotSet))
}
