package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
)

// ConfigExt is appended to configuration names when searching for
// configuration files.
const ConfigExt = ".conf"

// CandidatePaths returns the locations searched for the configuration
// name, ordered by priority:
//
//	<name>.conf
//	<home>/.<name>.conf
//	<name>
//	<home>/.<name>
func CandidatePaths(name, home string) []string {
	return []string{
		name + ConfigExt,
		filepath.Join(home, "."+name+ConfigExt),
		name,
		filepath.Join(home, "."+name),
	}
}

// LoadFirst deserializes the first of paths that exists and can be
// opened. If none of them can be used a *NotFoundError is returned.
// A file that exists but cannot be parsed stops the search.
func LoadFirst(fs afero.Fs, paths []string) (*Store, error) {
	var attempts *multierror.Error

	for _, path := range paths {
		f, err := openRegular(fs, path)
		if err != nil {
			attempts = multierror.Append(attempts, fmt.Errorf("%s: %w", path, err))
			continue
		}

		store, err := readAndClose(path, f)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	return nil, &NotFoundError{
		Paths:    paths,
		Attempts: attempts,
	}
}

func openRegular(fs afero.Fs, path string) (afero.File, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: is a directory", os.ErrInvalid)
	}

	return fs.Open(path)
}

func readAndClose(path string, f afero.File) (*Store, error) {
	defer f.Close()
	return Deserialize(path, f)
}
