package conf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
)

// ParseFromEnv collects overrides from environment variables in the
// form PREFIX_SECTION_OPTION=value. Only sections declared in reg are
// considered, other variables are skipped. Section names are matched
// case-insensitively with dashes written as underscores; if more than
// one section matches, the longest one wins. The option name is the
// lower-cased remainder of the variable name.
//
// If environ is nil os.Environ is used.
func ParseFromEnv(prefix string, environ func() []string, reg *Registry) (Overrides, error) {
	prefix = strings.TrimSuffix(prefix, "_") + "_"
	sections := envSections(reg)

	k := koanf.New(".")
	provider := env.Provider(".", env.Opt{
		Prefix:      prefix,
		EnvironFunc: environ,
		TransformFunc: func(key, value string) (string, any) {
			section, option, ok := resolveEnvKey(strings.TrimPrefix(key, prefix), sections)
			if !ok {
				return "", nil
			}
			return section + "." + option, value
		},
	})

	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	var res Overrides
	keyMap := k.KeyMap()
	for _, key := range k.Keys() {
		parts := keyMap[key]
		if len(parts) != 2 {
			continue
		}
		res = append(res, Override{
			Section: parts[0],
			Option:  parts[1],
			Value:   k.String(key),
		})
	}

	return res, nil
}

// envSections returns all registered sections that can be addressed
// by environment variables, longest first.
func envSections(reg *Registry) []string {
	var res []string
	for _, name := range reg.Sections() {
		// dots would collide with the key delimiter.
		if strings.Contains(name, ".") {
			continue
		}
		res = append(res, name)
	}

	sort.SliceStable(res, func(i, j int) bool {
		return len(res[i]) > len(res[j])
	})
	return res
}

func resolveEnvKey(key string, sections []string) (string, string, bool) {
	upper := strings.ToUpper(key)
	for _, section := range sections {
		p := strings.ToUpper(strings.ReplaceAll(section, "-", "_")) + "_"
		if !strings.HasPrefix(upper, p) || len(key) == len(p) {
			continue
		}
		return section, normalizeOption(key[len(p):]), true
	}
	return "", "", false
}
