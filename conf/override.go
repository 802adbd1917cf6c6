package conf

import "strings"

// Override is a single section.option=value setting given on the
// command line.
type Override struct {
	Section string
	Option  string
	Value   string
}

// Overrides is an ordered set of overrides. Each (section, option)
// pair appears at most once.
type Overrides []Override

// Get returns the value set for section and option.
func (ov Overrides) Get(section, option string) (string, bool) {
	option = normalizeOption(option)
	for _, o := range ov {
		if o.Section == section && o.Option == option {
			return o.Value, true
		}
	}
	return "", false
}

// IsOverride returns true if arg looks like an override token, that is,
// it contains a dot followed by an equal sign.
func IsOverride(arg string) bool {
	dot := strings.Index(arg, ".")
	eq := strings.Index(arg, "=")
	return dot >= 0 && eq >= 0 && dot < eq
}

// ParseOverrides parses tokens in the form section.option=value. If the
// same option is given more than once the last value wins. The first
// malformed token aborts parsing with an *OverrideError.
func ParseOverrides(tokens []string) (Overrides, error) {
	var res Overrides

	for _, token := range tokens {
		o, err := parseOverride(token)
		if err != nil {
			return nil, err
		}

		replaced := false
		for idx := range res {
			if res[idx].Section == o.Section && res[idx].Option == o.Option {
				res[idx].Value = o.Value
				replaced = true
				break
			}
		}
		if !replaced {
			res = append(res, o)
		}
	}

	return res, nil
}

func parseOverride(token string) (Override, error) {
	parts := strings.Split(token, "=")
	if len(parts) != 2 {
		return Override{}, &OverrideError{Token: token}
	}

	key := strings.Split(parts[0], ".")
	if len(key) != 2 || key[0] == "" || key[1] == "" {
		return Override{}, &OverrideError{Token: token}
	}

	return Override{
		Section: key[0],
		Option:  normalizeOption(key[1]),
		Value:   parts[1],
	}, nil
}
