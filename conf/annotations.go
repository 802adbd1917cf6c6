package conf

type (
	// KeyValue is a single annotation.
	KeyValue struct {
		Key   string
		Value interface{}
	}

	// Annotation holds free-form metadata of an OptionSpec. It is
	// carried through declarations files and may be used by
	// documentation generators.
	Annotation map[string]interface{}
)

// secretAnnotation marks options whose values must not be printed.
const secretAnnotation = "confreg/secret"

// maskedValue replaces the value of secret options in dumps and
// problem reports.
const maskedValue = "********"

// With adds one or more annotation key-value pairs.
func (an *Annotation) With(kvs ...KeyValue) Annotation {
	if *an == nil {
		*an = Annotation{}
	}
	for _, kv := range kvs {
		(*an)[kv.Key] = kv.Value
	}
	return *an
}

// Bool returns the annotation key as a boolean. Missing keys and
// non-boolean values are false.
func (an Annotation) Bool(key string) bool {
	b, _ := an[key].(bool)
	return b
}

// SecretValue marks an option as secret. Values of secret options
// are masked by WriteMasked and in validation problems.
func SecretValue() KeyValue {
	return KeyValue{
		Key:   secretAnnotation,
		Value: true,
	}
}

// IsSecret returns true if spec is annotated as a secret.
func IsSecret(spec OptionSpec) bool {
	return spec.Annotations.Bool(secretAnnotation)
}
