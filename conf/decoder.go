package conf

import (
	"fmt"
	"reflect"
	"unicode"
)

// DecodeSection decodes the options of section into target which must
// be a pointer to a struct. Fields are matched by their lower-cased
// name or by an `option:"name"` tag; `option:"-"` skips a field.
// Supported field types are string, *string and []string. A []string
// field receives the value split by SplitValues. Options that are not
// set leave their field untouched.
func (s *Store) DecodeSection(section string, target interface{}) error {
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("target must be a non-nil pointer to a %s", reflect.Struct)
	}

	sec := s.sections.Get(section)
	if sec == nil {
		return fmt.Errorf("%s: %w", section, ErrSectionNotExists)
	}

	return decodeSectionToStruct(*sec, reflect.Indirect(val))
}

func decodeSectionToStruct(section Section, outVal reflect.Value) error {
	if outVal.Kind() != reflect.Struct {
		return fmt.Errorf("target must be of type %s", reflect.Struct)
	}

	for i := 0; i < outVal.NumField(); i++ {
		fieldType := outVal.Type().Field(i)
		name := fieldType.Name

		// Skip unexported struct fields.
		if !unicode.IsUpper([]rune(name)[0]) {
			continue
		}

		// options may also be decoded into embedded structs.
		if fieldType.Anonymous && fieldType.Type.Kind() == reflect.Struct {
			if err := decodeSectionToStruct(section, outVal.Field(i)); err != nil {
				return fmt.Errorf("failed to decode into anonymous field %s: %w", name, err)
			}
			continue
		}

		if optionValue, ok := fieldType.Tag.Lookup("option"); ok && optionValue != "" {
			name = optionValue
			if name == "-" {
				continue
			}
		}

		opt := section.Options.Get(name)
		if opt == nil {
			continue
		}

		if err := decode(opt.Value, outVal.Field(i)); err != nil {
			return fmt.Errorf("failed to decode %s.%s into field %s: %w", section.Name, opt.Name, fieldType.Name, err)
		}
	}

	return nil
}

func decode(data string, outVal reflect.Value) error {
	switch outVal.Kind() {
	case reflect.String:
		outVal.SetString(data)
		return nil

	case reflect.Ptr:
		if outVal.Type().Elem().Kind() != reflect.String {
			break
		}
		ptr := reflect.New(outVal.Type().Elem())
		ptr.Elem().SetString(data)
		outVal.Set(ptr)
		return nil

	case reflect.Slice:
		if outVal.Type().Elem().Kind() != reflect.String {
			break
		}
		values := SplitValues(data)
		sliceVal := reflect.MakeSlice(outVal.Type(), len(values), len(values))
		for idx, v := range values {
			sliceVal.Index(idx).SetString(v)
		}
		outVal.Set(sliceVal)
		return nil
	}

	return fmt.Errorf("unsupported type: %s", outVal.Type())
}
