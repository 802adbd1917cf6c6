package conf

import (
	"io"
	"strings"
)

const dynamicNote = "note: other dynamically generated config options may be used"

// RenderDocs returns a human readable description of every declaration
// in r. Sections and options are sorted by name so the output is stable.
func (r *Registry) RenderDocs() string {
	lines := []string{"", "Allowed configuration arguments:"}

	required := make(map[string]bool)
	for _, name := range r.RequiredSections() {
		required[name] = true
	}

	for _, section := range r.Sections() {
		header := "   Section " + section + ":"
		if required[section] {
			header += " (required)"
		}
		lines = append(lines, header)

		for _, spec := range r.sections[section].sorted() {
			name := spec.Name
			if spec.IsDynamic() {
				name = dynamicNote
			}
			if spec.Required {
				name += " (required)"
			}
			lines = append(lines, "      "+name)

			if spec.Description != "" {
				lines = append(lines, "         "+spec.Description)
			}

			if len(spec.AllowedValues) > 0 {
				if spec.AllowMultiple {
					lines = append(lines, "         may be one or more of:")
				} else {
					lines = append(lines, "         may be one of:")
				}
				for _, v := range spec.AllowedValues {
					lines = append(lines, "            "+v)
				}
			}
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// WriteDocs writes RenderDocs to w.
func (r *Registry) WriteDocs(w io.Writer) error {
	_, err := io.WriteString(w, r.RenderDocs()+"\n")
	return err
}
