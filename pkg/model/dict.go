package model

import "strings"

// Dict is a plain nested dictionary representation of a model entity,
// suitable for handing to a front-end or API layer.
type Dict map[string]any

// DictOptions controls how entities serialize themselves into a Dict.
type DictOptions struct {
	// CreateLabel synthesizes a human readable label from the entity name
	// when no explicit label is set.
	CreateLabel bool
	// FullAttributeNames writes attribute references qualified with the
	// dimension name instead of bare attribute names.
	FullAttributeNames bool
	// ExpandDimensions inlines the full dimension dictionaries in cube output
	// instead of name-only references.
	ExpandDimensions bool
	// WithMappings includes the backend physical fields: mappings, joins,
	// fact table and browser options. Leave unset for dictionaries served to
	// user interfaces.
	WithMappings bool
}

// set stores a value in the dictionary, skipping empty values so the output
// stays free of nulls and empty containers.
func (d Dict) set(key string, value any) {
	switch v := value.(type) {
	case nil:
		return
	case string:
		if v == "" {
			return
		}
	case []string:
		if len(v) == 0 {
			return
		}
	case []any:
		if len(v) == 0 {
			return
		}
	case []Dict:
		if len(v) == 0 {
			return
		}
	case map[string]any:
		if len(v) == 0 {
			return
		}
	case Dict:
		if len(v) == 0 {
			return
		}
	}
	d[key] = value
}

// setLabel writes the label key, synthesizing it from name when the
// CreateLabel option is set and no explicit label exists.
func (d Dict) setLabel(label, name string, opts DictOptions) {
	if opts.CreateLabel && label == "" {
		label = toLabel(name)
	}
	d.set("label", label)
}

// toLabel derives a human readable label from an identifier: underscores
// become spaces and the first letter is capitalized.
func toLabel(name string) string {
	label := strings.ReplaceAll(name, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
