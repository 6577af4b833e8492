package model

// Helpers for decoding metadata maps, the in-memory wire format consumed from
// an external metadata loader. Unknown keys are ignored so loaders can carry
// extra annotations without breaking construction.

func baseFromMap(md map[string]any, kind string) (AttributeBase, error) {
	name, err := mdString(md, "name")
	if err != nil {
		return AttributeBase{}, err
	}
	if name == "" {
		return AttributeBase{}, inconsistencyf("%s has no name", kind)
	}

	label, err := mdString(md, "label")
	if err != nil {
		return AttributeBase{}, err
	}
	description, err := mdString(md, "description")
	if err != nil {
		return AttributeBase{}, err
	}
	format, err := mdString(md, "format")
	if err != nil {
		return AttributeBase{}, err
	}
	orderStr, err := mdString(md, "order")
	if err != nil {
		return AttributeBase{}, err
	}
	order, err := ParseOrder(orderStr)
	if err != nil {
		return AttributeBase{}, err
	}
	info, err := mdMap(md, "info")
	if err != nil {
		return AttributeBase{}, err
	}

	return AttributeBase{
		Name:        name,
		Label:       label,
		Description: description,
		Format:      format,
		Order:       order,
		Info:        info,
	}, nil
}

func mdString(md map[string]any, key string) (string, error) {
	v, ok := md[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", argumentf("metadata key %q should be a string, got %T", key, v)
	}
	return s, nil
}

func mdStringList(md map[string]any, key string) ([]string, error) {
	v, ok := md[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch list := v.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, argumentf("metadata key %q should be a list of strings, got element %T",
					key, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, argumentf("metadata key %q should be a list of strings, got %T", key, v)
	}
}

func mdMap(md map[string]any, key string) (map[string]any, error) {
	v, ok := md[key]
	if !ok || v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, argumentf("metadata key %q should be a mapping, got %T", key, v)
	}
	return m, nil
}

// cloneInfo deep copies an opaque payload map so clones never alias nested
// containers of the original.
func cloneInfo(info map[string]any) map[string]any {
	if info == nil {
		return nil
	}
	out := make(map[string]any, len(info))
	for k, v := range info {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneInfo(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	}
	return v
}

func cloneJoins(joins []map[string]any) []map[string]any {
	if joins == nil {
		return nil
	}
	out := make([]map[string]any, len(joins))
	for i, join := range joins {
		out[i] = cloneInfo(join)
	}
	return out
}
