package model

import (
	"maps"

	"gopkg.in/yaml.v3"
)

// EntityTranslation carries the localized label and description of a single
// model entity. In YAML form a bare string is accepted as a label-only
// shorthand:
//
//	attributes:
//	  year: rok
//	  month: {label: mesiac, description: mesiac v roku}
type EntityTranslation struct {
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
}

// UnmarshalYAML accepts either a bare string (label shorthand) or a mapping
// with label and description keys.
func (t *EntityTranslation) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var label string
		if err := value.Decode(&label); err != nil {
			return err
		}
		t.Label = label
		t.Description = ""
		return nil
	}
	type plain EntityTranslation
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*t = EntityTranslation(p)
	return nil
}

// CubeTranslation localizes a cube and its measures, aggregates and details,
// keyed by attribute name.
type CubeTranslation struct {
	Label       string                       `yaml:"label"`
	Description string                       `yaml:"description"`
	Measures    map[string]EntityTranslation `yaml:"measures"`
	Aggregates  map[string]EntityTranslation `yaml:"aggregates"`
	Details     map[string]EntityTranslation `yaml:"details"`
}

// DimensionTranslation localizes a dimension and its attributes, levels and
// hierarchies, keyed by sub-entity name.
type DimensionTranslation struct {
	Label       string                       `yaml:"label"`
	Description string                       `yaml:"description"`
	Attributes  map[string]EntityTranslation `yaml:"attributes"`
	Levels      map[string]EntityTranslation `yaml:"levels"`
	Hierarchies map[string]EntityTranslation `yaml:"hierarchies"`
}

// Translation is a full model translation, keyed by cube and dimension name.
type Translation struct {
	// Locale identifies the locale the translation produces. It is required.
	Locale      string                          `yaml:"locale"`
	Label       string                          `yaml:"label"`
	Description string                          `yaml:"description"`
	Cubes       map[string]CubeTranslation      `yaml:"cubes"`
	Dimensions  map[string]DimensionTranslation `yaml:"dimensions"`
}

// Localize returns a localized copy of the model. The receiver is deep
// copied and never mutated; labels and descriptions of the copy are
// overwritten from the translation. The translation must carry a locale.
func (m *Model) Localize(t Translation) (*Model, error) {
	if t.Locale == "" {
		return nil, argumentf("no locale specified in model translation")
	}

	clone, err := m.Clone()
	if err != nil {
		return nil, err
	}
	clone.Locale = t.Locale
	applyTranslation(&clone.Label, &clone.Description, t.Label, t.Description)

	for name, ct := range t.Cubes {
		cube, err := clone.Cube(name)
		if err != nil {
			return nil, err
		}
		cube.localize(ct)
	}
	for name, dt := range t.Dimensions {
		dim, err := clone.Dimension(name)
		if err != nil {
			return nil, err
		}
		dim.localize(dt)
	}
	return clone, nil
}

// LocalizeLocale localizes the model using the named translation from the
// model's translation registry.
func (m *Model) LocalizeLocale(locale string) (*Model, error) {
	t, ok := m.Translations[locale]
	if !ok {
		return nil, notFoundf("model has no translation for %q", locale)
	}
	if t.Locale == "" {
		t.Locale = locale
	}
	return m.Localize(t)
}

func (t Translation) clone() Translation {
	out := t
	if t.Cubes != nil {
		out.Cubes = make(map[string]CubeTranslation, len(t.Cubes))
		for name, ct := range t.Cubes {
			ct.Measures = maps.Clone(ct.Measures)
			ct.Aggregates = maps.Clone(ct.Aggregates)
			ct.Details = maps.Clone(ct.Details)
			out.Cubes[name] = ct
		}
	}
	if t.Dimensions != nil {
		out.Dimensions = make(map[string]DimensionTranslation, len(t.Dimensions))
		for name, dt := range t.Dimensions {
			dt.Attributes = maps.Clone(dt.Attributes)
			dt.Levels = maps.Clone(dt.Levels)
			dt.Hierarchies = maps.Clone(dt.Hierarchies)
			out.Dimensions[name] = dt
		}
	}
	return out
}

func cloneTranslations(src map[string]Translation) map[string]Translation {
	if src == nil {
		return nil
	}
	out := make(map[string]Translation, len(src))
	for locale, t := range src {
		out[locale] = t.clone()
	}
	return out
}

func (c *Cube) localize(t CubeTranslation) {
	applyTranslation(&c.Label, &c.Description, t.Label, t.Description)

	for _, measure := range c.measures {
		if et, ok := t.Measures[measure.Name]; ok {
			applyEntityTranslation(&measure.AttributeBase, et)
		}
	}
	for _, aggregate := range c.aggregates {
		if et, ok := t.Aggregates[aggregate.Name]; ok {
			applyEntityTranslation(&aggregate.AttributeBase, et)
		}
	}
	for _, detail := range c.details {
		if et, ok := t.Details[detail.Name]; ok {
			applyEntityTranslation(&detail.AttributeBase, et)
		}
	}
}

func (d *Dimension) localize(t DimensionTranslation) {
	applyTranslation(&d.Label, &d.Description, t.Label, t.Description)

	for _, attr := range d.AllAttributes() {
		if et, ok := t.Attributes[attr.Name]; ok {
			applyEntityTranslation(&attr.AttributeBase, et)
		}
	}
	for _, level := range d.levels {
		if et, ok := t.Levels[level.Name]; ok && et.Label != "" {
			level.Label = et.Label
		}
	}
	for _, hier := range d.hierarchies {
		if et, ok := t.Hierarchies[hier.Name]; ok && et.Label != "" {
			hier.Label = et.Label
		}
	}
}

func applyEntityTranslation(base *AttributeBase, t EntityTranslation) {
	applyTranslation(&base.Label, &base.Description, t.Label, t.Description)
}

func applyTranslation(label, description *string, newLabel, newDescription string) {
	if newLabel != "" {
		*label = newLabel
	}
	if newDescription != "" {
		*description = newDescription
	}
}

// LocalizableDictionary exports the localizable subset of the model,
// mirroring the translation key structure: label and description at each
// layer, cubes and dimensions keyed by name.
func (m *Model) LocalizableDictionary() Dict {
	out := localizableCommon(m.Label, m.Description)

	cubes := Dict{}
	for _, cube := range m.cubes {
		cubes[cube.Name] = cube.LocalizableDictionary()
	}
	out["cubes"] = cubes

	dims := Dict{}
	for _, dim := range m.dimensions {
		dims[dim.Name] = dim.LocalizableDictionary()
	}
	out["dimensions"] = dims
	return out
}

// LocalizableDictionary exports the localizable subset of the cube.
func (c *Cube) LocalizableDictionary() Dict {
	out := localizableCommon(c.Label, c.Description)

	measures := Dict{}
	for _, measure := range c.measures {
		measures[measure.Name] = localizableCommon(measure.Label, measure.Description)
	}
	out["measures"] = measures

	aggregates := Dict{}
	for _, aggregate := range c.aggregates {
		aggregates[aggregate.Name] = localizableCommon(aggregate.Label, aggregate.Description)
	}
	out["aggregates"] = aggregates

	details := Dict{}
	for _, detail := range c.details {
		details[detail.Name] = localizableCommon(detail.Label, detail.Description)
	}
	out["details"] = details
	return out
}

// LocalizableDictionary exports the localizable subset of the dimension.
func (d *Dimension) LocalizableDictionary() Dict {
	out := localizableCommon(d.Label, d.Description)

	attributes := Dict{}
	for _, attr := range d.AllAttributes() {
		attributes[attr.Name] = localizableCommon(attr.Label, attr.Description)
	}
	out["attributes"] = attributes

	levels := Dict{}
	for _, level := range d.levels {
		levels[level.Name] = localizableCommon(level.Label, "")
	}
	out["levels"] = levels

	hierarchies := Dict{}
	for _, hier := range d.hierarchies {
		hierarchies[hier.Name] = localizableCommon(hier.Label, "")
	}
	out["hierarchies"] = hierarchies
	return out
}

func localizableCommon(label, description string) Dict {
	out := Dict{}
	out.set("label", label)
	out.set("description", description)
	return out
}
