package model

import (
	"log/slog"

	"github.com/tannatlabs/olap/pkg/logger"
)

// Dimension is a categorical axis of analysis composed of levels and
// hierarchies over them. A dimension owns its levels, hierarchies and
// attributes; cubes and models reference dimensions without owning them.
//
// Dimensions are not meant to be mutated once built. Levels and their
// attributes get the dimension assigned as their back reference during
// construction, so pass cloned levels when building a dimension from another
// one.
type Dimension struct {
	Name        string
	Label       string
	Description string
	Info        map[string]any

	// DefaultHierarchyName names the hierarchy used when none is requested
	// explicitly.
	DefaultHierarchyName string

	log *slog.Logger

	levels         []*Level
	levelIndex     map[string]*Level
	hierarchies    []*Hierarchy
	hierarchyIndex map[string]*Hierarchy

	attrOrder []string
	attrIndex map[string]*Attribute

	// flatHierarchy caches the hierarchy synthesized for a single level
	// dimension without hierarchies.
	flatHierarchy *Hierarchy
}

// DimensionSpec describes a dimension to construct. When no hierarchies are
// given, a "default" hierarchy over all levels in order is created.
type DimensionSpec struct {
	Name                 string
	Label                string
	Description          string
	Info                 map[string]any
	Levels               []*Level
	Hierarchies          []HierarchySpec
	DefaultHierarchyName string
}

// NewDimension builds a dimension from a spec, claiming ownership of the
// given levels. A nil logger discards the advisory log output.
func NewDimension(log *slog.Logger, spec DimensionSpec) (*Dimension, error) {
	if log == nil {
		log = logger.Discard()
	}
	if len(spec.Levels) == 0 {
		return nil, inconsistencyf("no levels specified for dimension %q", spec.Name)
	}

	d := &Dimension{
		Name:                 spec.Name,
		Label:                spec.Label,
		Description:          spec.Description,
		Info:                 spec.Info,
		DefaultHierarchyName: spec.DefaultHierarchyName,
		log:                  log,
		levelIndex:           make(map[string]*Level, len(spec.Levels)),
		hierarchyIndex:       make(map[string]*Hierarchy),
		attrIndex:            make(map[string]*Attribute),
	}

	for _, level := range spec.Levels {
		if level == nil {
			return nil, inconsistencyf("nil level in dimension %q", spec.Name)
		}
		if _, ok := d.levelIndex[level.Name]; ok {
			return nil, inconsistencyf("duplicate level %q in dimension %q", level.Name, spec.Name)
		}
		d.levels = append(d.levels, level)
		d.levelIndex[level.Name] = level
		level.dimension = d
	}

	// Collect attributes across levels and claim them. Duplicate references
	// across levels are left for Validate to report.
	for _, level := range d.levels {
		for _, attr := range level.Attributes {
			if _, ok := d.attrIndex[attr.Name]; !ok {
				d.attrOrder = append(d.attrOrder, attr.Name)
			}
			d.attrIndex[attr.Name] = attr
			attr.dimension = d
		}
	}

	if len(spec.Hierarchies) > 0 {
		for _, hs := range spec.Hierarchies {
			if _, ok := d.hierarchyIndex[hs.Name]; ok {
				return nil, inconsistencyf("duplicate hierarchy %q in dimension %q", hs.Name, spec.Name)
			}
			hier, err := d.buildHierarchy(hs)
			if err != nil {
				return nil, err
			}
			d.hierarchies = append(d.hierarchies, hier)
			d.hierarchyIndex[hier.Name] = hier
		}
	} else {
		hier, err := newHierarchy("default", d.levels, d)
		if err != nil {
			return nil, err
		}
		d.hierarchies = []*Hierarchy{hier}
		d.hierarchyIndex[hier.Name] = hier
	}

	return d, nil
}

func (d *Dimension) buildHierarchy(spec HierarchySpec) (*Hierarchy, error) {
	if len(spec.Levels) == 0 {
		return nil, inconsistencyf("level list of hierarchy %q should not be empty", spec.Name)
	}
	levels := make([]*Level, 0, len(spec.Levels))
	for _, name := range spec.Levels {
		level, err := d.Level(name)
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	hier, err := newHierarchy(spec.Name, levels, d)
	if err != nil {
		return nil, err
	}
	hier.Label = spec.Label
	hier.Info = spec.Info
	return hier, nil
}

// Levels returns the dimension levels in definition order. Use a hierarchy
// for drill-down order.
func (d *Dimension) Levels() []*Level {
	return d.levels
}

// LevelNames returns the level names in definition order.
func (d *Dimension) LevelNames() []string {
	names := make([]string, 0, len(d.levels))
	for _, level := range d.levels {
		names = append(names, level.Name)
	}
	return names
}

// Level returns the level with the given name.
func (d *Dimension) Level(name string) (*Level, error) {
	level, ok := d.levelIndex[name]
	if !ok {
		return nil, notFoundf("no level %q in dimension %q", name, d.Name)
	}
	return level, nil
}

// Hierarchies returns the dimension hierarchies in definition order.
func (d *Dimension) Hierarchies() []*Hierarchy {
	return d.hierarchies
}

// Hierarchy returns the hierarchy with the given name, or the default
// hierarchy when the name is empty.
func (d *Dimension) Hierarchy(name string) (*Hierarchy, error) {
	if name == "" {
		return d.defaultHierarchy()
	}
	hier, ok := d.hierarchyIndex[name]
	if !ok {
		return nil, notFoundf("no hierarchy %q in dimension %q", name, d.Name)
	}
	return hier, nil
}

// DefaultHierarchy returns the dimension's default hierarchy.
//
// Deprecated: use Hierarchy with an empty name instead.
func (d *Dimension) DefaultHierarchy() (*Hierarchy, error) {
	d.log.Warn("Dimension.DefaultHierarchy is deprecated, use Hierarchy instead",
		"dimension", d.Name)
	return d.defaultHierarchy()
}

// defaultHierarchy resolves the default hierarchy: the explicitly named one,
// the hierarchy named "default", the sole hierarchy, or a synthesized and
// cached one over the single level of a flat dimension. Anything else is
// ambiguous and fails.
func (d *Dimension) defaultHierarchy() (*Hierarchy, error) {
	name := d.DefaultHierarchyName
	if name == "" {
		name = "default"
	}
	if hier, ok := d.hierarchyIndex[name]; ok {
		return hier, nil
	}

	if len(d.hierarchies) == 1 {
		return d.hierarchies[0], nil
	}
	if len(d.hierarchies) == 0 {
		switch {
		case len(d.levels) == 1:
			if d.flatHierarchy == nil {
				hier, err := newHierarchy(d.levels[0].Name, d.levels[:1], d)
				if err != nil {
					return nil, err
				}
				d.flatHierarchy = hier
			}
			return d.flatHierarchy, nil
		case len(d.levels) > 1:
			return nil, inconsistencyf("there are no hierarchies in dimension %q and there is more than one level",
				d.Name)
		default:
			return nil, inconsistencyf("there are no hierarchies in dimension %q and there are no levels to make a hierarchy from",
				d.Name)
		}
	}
	return nil, inconsistencyf("no default hierarchy specified in dimension %q and there is more (%d) than one hierarchy defined",
		d.Name, len(d.hierarchies))
}

// Attribute returns the dimension attribute with the given name.
func (d *Dimension) Attribute(name string) (*Attribute, error) {
	attr, ok := d.attrIndex[name]
	if !ok {
		return nil, notFoundf("no attribute %q in dimension %q", name, d.Name)
	}
	return attr, nil
}

// AllAttributes returns all dimension attributes. Order of attributes within
// a level is preserved; use Hierarchy.AllAttributes for hierarchy order.
func (d *Dimension) AllAttributes() []*Attribute {
	attributes := make([]*Attribute, 0, len(d.attrOrder))
	for _, name := range d.attrOrder {
		attributes = append(attributes, d.attrIndex[name])
	}
	return attributes
}

// KeyAttributes returns the key attributes of all levels, in level
// definition order.
func (d *Dimension) KeyAttributes() []*Attribute {
	keys := make([]*Attribute, 0, len(d.levels))
	for _, level := range d.levels {
		keys = append(keys, level.Key())
	}
	return keys
}

// IsFlat reports whether the dimension has exactly one level.
func (d *Dimension) IsFlat() bool {
	return len(d.levels) == 1
}

// HasDetails reports whether any level carries more than one attribute.
func (d *Dimension) HasDetails() bool {
	for _, level := range d.levels {
		if level.HasDetails() {
			return true
		}
	}
	return false
}

// Validate checks the dimension for internal consistency and returns the
// list of diagnostics. See Model.Validate for the severity semantics.
func (d *Dimension) Validate() []Diagnostic {
	var results []Diagnostic

	if len(d.levels) == 0 {
		results = append(results, errorf("no levels in dimension %q", d.Name))
		return results
	}

	if len(d.hierarchies) == 0 {
		if d.IsFlat() {
			results = append(results, defaultf("no hierarchies in dimension %q, flat level %q will be used",
				d.Name, d.levels[0].Name))
		} else {
			results = append(results, errorf("no hierarchies in dimension %q, more than one level exists (%d)",
				d.Name, len(d.levels)))
		}
	} else if d.DefaultHierarchyName == "" {
		if _, ok := d.hierarchyIndex["default"]; len(d.hierarchies) > 1 && !ok {
			results = append(results, errorf("no default hierarchy specified, there is more than one hierarchy in dimension %q",
				d.Name))
		}
	}

	if d.DefaultHierarchyName != "" {
		if _, ok := d.hierarchyIndex[d.DefaultHierarchyName]; !ok {
			results = append(results, errorf("default hierarchy %q does not exist in dimension %q",
				d.DefaultHierarchyName, d.Name))
		}
	}

	seen := map[string]string{} // attribute ref to the level that first defined it
	for _, level := range d.levels {
		if len(level.Attributes) == 0 {
			results = append(results, errorf("level %q in dimension %q has no attributes",
				level.Name, d.Name))
			continue
		}

		if level.KeyName == "" {
			results = append(results, defaultf("level %q in dimension %q has no key attribute specified, first attribute will be used: %q",
				level.Name, d.Name, level.Attributes[0].Name))
		} else if level.lookup(level.KeyName) == nil {
			results = append(results, errorf("key %q in level %q in dimension %q is not in level's attribute list",
				level.KeyName, level.Name, d.Name))
		}

		for _, attr := range level.Attributes {
			if attr == nil {
				results = append(results, errorf("nil attribute in level %q in dimension %q",
					level.Name, d.Name))
				continue
			}

			ref := attr.Ref()
			if first, ok := seen[ref]; ok {
				results = append(results, errorf("duplicate attribute %q in dimension %q level %q (also defined in level %q)",
					attr.Name, d.Name, level.Name, first))
			} else {
				seen[ref] = level.Name
			}

			if attr.dimension != d {
				results = append(results, errorf("dimension (%s) of attribute %q does not match with owning dimension %q",
					attr.dimensionName(), attr.Name, d.Name))
			}
		}
	}

	return results
}

// ToDict returns the dictionary representation of the dimension. The derived
// is_flat and has_details keys are provided for reading convenience and are
// ignored on construction.
func (d *Dimension) ToDict(opts DictOptions) Dict {
	out := Dict{}
	out.set("name", d.Name)
	out.set("info", d.Info)
	out.set("default_hierarchy_name", d.DefaultHierarchyName)
	out.setLabel(d.Label, d.Name, opts)
	out.set("description", d.Description)

	levels := make([]Dict, 0, len(d.levels))
	for _, level := range d.levels {
		levels = append(levels, level.ToDict(opts))
	}
	out.set("levels", levels)

	hierarchies := make([]Dict, 0, len(d.hierarchies))
	for _, hier := range d.hierarchies {
		hierarchies = append(hierarchies, hier.ToDict(opts))
	}
	out.set("hierarchies", hierarchies)

	out["is_flat"] = d.IsFlat()
	out["has_details"] = d.HasDetails()
	return out
}

// Clone returns an independent deep copy of the dimension: levels and
// attributes are cloned and all back references rewired to the copy.
func (d *Dimension) Clone() (*Dimension, error) {
	levels := make([]*Level, 0, len(d.levels))
	for _, level := range d.levels {
		levels = append(levels, level.Clone())
	}
	hierarchies := make([]HierarchySpec, 0, len(d.hierarchies))
	for _, hier := range d.hierarchies {
		hierarchies = append(hierarchies, hier.spec())
	}
	return NewDimension(d.log, DimensionSpec{
		Name:                 d.Name,
		Label:                d.Label,
		Description:          d.Description,
		Info:                 cloneInfo(d.Info),
		Levels:               levels,
		Hierarchies:          hierarchies,
		DefaultHierarchyName: d.DefaultHierarchyName,
	})
}
