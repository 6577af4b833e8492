package model

import "strings"

// Hierarchy is an ordered path of levels within a dimension, enabling
// drill-down and roll-up navigation.
type Hierarchy struct {
	Name  string
	Label string
	Info  map[string]any

	levels    []*Level
	dimension *Dimension
}

// HierarchySpec describes a hierarchy to construct. Levels are level names
// resolved against the owning dimension.
type HierarchySpec struct {
	Name   string
	Label  string
	Info   map[string]any
	Levels []string
}

// newHierarchy builds a hierarchy over resolved levels. The level list must
// not be empty.
func newHierarchy(name string, levels []*Level, dimension *Dimension) (*Hierarchy, error) {
	if len(levels) == 0 {
		return nil, inconsistencyf("level list of hierarchy %q should not be empty", name)
	}
	return &Hierarchy{Name: name, levels: levels, dimension: dimension}, nil
}

// Dimension returns the dimension the hierarchy belongs to.
func (h *Hierarchy) Dimension() *Dimension {
	return h.dimension
}

// Levels returns the ordered levels of the hierarchy.
func (h *Hierarchy) Levels() []*Level {
	return h.levels
}

// Len returns the number of levels in the hierarchy.
func (h *Hierarchy) Len() int {
	return len(h.levels)
}

// Contains reports whether the hierarchy has a level with the given name.
func (h *Hierarchy) Contains(name string) bool {
	for _, level := range h.levels {
		if level.Name == name {
			return true
		}
	}
	return false
}

// LevelIndex returns the order index of the named level, usable for ordering
// and comparing levels within the hierarchy.
func (h *Hierarchy) LevelIndex(name string) (int, error) {
	for i, level := range h.levels {
		if level.Name == name {
			return i, nil
		}
	}
	return 0, hierarchyf("level %q is not part of hierarchy %q", name, h.Name)
}

// NextLevel returns the level after the named one, or nil when the named
// level is the last. An empty name returns the first level.
func (h *Hierarchy) NextLevel(name string) (*Level, error) {
	if name == "" {
		return h.levels[0], nil
	}
	i, err := h.LevelIndex(name)
	if err != nil {
		return nil, err
	}
	if i+1 >= len(h.levels) {
		return nil, nil
	}
	return h.levels[i+1], nil
}

// PreviousLevel returns the level before the named one, or nil when the
// named level is the first or the name is empty.
func (h *Hierarchy) PreviousLevel(name string) (*Level, error) {
	if name == "" {
		return nil, nil
	}
	i, err := h.LevelIndex(name)
	if err != nil {
		return nil, err
	}
	if i == 0 {
		return nil, nil
	}
	return h.levels[i-1], nil
}

// IsLast reports whether the named level is the deepest level of the
// hierarchy.
func (h *Hierarchy) IsLast(name string) bool {
	return len(h.levels) > 0 && h.levels[len(h.levels)-1].Name == name
}

// LevelsForPath returns the levels covering the given path. With drilldown
// one more level is included for the next drill-down step.
func (h *Hierarchy) LevelsForPath(path []string, drilldown bool) ([]*Level, error) {
	return h.LevelsForDepth(len(path), drilldown)
}

// LevelsForDepth returns the first depth levels. With drilldown one more
// level is included. Fails when the requested depth exceeds the hierarchy.
func (h *Hierarchy) LevelsForDepth(depth int, drilldown bool) ([]*Level, error) {
	extend := 0
	if drilldown {
		extend = 1
	}
	if depth+extend > len(h.levels) {
		return nil, hierarchyf("depth %d is deeper than hierarchy levels %s (drilldown: %v)",
			depth, strings.Join(h.levelNames(), ", "), drilldown)
	}
	return h.levels[:depth+extend], nil
}

// RollUp rolls the path up to the named level, or one level up when no level
// is named. Fails when the named level is deeper than the deepest element of
// the path.
func (h *Hierarchy) RollUp(path []string, level string) ([]string, error) {
	if level != "" {
		i, err := h.LevelIndex(level)
		if err != nil {
			return nil, err
		}
		last := i + 1
		if last > len(path) {
			return nil, hierarchyf("cannot roll up: level %q in dimension %q is deeper than deepest element of path %v",
				level, h.dimensionName(), path)
		}
		return path[:last], nil
	}
	if len(path) == 0 {
		return nil, nil
	}
	return path[:len(path)-1], nil
}

// PathIsBase reports whether the path is a base path: one with no more
// levels to drill down to.
func (h *Hierarchy) PathIsBase(path []string) bool {
	return len(path) == len(h.levels)
}

// KeyAttributes returns the key attributes of all levels, in hierarchy
// order.
func (h *Hierarchy) KeyAttributes() []*Attribute {
	keys := make([]*Attribute, 0, len(h.levels))
	for _, level := range h.levels {
		keys = append(keys, level.Key())
	}
	return keys
}

// AllAttributes returns the attributes of all levels as a single list, in
// hierarchy order.
func (h *Hierarchy) AllAttributes() []*Attribute {
	var attributes []*Attribute
	for _, level := range h.levels {
		attributes = append(attributes, level.Attributes...)
	}
	return attributes
}

// ToDict returns the dictionary representation of the hierarchy. Levels are
// written as names.
func (h *Hierarchy) ToDict(opts DictOptions) Dict {
	d := Dict{}
	d.set("name", h.Name)
	d.set("levels", h.levelNames())
	d.set("info", h.Info)
	d.setLabel(h.Label, h.Name, opts)
	return d
}

func (h *Hierarchy) levelNames() []string {
	names := make([]string, 0, len(h.levels))
	for _, level := range h.levels {
		names = append(names, level.Name)
	}
	return names
}

func (h *Hierarchy) dimensionName() string {
	if h.dimension == nil {
		return ""
	}
	return h.dimension.Name
}

func (h *Hierarchy) spec() HierarchySpec {
	return HierarchySpec{
		Name:   h.Name,
		Label:  h.Label,
		Info:   cloneInfo(h.Info),
		Levels: h.levelNames(),
	}
}
