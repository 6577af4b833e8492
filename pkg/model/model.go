package model

import (
	"log/slog"

	"github.com/tannatlabs/olap/pkg/logger"
)

// Model is the top level container of cubes and dimensions: the logical
// representation of the data. Dimension names are unique across the whole
// model; a dimension referenced by several cubes is registered once and
// shared.
type Model struct {
	Name        string
	Label       string
	Description string
	Locale      string
	Info        map[string]any

	// Mappings holds model wide logical to physical mappings, carried as
	// opaque data for backends.
	Mappings map[string]any

	// Translations maps locale identifiers to translations applied by
	// LocalizeLocale.
	Translations map[string]Translation

	log *slog.Logger

	dimensions     []*Dimension
	dimensionIndex map[string]*Dimension
	cubes          []*Cube
	cubeIndex      map[string]*Cube
}

// ModelSpec describes a model to construct. Dimensions are registered first,
// then cubes; dimensions referenced by cubes fold into the model's dimension
// set.
type ModelSpec struct {
	Name         string
	Label        string
	Description  string
	Locale       string
	Info         map[string]any
	Mappings     map[string]any
	Dimensions   []*Dimension
	Cubes        []*Cube
	Translations map[string]Translation
}

// NewModel builds a model from a spec. A nil logger discards the advisory
// log output.
func NewModel(log *slog.Logger, spec ModelSpec) (*Model, error) {
	if log == nil {
		log = logger.Discard()
	}

	m := &Model{
		Name:           spec.Name,
		Label:          spec.Label,
		Description:    spec.Description,
		Locale:         spec.Locale,
		Info:           spec.Info,
		Mappings:       spec.Mappings,
		Translations:   spec.Translations,
		log:            log,
		dimensionIndex: make(map[string]*Dimension),
		cubeIndex:      make(map[string]*Cube),
	}

	for _, dim := range spec.Dimensions {
		if err := m.AddDimension(dim); err != nil {
			return nil, err
		}
	}
	for _, cube := range spec.Cubes {
		if err := m.AddCube(cube); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// AddDimension registers a dimension under the model. Registering a second
// dimension under an already taken name fails.
func (m *Model) AddDimension(dim *Dimension) error {
	if dim == nil {
		return inconsistencyf("dimension added to model %q is nil", m.Name)
	}
	if _, ok := m.dimensionIndex[dim.Name]; ok {
		return inconsistencyf("dimension %q already exists in model %q", dim.Name, m.Name)
	}
	m.dimensions = append(m.dimensions, dim)
	m.dimensionIndex[dim.Name] = dim
	return nil
}

// RemoveDimension removes the named dimension from the model.
func (m *Model) RemoveDimension(name string) error {
	if _, ok := m.dimensionIndex[name]; !ok {
		return notFoundf("unknown dimension with name %q in model %q", name, m.Name)
	}
	delete(m.dimensionIndex, name)
	for i, dim := range m.dimensions {
		if dim.Name == name {
			m.dimensions = append(m.dimensions[:i], m.dimensions[i+1:]...)
			break
		}
	}
	return nil
}

// AddCube adds a cube to the model, folding the cube's dimensions into the
// model's dimension set. A cube dimension already registered as the same
// object is shared without duplication; a dimension with the same name but a
// different object fails, since dimension identity is name unique across the
// whole model.
func (m *Model) AddCube(cube *Cube) error {
	if cube == nil {
		return inconsistencyf("cube added to model %q is nil", m.Name)
	}
	if _, ok := m.cubeIndex[cube.Name]; ok {
		return inconsistencyf("cube %q already exists in model %q", cube.Name, m.Name)
	}

	for _, dim := range cube.Dimensions() {
		existing, ok := m.dimensionIndex[dim.Name]
		if !ok {
			if err := m.AddDimension(dim); err != nil {
				return err
			}
			continue
		}
		if existing != dim {
			return inconsistencyf("dimension %q of cube %q has different specification as model's dimension",
				dim.Name, cube.Name)
		}
	}

	m.cubes = append(m.cubes, cube)
	m.cubeIndex[cube.Name] = cube
	return nil
}

// RemoveCube removes the named cube from the model. Dimensions the cube
// referenced stay registered.
func (m *Model) RemoveCube(name string) error {
	if _, ok := m.cubeIndex[name]; !ok {
		return notFoundf("no such cube %q in model %q", name, m.Name)
	}
	delete(m.cubeIndex, name)
	for i, cube := range m.cubes {
		if cube.Name == name {
			m.cubes = append(m.cubes[:i], m.cubes[i+1:]...)
			break
		}
	}
	return nil
}

// Cubes returns the model cubes in registration order.
func (m *Model) Cubes() []*Cube {
	return m.cubes
}

// Cube returns the cube with the given name.
func (m *Model) Cube(name string) (*Cube, error) {
	cube, ok := m.cubeIndex[name]
	if !ok {
		return nil, notFoundf("no such cube %q in model %q", name, m.Name)
	}
	return cube, nil
}

// Dimensions returns the model dimensions in registration order.
func (m *Model) Dimensions() []*Dimension {
	return m.dimensions
}

// Dimension returns the dimension with the given name.
func (m *Model) Dimension(name string) (*Dimension, error) {
	dim, ok := m.dimensionIndex[name]
	if !ok {
		return nil, notFoundf("unknown dimension with name %q in model %q", name, m.Name)
	}
	return dim, nil
}

// Validate checks the model for consistency and returns the ordered list of
// diagnostics. SeverityError findings make the model unusable;
// SeverityWarning and SeverityDefault findings mean degraded but usable.
//
// When dimension entries are structurally invalid the remaining checks are
// skipped, since they would only produce meaningless noise.
func (m *Model) Validate() []Diagnostic {
	var results []Diagnostic

	fatal := false
	for name, dim := range m.dimensionIndex {
		if dim == nil {
			results = append(results, errorf("dimension %q is not a valid dimension object", name))
			fatal = true
		}
	}
	if fatal {
		return results
	}

	for _, dim := range m.dimensions {
		results = append(results, dim.Validate()...)
	}

	if len(m.cubes) == 0 {
		results = append(results, warningf("no cubes defined"))
	} else {
		for _, cube := range m.cubes {
			results = append(results, cube.Validate()...)
		}
	}

	return results
}

// IsValid reduces the validation diagnostics to a boolean. With strict set,
// any diagnostic at all makes the model invalid; otherwise only
// SeverityError findings do.
func (m *Model) IsValid(strict bool) bool {
	results := m.Validate()
	if len(results) == 0 {
		return true
	}
	if strict {
		return false
	}
	return !hasErrors(results)
}

// Clone returns an independent deep copy of the model. Dimensions are cloned
// once and the cloned cubes rewired to them, preserving the shared reference
// structure of the original.
func (m *Model) Clone() (*Model, error) {
	clone := &Model{
		Name:           m.Name,
		Label:          m.Label,
		Description:    m.Description,
		Locale:         m.Locale,
		Info:           cloneInfo(m.Info),
		Mappings:       cloneInfo(m.Mappings),
		Translations:   cloneTranslations(m.Translations),
		log:            m.log,
		dimensionIndex: make(map[string]*Dimension),
		cubeIndex:      make(map[string]*Cube),
	}

	for _, dim := range m.dimensions {
		cloned, err := dim.Clone()
		if err != nil {
			return nil, err
		}
		if err := clone.AddDimension(cloned); err != nil {
			return nil, err
		}
	}
	for _, cube := range m.cubes {
		cloned, err := cube.clone(clone.dimensionIndex)
		if err != nil {
			return nil, err
		}
		clone.cubes = append(clone.cubes, cloned)
		clone.cubeIndex[cloned.Name] = cloned
	}
	return clone, nil
}

// ToDict returns the dictionary representation of the model. All object
// references within the dictionary are name based.
func (m *Model) ToDict(opts DictOptions) Dict {
	out := Dict{}
	out.set("name", m.Name)
	out.setLabel(m.Label, m.Name, opts)
	out.set("description", m.Description)
	out.set("info", m.Info)

	dims := make([]Dict, 0, len(m.dimensions))
	for _, dim := range m.dimensions {
		dims = append(dims, dim.ToDict(opts))
	}
	out.set("dimensions", dims)

	cubes := make([]Dict, 0, len(m.cubes))
	for _, cube := range m.cubes {
		cubes = append(cubes, cube.ToDict(opts))
	}
	out.set("cubes", cubes)

	if opts.WithMappings {
		out.set("mappings", m.Mappings)
	}
	return out
}
