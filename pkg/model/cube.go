package model

import (
	"log/slog"

	"github.com/tannatlabs/olap/pkg/logger"
)

// Cube is the logical schema of a fact: its measures, aggregates, detail
// attributes and the dimensions it can be sliced by. Dimensions are held by
// reference and shared with the owning model.
type Cube struct {
	Name        string
	Label       string
	Description string
	Info        map[string]any
	Category    string
	Locale      string

	// Backend physical properties, carried as opaque data and interpreted by
	// out of scope backends. They are serialized only when the WithMappings
	// dictionary option is set.
	Mappings       map[string]any
	Joins          []map[string]any
	Fact           string
	Key            string
	BrowserOptions map[string]any
	Datastore      string

	log *slog.Logger

	dimensions     []*Dimension
	dimensionIndex map[string]*Dimension

	measures       []*Measure
	measureIndex   map[string]*Measure
	aggregates     []*MeasureAggregate
	aggregateIndex map[string]*MeasureAggregate
	details        []*Attribute
}

// CubeSpec describes a cube to construct. Measure, aggregate and detail
// entries are coalesced from bare names, metadata maps or constructed
// objects.
//
// When Aggregates is nil, default aggregates are derived from the measures.
// A non-nil Aggregates list, even an empty one, is used as given; every
// aggregate naming a source measure must find it among the cube's measures.
type CubeSpec struct {
	Name        string
	Label       string
	Description string
	Info        map[string]any
	Category    string
	Locale      string

	Dimensions []*Dimension
	Measures   []any
	Aggregates []any
	Details    []any

	Mappings       map[string]any
	Joins          []map[string]any
	Fact           string
	Key            string
	BrowserOptions map[string]any
	Datastore      string
}

// NewCube builds a cube from a spec. A nil logger discards the advisory log
// output.
func NewCube(log *slog.Logger, spec CubeSpec) (*Cube, error) {
	if log == nil {
		log = logger.Discard()
	}
	if spec.Name == "" {
		return nil, inconsistencyf("cube has no name")
	}

	category := spec.Category
	if category == "" && spec.Info != nil {
		if s, ok := spec.Info["category"].(string); ok {
			category = s
		}
	}

	c := &Cube{
		Name:           spec.Name,
		Label:          spec.Label,
		Description:    spec.Description,
		Info:           spec.Info,
		Category:       category,
		Locale:         spec.Locale,
		Mappings:       spec.Mappings,
		Joins:          spec.Joins,
		Fact:           spec.Fact,
		Key:            spec.Key,
		BrowserOptions: spec.BrowserOptions,
		Datastore:      spec.Datastore,
		log:            log,
		dimensionIndex: make(map[string]*Dimension),
		measureIndex:   make(map[string]*Measure),
		aggregateIndex: make(map[string]*MeasureAggregate),
	}

	for _, dim := range spec.Dimensions {
		if err := c.AddDimension(dim); err != nil {
			return nil, err
		}
	}

	for _, md := range spec.Measures {
		measure, err := CreateMeasure(md)
		if err != nil {
			return nil, err
		}
		if _, ok := c.measureIndex[measure.Name]; ok {
			return nil, inconsistencyf("duplicate measure %q in cube %q", measure.Name, c.Name)
		}
		c.measures = append(c.measures, measure)
		c.measureIndex[measure.Name] = measure
	}

	var aggregates []*MeasureAggregate
	if spec.Aggregates != nil {
		for _, md := range spec.Aggregates {
			aggregate, err := CreateMeasureAggregate(md)
			if err != nil {
				return nil, err
			}
			if aggregate.Measure != "" {
				if _, ok := c.measureIndex[aggregate.Measure]; !ok {
					return nil, notFoundf("no measure %q for aggregate %q in cube %q",
						aggregate.Measure, aggregate.Name, c.Name)
				}
			}
			aggregates = append(aggregates, aggregate)
		}
	} else {
		for _, measure := range c.measures {
			aggregates = append(aggregates, measure.DefaultAggregates()...)
		}
	}
	for _, aggregate := range aggregates {
		if _, ok := c.aggregateIndex[aggregate.Name]; ok {
			return nil, inconsistencyf("duplicate aggregate %q in cube %q", aggregate.Name, c.Name)
		}
		c.aggregates = append(c.aggregates, aggregate)
		c.aggregateIndex[aggregate.Name] = aggregate
	}

	details, err := AttributeList(spec.Details)
	if err != nil {
		return nil, err
	}
	c.details = details

	return c, nil
}

// AddDimension links a dimension to the cube. The cube does not take
// ownership; the dimension stays shared with the model.
func (c *Cube) AddDimension(dim *Dimension) error {
	if dim == nil {
		return argumentf("dimension added to cube %q is nil", c.Name)
	}
	if _, ok := c.dimensionIndex[dim.Name]; ok {
		return inconsistencyf("dimension with name %q already exists in cube %q", dim.Name, c.Name)
	}
	c.dimensions = append(c.dimensions, dim)
	c.dimensionIndex[dim.Name] = dim
	return nil
}

// RemoveDimension unlinks the named dimension from the cube.
func (c *Cube) RemoveDimension(name string) error {
	if _, ok := c.dimensionIndex[name]; !ok {
		return notFoundf("cube %q has no dimension %q", c.Name, name)
	}
	delete(c.dimensionIndex, name)
	for i, dim := range c.dimensions {
		if dim.Name == name {
			c.dimensions = append(c.dimensions[:i], c.dimensions[i+1:]...)
			break
		}
	}
	return nil
}

// Dimensions returns the cube dimensions in definition order.
func (c *Cube) Dimensions() []*Dimension {
	return c.dimensions
}

// Dimension returns the cube dimension with the given name.
func (c *Cube) Dimension(name string) (*Dimension, error) {
	if name == "" {
		return nil, notFoundf("requested dimension should not be empty (cube %q)", c.Name)
	}
	dim, ok := c.dimensionIndex[name]
	if !ok {
		return nil, notFoundf("cube %q has no dimension %q", c.Name, name)
	}
	return dim, nil
}

// Measures returns the cube measures in definition order.
func (c *Cube) Measures() []*Measure {
	return c.measures
}

// Measure returns the measure with the given name.
func (c *Cube) Measure(name string) (*Measure, error) {
	measure, ok := c.measureIndex[name]
	if !ok {
		return nil, notFoundf("cube %q has no measure %q", c.Name, name)
	}
	return measure, nil
}

// SelectMeasures returns the named measures. A nil name list selects all
// cube measures.
func (c *Cube) SelectMeasures(names []string) ([]*Measure, error) {
	if names == nil {
		return c.measures, nil
	}
	measures := make([]*Measure, 0, len(names))
	for _, name := range names {
		measure, err := c.Measure(name)
		if err != nil {
			return nil, err
		}
		measures = append(measures, measure)
	}
	return measures, nil
}

// Aggregates returns the cube aggregates in definition order.
func (c *Cube) Aggregates() []*MeasureAggregate {
	return c.aggregates
}

// MeasureAggregate returns the aggregate with the given name.
func (c *Cube) MeasureAggregate(name string) (*MeasureAggregate, error) {
	aggregate, ok := c.aggregateIndex[name]
	if !ok {
		return nil, notFoundf("cube %q has no measure aggregate %q", c.Name, name)
	}
	return aggregate, nil
}

// SelectAggregates returns the named aggregates.
func (c *Cube) SelectAggregates(names []string) ([]*MeasureAggregate, error) {
	aggregates := make([]*MeasureAggregate, 0, len(names))
	for _, name := range names {
		aggregate, err := c.MeasureAggregate(name)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, aggregate)
	}
	return aggregates, nil
}

// AggregatesForMeasure returns the aggregates directly derived from the
// named measure. Aggregates referring to the measure only through an
// expression are not included.
func (c *Cube) AggregatesForMeasure(name string) []*MeasureAggregate {
	var aggregates []*MeasureAggregate
	for _, aggregate := range c.aggregates {
		if aggregate.Measure == name {
			aggregates = append(aggregates, aggregate)
		}
	}
	return aggregates
}

// Details returns the cube's detail attributes.
func (c *Cube) Details() []*Attribute {
	return c.details
}

// Validate checks the cube for internal consistency and returns the list of
// diagnostics.
func (c *Cube) Validate() []Diagnostic {
	var results []Diagnostic

	measures := map[string]bool{}
	for _, measure := range c.measures {
		if measure == nil {
			results = append(results, errorf("nil measure in cube %q", c.Name))
			continue
		}
		measures[measure.Name] = true
	}

	details := map[string]bool{}
	for _, detail := range c.details {
		if detail == nil {
			results = append(results, errorf("nil detail in cube %q", c.Name))
			continue
		}
		switch {
		case details[detail.Name]:
			results = append(results, errorf("duplicate detail %q in cube %q", detail.Name, c.Name))
		case measures[detail.Name]:
			results = append(results, errorf("duplicate detail %q in cube %q - specified also as measure",
				detail.Name, c.Name))
		default:
			details[detail.Name] = true
		}
	}

	return results
}

// ToDict returns the dictionary representation of the cube. Dimensions are
// written as name references unless ExpandDimensions is set.
func (c *Cube) ToDict(opts DictOptions) Dict {
	out := Dict{}
	out.set("name", c.Name)
	out.set("info", c.Info)
	out.set("category", c.Category)
	out.setLabel(c.Label, c.Name, opts)
	out.set("description", c.Description)

	measures := make([]Dict, 0, len(c.measures))
	for _, measure := range c.measures {
		measures = append(measures, measure.ToDict(opts))
	}
	out.set("measures", measures)

	aggregates := make([]Dict, 0, len(c.aggregates))
	for _, aggregate := range c.aggregates {
		aggregates = append(aggregates, aggregate.ToDict(opts))
	}
	out.set("aggregates", aggregates)

	details := make([]Dict, 0, len(c.details))
	for _, detail := range c.details {
		details = append(details, detail.ToDict(opts))
	}
	out.set("details", details)

	if opts.ExpandDimensions {
		dims := make([]Dict, 0, len(c.dimensions))
		for _, dim := range c.dimensions {
			dims = append(dims, dim.ToDict(opts))
		}
		out.set("dimensions", dims)
	} else {
		names := make([]string, 0, len(c.dimensions))
		for _, dim := range c.dimensions {
			names = append(names, dim.Name)
		}
		out.set("dimensions", names)
	}

	if opts.WithMappings {
		out.set("mappings", c.Mappings)
		out.set("fact", c.Fact)
		if len(c.Joins) > 0 {
			out["joins"] = c.Joins
		}
		out.set("browser_options", c.BrowserOptions)
	}

	out.set("key", c.Key)
	return out
}

// clone returns a deep copy of the cube wired to the given dimension set,
// which the cloning model has already copied.
func (c *Cube) clone(dimensions map[string]*Dimension) (*Cube, error) {
	clone := &Cube{
		Name:           c.Name,
		Label:          c.Label,
		Description:    c.Description,
		Info:           cloneInfo(c.Info),
		Category:       c.Category,
		Locale:         c.Locale,
		Mappings:       cloneInfo(c.Mappings),
		Joins:          cloneJoins(c.Joins),
		Fact:           c.Fact,
		Key:            c.Key,
		BrowserOptions: cloneInfo(c.BrowserOptions),
		Datastore:      c.Datastore,
		log:            c.log,
		dimensionIndex: make(map[string]*Dimension),
		measureIndex:   make(map[string]*Measure),
		aggregateIndex: make(map[string]*MeasureAggregate),
	}

	for _, dim := range c.dimensions {
		cloned, ok := dimensions[dim.Name]
		if !ok {
			return nil, notFoundf("no dimension %q for cube %q", dim.Name, c.Name)
		}
		if err := clone.AddDimension(cloned); err != nil {
			return nil, err
		}
	}
	for _, measure := range c.measures {
		cloned := measure.Clone()
		clone.measures = append(clone.measures, cloned)
		clone.measureIndex[cloned.Name] = cloned
	}
	for _, aggregate := range c.aggregates {
		cloned := aggregate.Clone()
		clone.aggregates = append(clone.aggregates, cloned)
		clone.aggregateIndex[cloned.Name] = cloned
	}
	for _, detail := range c.details {
		clone.details = append(clone.details, detail.Clone())
	}
	return clone, nil
}
