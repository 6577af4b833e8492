package model

import (
	"slices"
	"strings"
)

// Measure is a numeric fact attribute subject to aggregation.
type Measure struct {
	AttributeBase

	// Formula names a registered formula for the measure.
	Formula string
	// Expression is an arithmetic expression. A measure with an expression
	// should not refer to another measure that refers back to it.
	Expression string
	// Aggregates lists the aggregate function names relevant for this
	// measure, used to derive default measure aggregates.
	Aggregates []string
}

// NewMeasure returns a minimal measure with the given name.
func NewMeasure(name string) *Measure {
	return &Measure{AttributeBase: AttributeBase{Name: name}}
}

// DefaultAggregates derives measure aggregates from the measure's aggregate
// function list, one per function. When the measure lists no functions, a
// single "sum" aggregate is assumed. Aggregate names have the form
// "<measure>_<function>".
func (m *Measure) DefaultAggregates() []*MeasureAggregate {
	functions := m.Aggregates
	if len(functions) == 0 {
		functions = []string{"sum"}
	}

	aggregates := make([]*MeasureAggregate, 0, len(functions))
	for _, function := range functions {
		label := ""
		if m.Label != "" {
			label = m.Label + " – " + function
		}
		aggregates = append(aggregates, &MeasureAggregate{
			AttributeBase: AttributeBase{
				Name:        AggregateRef(m.Name, function),
				Label:       label,
				Description: m.Description,
				Format:      m.Format,
				Order:       m.Order,
				Info:        cloneInfo(m.Info),
			},
			Measure:  m.Name,
			Function: function,
		})
	}
	return aggregates
}

// ToDict returns the dictionary representation of the measure.
func (m *Measure) ToDict(opts DictOptions) Dict {
	d := m.baseDict(opts)
	d.set("ref", m.Ref())
	d.set("formula", m.Formula)
	d.set("expression", m.Expression)
	d.set("aggregates", m.Aggregates)
	return d
}

// Clone returns an independent copy of the measure.
func (m *Measure) Clone() *Measure {
	return &Measure{
		AttributeBase: m.cloneBase(),
		Formula:       m.Formula,
		Expression:    m.Expression,
		Aggregates:    slices.Clone(m.Aggregates),
	}
}

// CreateMeasure coalesces metadata into a Measure: a bare name string, a
// metadata map or an already constructed measure.
func CreateMeasure(md any) (*Measure, error) {
	switch v := md.(type) {
	case *Measure:
		if v == nil {
			return nil, argumentf("measure is nil")
		}
		return v, nil
	case string:
		return NewMeasure(v), nil
	case map[string]any:
		return measureFromMap(v)
	default:
		return nil, argumentf("unknown object type %T for a measure", md)
	}
}

func measureFromMap(md map[string]any) (*Measure, error) {
	base, err := baseFromMap(md, "measure")
	if err != nil {
		return nil, err
	}
	formula, err := mdString(md, "formula")
	if err != nil {
		return nil, err
	}
	expression, err := mdString(md, "expression")
	if err != nil {
		return nil, err
	}
	aggregates, err := mdStringList(md, "aggregates")
	if err != nil {
		return nil, err
	}
	return &Measure{
		AttributeBase: base,
		Formula:       formula,
		Expression:    expression,
		Aggregates:    aggregates,
	}, nil
}

// MeasureAggregate is a measure with an aggregation function applied, or a
// natively aggregated value.
type MeasureAggregate struct {
	AttributeBase

	// Function is the aggregation function name, such as "sum".
	Function string
	// Measure names the source measure, when the aggregate is derived from
	// one.
	Measure string
	// Formula names a registered formula containing the arithmetic
	// expression.
	Formula string
	// Expression is an arithmetic expression.
	Expression string
}

// NewMeasureAggregate returns a minimal measure aggregate with the given
// name.
func NewMeasureAggregate(name string) *MeasureAggregate {
	return &MeasureAggregate{AttributeBase: AttributeBase{Name: name}}
}

// ToDict returns the dictionary representation of the aggregate.
func (a *MeasureAggregate) ToDict(opts DictOptions) Dict {
	d := a.baseDict(opts)
	d.set("ref", a.Ref())
	d.set("function", a.Function)
	d.set("formula", a.Formula)
	d.set("expression", a.Expression)
	d.set("measure", a.Measure)
	return d
}

// Clone returns an independent copy of the aggregate.
func (a *MeasureAggregate) Clone() *MeasureAggregate {
	return &MeasureAggregate{
		AttributeBase: a.cloneBase(),
		Function:      a.Function,
		Measure:       a.Measure,
		Formula:       a.Formula,
		Expression:    a.Expression,
	}
}

// CreateMeasureAggregate coalesces metadata into a MeasureAggregate: a bare
// name string, a metadata map or an already constructed aggregate.
func CreateMeasureAggregate(md any) (*MeasureAggregate, error) {
	switch v := md.(type) {
	case *MeasureAggregate:
		if v == nil {
			return nil, argumentf("measure aggregate is nil")
		}
		return v, nil
	case string:
		return NewMeasureAggregate(v), nil
	case map[string]any:
		return measureAggregateFromMap(v)
	default:
		return nil, argumentf("unknown object type %T for a measure aggregate", md)
	}
}

func measureAggregateFromMap(md map[string]any) (*MeasureAggregate, error) {
	base, err := baseFromMap(md, "measure aggregate")
	if err != nil {
		return nil, err
	}
	function, err := mdString(md, "function")
	if err != nil {
		return nil, err
	}
	measure, err := mdString(md, "measure")
	if err != nil {
		return nil, err
	}
	formula, err := mdString(md, "formula")
	if err != nil {
		return nil, err
	}
	expression, err := mdString(md, "expression")
	if err != nil {
		return nil, err
	}
	return &MeasureAggregate{
		AttributeBase: base,
		Function:      function,
		Measure:       measure,
		Formula:       formula,
		Expression:    expression,
	}, nil
}

// AggregateRef builds the reference string for a measure aggregate by joining
// the measure name and aggregate function with an underscore. Backends use it
// to build valid aggregate references. See SplitAggregateRef.
func AggregateRef(measure, function string) string {
	return measure + "_" + function
}

// SplitAggregateRef splits an aggregate reference built by AggregateRef back
// into measure name and aggregate function, splitting on the last
// underscore. A reference with no underscore, or one ending in an
// underscore, fails with an argument error suggesting the likely intended
// reference.
func SplitAggregateRef(ref string) (measure string, function string, err error) {
	i := strings.LastIndex(ref, "_")
	if i == -1 || i >= len(ref)-1 {
		meaning := ref + "sum"
		if i == -1 {
			meaning = ref + "_sum"
		}
		return "", "", argumentf("invalid aggregate reference %q, did you mean %q?",
			ref, meaning)
	}
	return ref[:i], ref[i+1:], nil
}
