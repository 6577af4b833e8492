package model

// Level is one rung of a hierarchy, ordering a set of attributes and
// designating the key, label and order attributes among them.
//
// A level without an explicit key uses its first attribute; without an
// explicit label attribute it uses the second attribute, or the key when it
// is the only one; without an explicit order attribute it uses the first.
type Level struct {
	Name  string
	Label string
	Info  map[string]any
	// Order is the default ordering of the level.
	Order Order

	// Attributes is the ordered attribute list. It must not be empty.
	Attributes []*Attribute

	// KeyName names the key attribute. Empty means the first attribute.
	KeyName string
	// LabelAttributeName names the attribute carrying the display label.
	LabelAttributeName string
	// OrderAttributeName names the attribute used for sorting.
	OrderAttributeName string

	dimension *Dimension
}

// LevelSpec describes a level to construct. Attribute entries are coalesced
// with CreateAttribute, so bare names, metadata maps and Attribute values all
// work.
type LevelSpec struct {
	Name           string
	Label          string
	Info           map[string]any
	Attributes     []any
	Key            string
	LabelAttribute string
	OrderAttribute string
	Order          string
}

// NewLevel builds a level from a spec. It fails when the attribute list is
// empty or when an explicitly named key, label or order attribute is not in
// the list.
func NewLevel(spec LevelSpec) (*Level, error) {
	if len(spec.Attributes) == 0 {
		return nil, inconsistencyf("attribute list of level %q should not be empty", spec.Name)
	}

	attributes, err := AttributeList(spec.Attributes)
	if err != nil {
		return nil, err
	}
	order, err := ParseOrder(spec.Order)
	if err != nil {
		return nil, err
	}

	level := &Level{
		Name:               spec.Name,
		Label:              spec.Label,
		Info:               spec.Info,
		Order:              order,
		Attributes:         attributes,
		KeyName:            spec.Key,
		LabelAttributeName: spec.LabelAttribute,
		OrderAttributeName: spec.OrderAttribute,
	}

	if spec.Key != "" {
		if _, err := level.Attribute(spec.Key); err != nil {
			return nil, err
		}
	}
	if spec.LabelAttribute != "" {
		if _, err := level.Attribute(spec.LabelAttribute); err != nil {
			return nil, err
		}
	}
	if spec.OrderAttribute != "" {
		if _, err := level.Attribute(spec.OrderAttribute); err != nil {
			return nil, notFoundf("unknown order attribute %q in level %q", spec.OrderAttribute, spec.Name)
		}
	}

	return level, nil
}

// Dimension returns the dimension the level belongs to, or nil before the
// level is claimed by one.
func (l *Level) Dimension() *Dimension {
	return l.dimension
}

// Attribute returns the level attribute with the given name.
func (l *Level) Attribute(name string) (*Attribute, error) {
	for _, attr := range l.Attributes {
		if attr.Name == name {
			return attr, nil
		}
	}
	return nil, notFoundf("level %q has no attribute %q", l.Name, name)
}

func (l *Level) lookup(name string) *Attribute {
	for _, attr := range l.Attributes {
		if attr.Name == name {
			return attr
		}
	}
	return nil
}

// Key returns the key attribute: the explicitly named one, or the first
// attribute. The key is used as the grouping field for aggregations.
func (l *Level) Key() *Attribute {
	if l.KeyName != "" {
		return l.lookup(l.KeyName)
	}
	if len(l.Attributes) > 0 {
		return l.Attributes[0]
	}
	return nil
}

// LabelAttribute returns the attribute holding the display label: the
// explicitly named one, the second attribute, or the key for a single
// attribute level.
func (l *Level) LabelAttribute() *Attribute {
	if l.LabelAttributeName != "" {
		return l.lookup(l.LabelAttributeName)
	}
	if len(l.Attributes) > 1 {
		return l.Attributes[1]
	}
	return l.Key()
}

// OrderAttribute returns the attribute used for sorting: the explicitly
// named one, or the first attribute.
func (l *Level) OrderAttribute() *Attribute {
	if l.OrderAttributeName != "" {
		return l.lookup(l.OrderAttributeName)
	}
	if len(l.Attributes) > 0 {
		return l.Attributes[0]
	}
	return nil
}

// HasDetails reports whether the level carries more than one attribute.
func (l *Level) HasDetails() bool {
	return len(l.Attributes) > 1
}

// ToDict returns the dictionary representation of the level. With
// FullAttributeNames the key, label and order attributes are written as full
// references instead of bare names.
func (l *Level) ToDict(opts DictOptions) Dict {
	d := Dict{}
	d.set("name", l.Name)
	d.set("info", l.Info)
	d.setLabel(l.Label, l.Name, opts)

	attrName := func(attr *Attribute) string {
		if attr == nil {
			return ""
		}
		if opts.FullAttributeNames {
			return attr.Ref()
		}
		return attr.Name
	}
	d.set("key", attrName(l.Key()))
	d.set("label_attribute", attrName(l.LabelAttribute()))
	d.set("order_attribute", attrName(l.OrderAttribute()))
	d.set("order", string(l.Order))

	attrs := make([]Dict, 0, len(l.Attributes))
	for _, attr := range l.Attributes {
		attrs = append(attrs, attr.ToDict(opts))
	}
	d.set("attributes", attrs)
	return d
}

// Clone returns an independent copy of the level with cloned attributes. The
// dimension back references are rewired when a dimension claims the clone.
func (l *Level) Clone() *Level {
	attributes := make([]*Attribute, 0, len(l.Attributes))
	for _, attr := range l.Attributes {
		attributes = append(attributes, attr.Clone())
	}
	return &Level{
		Name:               l.Name,
		Label:              l.Label,
		Info:               cloneInfo(l.Info),
		Order:              l.Order,
		Attributes:         attributes,
		KeyName:            l.KeyName,
		LabelAttributeName: l.LabelAttributeName,
		OrderAttributeName: l.OrderAttributeName,
	}
}
