package model

import (
	"slices"
	"strings"
)

// Order is the default sort direction of an attribute.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ParseOrder normalizes an ordering keyword. Any keyword starting with "asc"
// or "desc" is accepted, case-insensitive. Empty input means unordered.
func ParseOrder(s string) (Order, error) {
	if s == "" {
		return "", nil
	}
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "asc"):
		return OrderAsc, nil
	case strings.HasPrefix(lower, "desc"):
		return OrderDesc, nil
	default:
		return "", argumentf("unknown ordering %q for attribute", s)
	}
}

// AttributeBase holds the fields shared by dimension attributes, measures and
// measure aggregates.
type AttributeBase struct {
	// Name is the identifier, unique within the owning level or dimension.
	Name        string
	Label       string
	Description string
	// Format is application specific display format information, useful for
	// numeric measure values.
	Format string
	Order  Order
	// Info is a custom information dictionary for application or front-end
	// specific data.
	Info map[string]any
}

// Ref returns the reference string of the attribute. For base attributes this
// is just the name; Attribute overrides it with a dimension qualified form.
func (b *AttributeBase) Ref() string {
	return b.Name
}

func (b *AttributeBase) baseDict(opts DictOptions) Dict {
	d := Dict{}
	d.set("name", b.Name)
	d.setLabel(b.Label, b.Name, opts)
	d.set("description", b.Description)
	d.set("info", b.Info)
	d.set("format", b.Format)
	d.set("order", string(b.Order))
	return d
}

func (b *AttributeBase) cloneBase() AttributeBase {
	c := *b
	c.Info = cloneInfo(b.Info)
	return c
}

// Attribute is a dimension attribute: a named field attached to a level,
// addressable by a reference string.
type Attribute struct {
	AttributeBase

	// Locales lists the locales the attribute is localized to. An attribute
	// with no locales is not localizable.
	Locales []string

	// dimension is a non-owning back reference to the owning dimension. It is
	// set when a dimension claims the attribute's level.
	dimension *Dimension
}

// NewAttribute returns a minimal attribute with the given name.
func NewAttribute(name string) *Attribute {
	return &Attribute{AttributeBase: AttributeBase{Name: name}}
}

// Dimension returns the dimension the attribute belongs to, or nil for fact
// attributes such as cube details before assignment.
func (a *Attribute) Dimension() *Dimension {
	return a.dimension
}

// Ref returns the attribute reference used in a cube's flattened attribute
// space. If the owning dimension is flat and has no detail attributes, the
// reference is just the dimension name; otherwise it is
// "dimension.attribute". An attribute without a dimension references itself
// by name.
func (a *Attribute) Ref() string {
	ref, _ := a.ref(true, "")
	return ref
}

// RefLocalized returns the reference with a ".{locale}" suffix. It fails when
// the attribute does not declare the requested locale.
func (a *Attribute) RefLocalized(locale string) (string, error) {
	return a.ref(true, locale)
}

func (a *Attribute) dimensionName() string {
	if a.dimension == nil {
		return "none"
	}
	return a.dimension.Name
}

func (a *Attribute) ref(simplify bool, locale string) (string, error) {
	suffix := ""
	if locale != "" {
		if len(a.Locales) == 0 {
			return "", argumentf("attribute %q is not localizable (locale %q requested)",
				a.Name, locale)
		}
		if !slices.Contains(a.Locales, locale) {
			return "", argumentf("attribute %q has no locale %q (has: %s)",
				a.Name, locale, strings.Join(a.Locales, ", "))
		}
		suffix = "." + locale
	}

	ref := a.Name
	if a.dimension != nil {
		if simplify && a.dimension.IsFlat() && !a.dimension.HasDetails() {
			ref = a.dimension.Name
		} else {
			ref = a.dimension.Name + "." + a.Name
		}
	}
	return ref + suffix, nil
}

// IsLocalizable reports whether the attribute declares any locales.
func (a *Attribute) IsLocalizable() bool {
	return len(a.Locales) > 0
}

// ToDict returns the dictionary representation of the attribute.
func (a *Attribute) ToDict(opts DictOptions) Dict {
	d := a.baseDict(opts)
	ref := a.Ref()
	d.set("ref", ref)
	d.set("full_name", ref)
	d.set("locales", a.Locales)
	return d
}

// Clone returns an independent copy of the attribute. The dimension back
// reference is not carried over; the owning dimension rewires it.
func (a *Attribute) Clone() *Attribute {
	return &Attribute{
		AttributeBase: a.cloneBase(),
		Locales:       slices.Clone(a.Locales),
	}
}

// CreateAttribute coalesces metadata into an Attribute: a bare name string, a
// metadata map or an already constructed attribute.
func CreateAttribute(md any) (*Attribute, error) {
	switch v := md.(type) {
	case *Attribute:
		if v == nil {
			return nil, argumentf("attribute is nil")
		}
		return v, nil
	case string:
		return NewAttribute(v), nil
	case map[string]any:
		return attributeFromMap(v)
	default:
		return nil, argumentf("unknown object type %T for an attribute", md)
	}
}

// AttributeList coalesces a list of attribute metadata. See CreateAttribute.
func AttributeList(mds []any) ([]*Attribute, error) {
	attrs := make([]*Attribute, 0, len(mds))
	for _, md := range mds {
		attr, err := CreateAttribute(md)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

func attributeFromMap(md map[string]any) (*Attribute, error) {
	base, err := baseFromMap(md, "attribute")
	if err != nil {
		return nil, err
	}
	locales, err := mdStringList(md, "locales")
	if err != nil {
		return nil, err
	}
	return &Attribute{AttributeBase: base, Locales: locales}, nil
}
