package model

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestOLAP_Model_DefaultHierarchy(t *testing.T) {
	t.Parallel()

	yearLevel := func(t *testing.T) *Level {
		level, err := NewLevel(LevelSpec{Name: "year", Attributes: []any{"year"}})
		require.NoError(t, err)
		return level
	}
	monthLevel := func(t *testing.T) *Level {
		level, err := NewLevel(LevelSpec{Name: "month", Attributes: []any{"month"}})
		require.NoError(t, err)
		return level
	}

	t.Run("explicit_default_hierarchy_name_wins", func(t *testing.T) {
		dim, err := NewDimension(testLogger(), DimensionSpec{
			Name:   "date",
			Levels: []*Level{yearLevel(t), monthLevel(t)},
			Hierarchies: []HierarchySpec{
				{Name: "ym", Levels: []string{"year", "month"}},
				{Name: "y", Levels: []string{"year"}},
			},
			DefaultHierarchyName: "y",
		})
		require.NoError(t, err)

		hier, err := dim.Hierarchy("")
		require.NoError(t, err)
		require.Equal(t, "y", hier.Name)
	})

	t.Run("sole_hierarchy_is_default", func(t *testing.T) {
		dim, err := NewDimension(testLogger(), DimensionSpec{
			Name:   "date",
			Levels: []*Level{yearLevel(t), monthLevel(t)},
			Hierarchies: []HierarchySpec{
				{Name: "ym", Levels: []string{"year", "month"}},
			},
		})
		require.NoError(t, err)

		hier, err := dim.Hierarchy("")
		require.NoError(t, err)
		require.Equal(t, "ym", hier.Name)
	})

	t.Run("hierarchy_named_default_is_default", func(t *testing.T) {
		dim, err := NewDimension(testLogger(), DimensionSpec{
			Name:   "date",
			Levels: []*Level{yearLevel(t), monthLevel(t)},
			Hierarchies: []HierarchySpec{
				{Name: "ym", Levels: []string{"year", "month"}},
				{Name: "default", Levels: []string{"year"}},
			},
		})
		require.NoError(t, err)

		hier, err := dim.Hierarchy("")
		require.NoError(t, err)
		require.Equal(t, "default", hier.Name)
	})

	t.Run("multiple_hierarchies_without_default_is_ambiguous", func(t *testing.T) {
		dim, err := NewDimension(testLogger(), DimensionSpec{
			Name:   "date",
			Levels: []*Level{yearLevel(t), monthLevel(t)},
			Hierarchies: []HierarchySpec{
				{Name: "ym", Levels: []string{"year", "month"}},
				{Name: "y", Levels: []string{"year"}},
			},
		})
		require.NoError(t, err)

		_, err = dim.Hierarchy("")
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrModelInconsistency))
	})

	t.Run("flat_dimension_synthesizes_and_caches_hierarchy", func(t *testing.T) {
		dim, err := NewDimension(testLogger(), DimensionSpec{
			Name:   "flag",
			Levels: []*Level{yearLevel(t)},
		})
		require.NoError(t, err)

		// Strip the constructed hierarchies to exercise the synthesis path.
		dim.hierarchies = nil
		dim.hierarchyIndex = map[string]*Hierarchy{}

		hier, err := dim.Hierarchy("")
		require.NoError(t, err)
		require.Equal(t, "year", hier.Name)
		require.Len(t, hier.Levels(), 1)

		again, err := dim.Hierarchy("")
		require.NoError(t, err)
		require.Same(t, hier, again)
	})

	t.Run("no_hierarchies_and_multiple_levels_fails", func(t *testing.T) {
		dim, err := NewDimension(testLogger(), DimensionSpec{
			Name:   "date",
			Levels: []*Level{yearLevel(t), monthLevel(t)},
		})
		require.NoError(t, err)

		dim.hierarchies = nil
		dim.hierarchyIndex = map[string]*Hierarchy{}

		_, err = dim.Hierarchy("")
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrModelInconsistency))
	})

	t.Run("deprecated_accessor_delegates", func(t *testing.T) {
		dim := dateDimension(t)
		hier, err := dim.DefaultHierarchy()
		require.NoError(t, err)
		viaLookup, err := dim.Hierarchy("")
		require.NoError(t, err)
		require.Same(t, viaLookup, hier)
	})
}

func TestOLAP_Model_DimensionConstruction(t *testing.T) {
	t.Parallel()

	t.Run("no_levels_fails", func(t *testing.T) {
		_, err := NewDimension(testLogger(), DimensionSpec{Name: "empty"})
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrModelInconsistency))
	})

	t.Run("duplicate_level_names_fail", func(t *testing.T) {
		a, err := NewLevel(LevelSpec{Name: "x", Attributes: []any{"a"}})
		require.NoError(t, err)
		b, err := NewLevel(LevelSpec{Name: "x", Attributes: []any{"b"}})
		require.NoError(t, err)

		_, err = NewDimension(testLogger(), DimensionSpec{
			Name:   "dup",
			Levels: []*Level{a, b},
		})
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrModelInconsistency))
	})

	t.Run("hierarchy_with_unknown_level_fails", func(t *testing.T) {
		level, err := NewLevel(LevelSpec{Name: "year", Attributes: []any{"year"}})
		require.NoError(t, err)

		_, err = NewDimension(testLogger(), DimensionSpec{
			Name:   "date",
			Levels: []*Level{level},
			Hierarchies: []HierarchySpec{
				{Name: "ym", Levels: []string{"year", "month"}},
			},
		})
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("default_hierarchy_synthesized_over_levels", func(t *testing.T) {
		dim := flatDimension(t, "flag")
		hier, err := dim.Hierarchy("default")
		require.NoError(t, err)
		require.Len(t, hier.Levels(), 1)
	})

	t.Run("levels_and_attributes_are_claimed", func(t *testing.T) {
		dim := dateDimension(t)
		level, err := dim.Level("month")
		require.NoError(t, err)
		require.Same(t, dim, level.Dimension())

		attr, err := dim.Attribute("month_name")
		require.NoError(t, err)
		require.Same(t, dim, attr.Dimension())
	})
}

func TestOLAP_Model_DimensionAccessors(t *testing.T) {
	t.Parallel()
	dim := dateDimension(t)

	require.Equal(t, []string{"year", "month", "day"}, dim.LevelNames())
	require.False(t, dim.IsFlat())
	require.True(t, dim.HasDetails())

	keys := dim.KeyAttributes()
	require.Len(t, keys, 3)
	require.Equal(t, "year", keys[0].Name)

	attrs := dim.AllAttributes()
	require.Len(t, attrs, 4)

	_, err := dim.Level("week")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotFound))

	_, err = dim.Hierarchy("nope")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotFound))

	_, err = dim.Attribute("nope")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestOLAP_Model_DimensionValidate(t *testing.T) {
	t.Parallel()

	t.Run("duplicate_attribute_across_levels_names_both_levels", func(t *testing.T) {
		a, err := NewLevel(LevelSpec{Name: "first", Attributes: []any{"code"}})
		require.NoError(t, err)
		b, err := NewLevel(LevelSpec{Name: "second", Attributes: []any{"code"}})
		require.NoError(t, err)

		dim, err := NewDimension(testLogger(), DimensionSpec{
			Name:   "geo",
			Levels: []*Level{a, b},
		})
		require.NoError(t, err)

		diags := dim.Validate()
		found := false
		for _, diag := range diags {
			if diag.Severity == SeverityError &&
				strings.Contains(diag.Message, "first") && strings.Contains(diag.Message, "second") {
				found = true
			}
		}
		require.True(t, found, "expected duplicate attribute error naming both levels, got %v", diags)
	})

	t.Run("implicit_key_reported_as_default", func(t *testing.T) {
		dim := dateDimension(t)
		diags := dim.Validate()
		count := 0
		for _, diag := range diags {
			if diag.Severity == SeverityDefault {
				count++
			}
		}
		require.Equal(t, 3, count, "one implicit key per level")
		require.False(t, hasErrors(diags))
	})

	t.Run("missing_default_hierarchy_is_error", func(t *testing.T) {
		level, err := NewLevel(LevelSpec{Name: "year", Attributes: []any{"year"}})
		require.NoError(t, err)
		dim, err := NewDimension(testLogger(), DimensionSpec{
			Name:   "date",
			Levels: []*Level{level},
		})
		require.NoError(t, err)
		dim.DefaultHierarchyName = "nope"

		diags := dim.Validate()
		require.True(t, hasErrors(diags))
	})

	t.Run("explicit_key_outside_level_is_error", func(t *testing.T) {
		level, err := NewLevel(LevelSpec{Name: "year", Attributes: []any{"year"}})
		require.NoError(t, err)
		dim, err := NewDimension(testLogger(), DimensionSpec{
			Name:   "date",
			Levels: []*Level{level},
		})
		require.NoError(t, err)
		level.KeyName = "nope"

		diags := dim.Validate()
		require.True(t, hasErrors(diags))
	})
}
