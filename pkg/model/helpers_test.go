package model

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	olaptesting "github.com/tannatlabs/olap/pkg/testing"
)

func testLogger() *slog.Logger {
	return olaptesting.NewLogger()
}

// dateDimension builds a three level date dimension with a single "ymd"
// hierarchy named as the default.
func dateDimension(t *testing.T) *Dimension {
	t.Helper()

	year, err := NewLevel(LevelSpec{Name: "year", Attributes: []any{"year"}})
	require.NoError(t, err)
	month, err := NewLevel(LevelSpec{
		Name:       "month",
		Attributes: []any{"month", "month_name"},
	})
	require.NoError(t, err)
	day, err := NewLevel(LevelSpec{Name: "day", Attributes: []any{"day"}})
	require.NoError(t, err)

	dim, err := NewDimension(testLogger(), DimensionSpec{
		Name:   "date",
		Levels: []*Level{year, month, day},
		Hierarchies: []HierarchySpec{
			{Name: "ymd", Levels: []string{"year", "month", "day"}},
		},
		DefaultHierarchyName: "ymd",
	})
	require.NoError(t, err)
	return dim
}

// flatDimension builds a single level, single attribute dimension whose
// attribute references simplify to the dimension name.
func flatDimension(t *testing.T, name string) *Dimension {
	t.Helper()

	level, err := NewLevel(LevelSpec{Name: name, Attributes: []any{name}})
	require.NoError(t, err)
	dim, err := NewDimension(testLogger(), DimensionSpec{
		Name:   name,
		Levels: []*Level{level},
	})
	require.NoError(t, err)
	return dim
}

// salesCube builds a cube over the given dimensions with amount and discount
// measures and default aggregates.
func salesCube(t *testing.T, dims ...*Dimension) *Cube {
	t.Helper()

	cube, err := NewCube(testLogger(), CubeSpec{
		Name:       "sales",
		Dimensions: dims,
		Measures: []any{
			map[string]any{"name": "amount", "label": "Amount"},
			"discount",
		},
		Details: []any{"note"},
	})
	require.NoError(t, err)
	return cube
}
