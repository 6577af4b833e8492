package model

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func ymdHierarchy(t *testing.T) *Hierarchy {
	t.Helper()
	dim := dateDimension(t)
	hier, err := dim.Hierarchy("ymd")
	require.NoError(t, err)
	return hier
}

func TestOLAP_Model_HierarchyNavigation(t *testing.T) {
	t.Parallel()
	hier := ymdHierarchy(t)

	t.Run("next_level", func(t *testing.T) {
		level, err := hier.NextLevel("")
		require.NoError(t, err)
		require.Equal(t, "year", level.Name)

		level, err = hier.NextLevel("year")
		require.NoError(t, err)
		require.Equal(t, "month", level.Name)

		level, err = hier.NextLevel("day")
		require.NoError(t, err)
		require.Nil(t, level)

		_, err = hier.NextLevel("week")
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrHierarchy))
	})

	t.Run("previous_level", func(t *testing.T) {
		level, err := hier.PreviousLevel("")
		require.NoError(t, err)
		require.Nil(t, level)

		level, err = hier.PreviousLevel("year")
		require.NoError(t, err)
		require.Nil(t, level)

		level, err = hier.PreviousLevel("day")
		require.NoError(t, err)
		require.Equal(t, "month", level.Name)
	})

	t.Run("level_index", func(t *testing.T) {
		i, err := hier.LevelIndex("month")
		require.NoError(t, err)
		require.Equal(t, 1, i)

		_, err = hier.LevelIndex("week")
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrHierarchy))
	})

	t.Run("is_last", func(t *testing.T) {
		require.True(t, hier.IsLast("day"))
		require.False(t, hier.IsLast("year"))
	})

	t.Run("contains", func(t *testing.T) {
		require.True(t, hier.Contains("month"))
		require.False(t, hier.Contains("week"))
	})
}

func TestOLAP_Model_HierarchyDepth(t *testing.T) {
	t.Parallel()
	hier := ymdHierarchy(t)

	t.Run("levels_for_depth", func(t *testing.T) {
		levels, err := hier.LevelsForDepth(2, false)
		require.NoError(t, err)
		require.Len(t, levels, 2)
		require.Equal(t, "month", levels[1].Name)
	})

	t.Run("drilldown_extends_by_one", func(t *testing.T) {
		levels, err := hier.LevelsForDepth(2, true)
		require.NoError(t, err)
		require.Len(t, levels, 3)
	})

	t.Run("depth_beyond_hierarchy_fails", func(t *testing.T) {
		_, err := hier.LevelsForDepth(4, false)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrHierarchy))

		_, err = hier.LevelsForDepth(3, true)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrHierarchy))
	})

	t.Run("levels_for_path", func(t *testing.T) {
		levels, err := hier.LevelsForPath([]string{"2010", "3"}, false)
		require.NoError(t, err)
		require.Len(t, levels, 2)
	})
}

func TestOLAP_Model_HierarchyRollUp(t *testing.T) {
	t.Parallel()
	hier := ymdHierarchy(t)

	t.Run("one_level_up_by_default", func(t *testing.T) {
		path, err := hier.RollUp([]string{"2010", "3", "14"}, "")
		require.NoError(t, err)
		require.Equal(t, []string{"2010", "3"}, path)
	})

	t.Run("empty_path_stays_empty", func(t *testing.T) {
		path, err := hier.RollUp(nil, "")
		require.NoError(t, err)
		require.Empty(t, path)
	})

	t.Run("roll_up_to_named_level", func(t *testing.T) {
		path, err := hier.RollUp([]string{"2010", "3", "14"}, "year")
		require.NoError(t, err)
		require.Equal(t, []string{"2010"}, path)
	})

	t.Run("level_deeper_than_path_fails", func(t *testing.T) {
		_, err := hier.RollUp([]string{"2010"}, "day")
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrHierarchy))
	})
}

func TestOLAP_Model_HierarchyPathIsBase(t *testing.T) {
	t.Parallel()
	hier := ymdHierarchy(t)

	require.True(t, hier.PathIsBase([]string{"2010", "3", "14"}))
	require.False(t, hier.PathIsBase([]string{"2010"}))
	require.False(t, hier.PathIsBase(nil))
}

func TestOLAP_Model_HierarchyAttributes(t *testing.T) {
	t.Parallel()
	hier := ymdHierarchy(t)

	keys := hier.KeyAttributes()
	require.Len(t, keys, 3)
	require.Equal(t, "year", keys[0].Name)
	require.Equal(t, "month", keys[1].Name)

	attrs := hier.AllAttributes()
	require.Len(t, attrs, 4)
	require.Equal(t, "month_name", attrs[2].Name)
}
