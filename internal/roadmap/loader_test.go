package roadmap_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p-n-ai/pai-prep/internal/roadmap"
)

func setupSchedule(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	write := func(rel, text string) {
		t.Helper()
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	}

	write("day-01/README.md", "# Day 1: Foundations\nLevel: Beginner | 3h\n## CORE TOPICS\n- [ ] **Closures**\n  - Path: `../../javascript/closures.md`\n")
	// README.md takes precedence over topics.md.
	write("day-01/topics.md", "# Day 1\n## Core Topics\n### Ignored\n- **Path**: `ignored.md`\n")
	write("day-02/topics.md", "## Core Topics\n### Promises\n- **Path**: `javascript/promises.md`\n")
	write("day-4/README.md", "# Day 4: Unpadded\n")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "day-03"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "notes"), 0o755))
	write("day-xx/README.md", "# Day 99: bogus\n")
	return dir
}

func TestLoader_Day(t *testing.T) {
	loader := roadmap.NewLoader(setupSchedule(t))

	plan, err := loader.Day(1)
	require.NoError(t, err)
	assert.Equal(t, 1, plan.DayNumber)
	assert.Equal(t, "Beginner", plan.Level)
	require.Len(t, plan.Topics, 1)
	assert.Equal(t, "Closures", plan.Topics[0].Name)
	assert.Equal(t, "../../javascript/closures.md", plan.Topics[0].ReferencePath)
}

func TestLoader_Day_TopicsFallback(t *testing.T) {
	loader := roadmap.NewLoader(setupSchedule(t))

	plan, err := loader.Day(2)
	require.NoError(t, err)
	assert.Equal(t, 2, plan.DayNumber, "day number falls back to the directory")
	require.Len(t, plan.Topics, 1)
	assert.Equal(t, "javascript/promises.md", plan.Topics[0].ReferencePath)
}

func TestLoader_Day_Unpadded(t *testing.T) {
	loader := roadmap.NewLoader(setupSchedule(t))

	plan, err := loader.Day(4)
	require.NoError(t, err)
	assert.Equal(t, 4, plan.DayNumber)
}

func TestLoader_Day_NotFound(t *testing.T) {
	loader := roadmap.NewLoader(setupSchedule(t))

	for _, n := range []int{0, -1, 3, 50} {
		_, err := loader.Day(n)
		require.ErrorIs(t, err, roadmap.ErrDayNotFound, "day %d", n)
	}
}

func TestLoader_Days(t *testing.T) {
	loader := roadmap.NewLoader(setupSchedule(t))

	numbers, err := loader.DayNumbers()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, numbers)

	plans, err := loader.Days()
	require.NoError(t, err)
	require.Len(t, plans, 3, "empty day-03 is skipped")
	assert.Equal(t, 1, plans[0].DayNumber)
	assert.Equal(t, 2, plans[1].DayNumber)
	assert.Equal(t, 4, plans[2].DayNumber)
}

func TestLoader_Days_MissingDirectory(t *testing.T) {
	loader := roadmap.NewLoader(filepath.Join(t.TempDir(), "nope"))

	_, err := loader.Days()
	require.Error(t, err)
}

func TestDayDir(t *testing.T) {
	assert.Equal(t, "day-01", roadmap.DayDir(1))
	assert.Equal(t, "day-75", roadmap.DayDir(75))
	assert.Equal(t, "day-100", roadmap.DayDir(100))
}
