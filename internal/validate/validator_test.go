package validate_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p-n-ai/pai-prep/internal/corpus"
	"github.com/p-n-ai/pai-prep/internal/roadmap"
	"github.com/p-n-ai/pai-prep/internal/schedule"
	"github.com/p-n-ai/pai-prep/internal/validate"
)

func writeFile(t *testing.T, path, text string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
}

func numberedCorpus(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "### %d. Question %d\nAnswer number %d.\n\n", i, i, i)
	}
	return b.String()
}

// setupRoadmap builds four days:
//
//	day 1: logic (10 questions, 3/day) and closures (5 questions, default 2/day)
//	day 2: logic and a missing corpus
//	day 3: absent
//	day 4: logic, an empty corpus and a topic without a path
func setupRoadmap(t *testing.T) *validate.Validator {
	t.Helper()
	root := t.TempDir()
	sched := filepath.Join(root, "daily-schedule")

	writeFile(t, filepath.Join(root, "logic", "questions.md"), numberedCorpus(10))
	writeFile(t, filepath.Join(root, "javascript", "closures.md"), numberedCorpus(5)+"### 1. Question 1\nA repeated prompt.\n")
	writeFile(t, filepath.Join(root, "empty", "notes.md"), "# nothing here\n")

	writeFile(t, filepath.Join(sched, "day-01", "README.md"), strings.Join([]string{
		"# Day 1: Start",
		"## CORE TOPICS",
		"- [ ] **Logic Drills** Path: `../../logic/questions.md`",
		"- [ ] **Closures** Path: `javascript/closures.md`",
	}, "\n"))
	writeFile(t, filepath.Join(sched, "day-02", "topics.md"), strings.Join([]string{
		"## Core Topics",
		"### Logic Drills",
		"- **Path**: `logic/questions.md`",
		"### Unwritten",
		"- **Path**: `nowhere/questions.md`",
	}, "\n"))
	writeFile(t, filepath.Join(sched, "day-04", "README.md"), strings.Join([]string{
		"# Day 4: End",
		"## CORE TOPICS",
		"- [ ] **Logic Drills** Path: `logic/questions.md`",
		"- [ ] **Notes** Path: `empty/notes.md`",
		"- [ ] **Pathless**",
	}, "\n"))

	policy := schedule.Policy{Default: 2, Rules: []schedule.Rule{{Name: "logic", Match: []string{"logic"}, Quota: 3}}}
	return validate.New(roadmap.NewLoader(sched), corpus.NewLoader(root, nil), policy, validate.Options{Days: 4, MinTopics: 3})
}

func TestValidator_Run(t *testing.T) {
	v := setupRoadmap(t)

	var observed []validate.Finding
	report, err := v.Run(t.Context(), func(f validate.Finding) error {
		observed = append(observed, f)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, report.Findings, observed)
	assert.Equal(t, []int{3}, report.MissingDays)
	assert.Len(t, report.Plans, 3)
	assert.Equal(t, []validate.DayTopics{{Day: 1, Topics: 2}, {Day: 2, Topics: 2}}, report.FewTopics)

	require.Len(t, report.Coverage, 4)

	logic, ok := report.CoverageFor("logic/questions.md")
	require.True(t, ok)
	assert.Equal(t, "logic", logic.Rule)
	assert.Equal(t, 3, logic.Quota)
	assert.Equal(t, 10, logic.Total)
	assert.Equal(t, []int{1, 2, 4}, logic.Days)
	assert.Equal(t, 4, logic.MaxDay)
	assert.Equal(t, 9, logic.CoverageMin)
	assert.Equal(t, 12, logic.ProgressionMin)
	assert.Equal(t, 4, logic.FreshDays)
	assert.Equal(t, validate.StatusLow, logic.Status)
	assert.Equal(t, []validate.Sample{
		{Day: 1, First: 1, Last: 3, Count: 3},
		{Day: 2, First: 4, Last: 6, Count: 3},
		{Day: 4, First: 10, Last: 2, Count: 3, Wraps: true},
	}, logic.Samples)

	closures, ok := report.CoverageFor("javascript/closures.md")
	require.True(t, ok)
	assert.Equal(t, schedule.DefaultRule, closures.Rule)
	assert.Equal(t, 6, closures.Total)
	assert.Equal(t, 1, closures.Duplicates)
	assert.Equal(t, validate.StatusOK, closures.Status)

	missing, ok := report.CoverageFor("nowhere/questions.md")
	require.True(t, ok)
	assert.Equal(t, validate.StatusMissing, missing.Status)
	assert.Equal(t, []int{2}, missing.Days)

	empty, ok := report.CoverageFor("empty/notes.md")
	require.True(t, ok)
	assert.Equal(t, validate.StatusEmpty, empty.Status)

	kinds := make(map[validate.Kind]int)
	for _, f := range report.Findings {
		kinds[f.Kind]++
	}
	assert.Equal(t, map[validate.Kind]int{
		validate.KindMissingDay:  1,
		validate.KindFewTopics:   2,
		validate.KindMissingFile: 1,
		validate.KindEmptyCorpus: 1,
		validate.KindMissingPath: 1,
		validate.KindLowCoverage: 1,
		validate.KindDuplicates:  1,
	}, kinds)

	assert.True(t, report.Failed())
	s := report.Summary()
	assert.Equal(t, 1, s.MissingFiles)
	assert.Equal(t, 1, s.EmptyCorpora)
	assert.Equal(t, 1, s.LowCorpora)
	assert.Equal(t, 3, s.DaysFound)
}

func TestValidator_Run_Passing(t *testing.T) {
	root := t.TempDir()
	sched := filepath.Join(root, "schedule")
	writeFile(t, filepath.Join(root, "a.md"), numberedCorpus(6))
	for day := 1; day <= 3; day++ {
		writeFile(t, filepath.Join(sched, roadmap.DayDir(day), "README.md"),
			fmt.Sprintf("# Day %d: A\nCORE TOPICS\n- [ ] **A** Path: `a.md`\n", day))
	}

	v := validate.New(roadmap.NewLoader(sched), corpus.NewLoader(root, nil),
		schedule.Policy{Default: 2}, validate.Options{Days: 3, MinTopics: 1})

	report, err := v.Run(t.Context(), nil)
	require.NoError(t, err)
	assert.False(t, report.Failed())
	assert.Empty(t, report.Findings)
}

func TestValidator_Run_UsesLargestQuotaAcrossLabels(t *testing.T) {
	root := t.TempDir()
	sched := filepath.Join(root, "schedule")
	writeFile(t, filepath.Join(root, "shared.md"), numberedCorpus(5))
	writeFile(t, filepath.Join(sched, roadmap.DayDir(1), "README.md"),
		"# Day 1: A\nCORE TOPICS\n- [ ] **Warmup** Path: `shared.md`\n")
	writeFile(t, filepath.Join(sched, roadmap.DayDir(2), "README.md"),
		"# Day 2: B\nCORE TOPICS\n- [ ] **Logic Puzzles** Path: `shared.md`\n")

	policy := schedule.Policy{Default: 2, Rules: []schedule.Rule{{Name: "logic", Match: []string{"logic"}, Quota: 3}}}
	v := validate.New(roadmap.NewLoader(sched), corpus.NewLoader(root, nil), policy, validate.Options{Days: 2})

	report, err := v.Run(t.Context(), nil)
	require.NoError(t, err)

	cov, ok := report.CoverageFor("shared.md")
	require.True(t, ok)
	assert.Equal(t, "Warmup", cov.Topic)
	assert.Equal(t, "logic", cov.Rule)
	assert.Equal(t, 3, cov.Quota)
	assert.Equal(t, 6, cov.ProgressionMin)
	assert.Equal(t, 2, cov.FreshDays)
	assert.Equal(t, validate.StatusLow, cov.Status)
}

func TestValidator_Run_ObserverStops(t *testing.T) {
	v := setupRoadmap(t)
	stop := errors.New("client gone")

	_, err := v.Run(t.Context(), func(validate.Finding) error { return stop })
	require.ErrorIs(t, err, stop)
}

func TestValidator_Run_Cancelled(t *testing.T) {
	v := setupRoadmap(t)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := v.Run(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestReport_WriteText(t *testing.T) {
	v := setupRoadmap(t)
	report, err := v.Run(t.Context(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf))
	out := buf.String()

	assert.Contains(t, out, "nowhere/questions.md (days 2)")
	assert.Contains(t, out, "LOW")
	assert.Contains(t, out, "Day 1: 2 topics")
	assert.Contains(t, out, "day 4: questions 10-2 (wraps)")
	assert.Contains(t, out, "Missing files: 1")
	assert.Contains(t, out, "FRESH DAYS")
}
