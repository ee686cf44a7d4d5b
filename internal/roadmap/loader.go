package roadmap

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// ErrDayNotFound is returned when a day has no roadmap file.
var ErrDayNotFound = errors.New("day not found")

const dayDirPrefix = "day-"

// Day files are tried in this order.
const (
	readmeFile = "README.md"
	topicsFile = "topics.md"
)

// Loader reads day plans from a schedule directory laid out as
// day-01/README.md, day-02/topics.md and so on.
type Loader struct {
	scheduleDir string
}

// NewLoader creates a roadmap loader for scheduleDir.
func NewLoader(scheduleDir string) *Loader {
	return &Loader{scheduleDir: scheduleDir}
}

// DayDir returns the directory name for a day number.
func DayDir(n int) string {
	return fmt.Sprintf("%s%02d", dayDirPrefix, n)
}

// Day loads and parses the plan for day n.
func (l *Loader) Day(n int) (DayPlan, error) {
	if n < 1 {
		return DayPlan{}, fmt.Errorf("%w: %d", ErrDayNotFound, n)
	}

	for _, dir := range []string{DayDir(n), dayDirPrefix + strconv.Itoa(n)} {
		dir = filepath.Join(l.scheduleDir, dir)

		plan, err := parseDayFile(filepath.Join(dir, readmeFile), ParseDayPlan)
		if errors.Is(err, fs.ErrNotExist) {
			plan, err = parseDayFile(filepath.Join(dir, topicsFile), ParseTopicsFile)
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return DayPlan{}, fmt.Errorf("reading day %d: %w", n, err)
		}

		if plan.DayNumber == 0 {
			plan.DayNumber = n
		}
		return plan, nil
	}
	return DayPlan{}, fmt.Errorf("%w: %d", ErrDayNotFound, n)
}

// Days loads every day directory in the schedule, ordered by day number.
// Days that fail to load are skipped.
func (l *Loader) Days() ([]DayPlan, error) {
	numbers, err := l.DayNumbers()
	if err != nil {
		return nil, err
	}

	plans := make([]DayPlan, 0, len(numbers))
	for _, n := range numbers {
		plan, err := l.Day(n)
		if err != nil {
			slog.Warn("skipping day", "day", n, "error", err)
			continue
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// DayNumbers lists the day numbers that have a directory in the schedule.
func (l *Loader) DayNumbers() ([]int, error) {
	entries, err := os.ReadDir(l.scheduleDir)
	if err != nil {
		return nil, fmt.Errorf("reading schedule directory: %w", err)
	}

	var numbers []int
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), dayDirPrefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(e.Name(), dayDirPrefix))
		if err != nil || n < 1 {
			continue
		}
		numbers = append(numbers, n)
	}
	slices.Sort(numbers)
	return slices.Compact(numbers), nil
}

func parseDayFile(path string, parse func(string) DayPlan) (DayPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DayPlan{}, err
	}
	return parse(string(data)), nil
}
