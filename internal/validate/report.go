package validate

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/p-n-ai/pai-prep/internal/roadmap"
)

// Status is the coverage verdict for one corpus.
type Status string

const (
	StatusOK      Status = "OK"
	StatusLow     Status = "LOW"
	StatusEmpty   Status = "EMPTY"
	StatusMissing Status = "MISSING"
)

// Kind classifies a finding.
type Kind string

const (
	KindMissingDay  Kind = "missing_day"
	KindMissingPath Kind = "missing_path"
	KindMissingFile Kind = "missing_file"
	KindEmptyCorpus Kind = "empty_corpus"
	KindLowCoverage Kind = "low_coverage"
	KindDuplicates  Kind = "duplicates"
	KindFewTopics   Kind = "few_topics"
)

// Finding is one problem discovered while validating the roadmap.
type Finding struct {
	Kind    Kind   `json:"kind"`
	Day     int    `json:"day,omitempty"`
	Topic   string `json:"topic,omitempty"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// Sample is the window a corpus shows on one day, as 1-based ordinals.
type Sample struct {
	Day   int  `json:"day"`
	First int  `json:"first"`
	Last  int  `json:"last"`
	Count int  `json:"count"`
	Wraps bool `json:"wraps"`
}

// Coverage describes how well one corpus supports the days that use it.
type Coverage struct {
	Path       string `json:"path"`
	Topic      string `json:"topic"`
	Rule       string `json:"rule"`
	Quota      int    `json:"quota"`
	Total      int    `json:"total"`
	Duplicates int    `json:"duplicates"`
	Dropped    int    `json:"dropped"`
	Days       []int  `json:"days"`
	MaxDay     int    `json:"maxDay"`
	// CoverageMin is the record count needed for every day that uses the
	// corpus to see fresh questions: days used × quota.
	CoverageMin int `json:"coverageMin"`
	// ProgressionMin is the record count needed for the window of the last
	// day to stay clear of wraparound: max day × quota.
	ProgressionMin int `json:"progressionMin"`
	// FreshDays is how many consecutive days the corpus lasts at its quota
	// before questions repeat.
	FreshDays int      `json:"freshDays"`
	Status    Status   `json:"status"`
	Samples   []Sample `json:"samples,omitempty"`
}

// DayTopics is a day with fewer topics than required.
type DayTopics struct {
	Day    int `json:"day"`
	Topics int `json:"topics"`
}

// Report is the outcome of a validation run.
type Report struct {
	Days        int               `json:"days"`
	MinTopics   int               `json:"minTopics"`
	Plans       []roadmap.DayPlan `json:"-"`
	MissingDays []int             `json:"missingDays"`
	FewTopics   []DayTopics       `json:"fewTopics"`
	Coverage    []Coverage        `json:"coverage"`
	Findings    []Finding         `json:"findings"`
}

// Summary counts the report's problems.
type Summary struct {
	Days         int  `json:"days"`
	DaysFound    int  `json:"daysFound"`
	Corpora      int  `json:"corpora"`
	MissingDays  int  `json:"missingDays"`
	MissingFiles int  `json:"missingFiles"`
	EmptyCorpora int  `json:"emptyCorpora"`
	LowCorpora   int  `json:"lowCorpora"`
	FewTopics    int  `json:"fewTopics"`
	Failed       bool `json:"failed"`
}

// Failed reports whether any referenced corpus is missing, empty or too
// small for the days that use it.
func (r *Report) Failed() bool {
	for _, c := range r.Coverage {
		if c.Status != StatusOK {
			return true
		}
	}
	return false
}

// Summary returns problem counts for the report.
func (r *Report) Summary() Summary {
	s := Summary{
		Days:        r.Days,
		DaysFound:   len(r.Plans),
		Corpora:     len(r.Coverage),
		MissingDays: len(r.MissingDays),
		FewTopics:   len(r.FewTopics),
		Failed:      r.Failed(),
	}
	for _, c := range r.Coverage {
		switch c.Status {
		case StatusMissing:
			s.MissingFiles++
		case StatusEmpty:
			s.EmptyCorpora++
		case StatusLow:
			s.LowCorpora++
		}
	}
	return s
}

// CoverageFor returns the coverage entry for a cleaned reference path.
func (r *Report) CoverageFor(path string) (Coverage, bool) {
	for _, c := range r.Coverage {
		if c.Path == path {
			return c, true
		}
	}
	return Coverage{}, false
}

// WriteText renders the report for a terminal.
func (r *Report) WriteText(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "=== Schedule validation: days 1-%d ===\n\n", r.Days)

	b.WriteString("--- Missing corpus files ---\n")
	missing := r.byStatus(StatusMissing)
	if len(missing) == 0 {
		b.WriteString("OK: all topic paths exist.\n")
	}
	for _, c := range missing {
		fmt.Fprintf(&b, "  - %s (days %s)\n", c.Path, joinInts(c.Days))
	}
	b.WriteString("\n")

	b.WriteString("--- Question counts ---\n")
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tPATH\tTOTAL\tQUOTA\tDAYS\tMAX DAY\tMIN (DAYS)\tMIN (PROGRESSION)\tFRESH DAYS\tDUPES")
	for _, c := range r.Coverage {
		if c.Status == StatusMissing {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			c.Status, c.Path, c.Total, c.Quota, len(c.Days), c.MaxDay, c.CoverageMin, c.ProgressionMin, c.FreshDays, c.Duplicates)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "--- Days with fewer than %d topics ---\n", r.MinTopics)
	if len(r.FewTopics) == 0 {
		fmt.Fprintf(&b, "None. Every day has at least %d topics.\n", r.MinTopics)
	}
	for _, d := range r.FewTopics {
		fmt.Fprintf(&b, "  Day %d: %d topics\n", d.Day, d.Topics)
	}
	b.WriteString("\n")

	b.WriteString("--- Sample windows ---\n")
	for _, c := range r.Coverage {
		if len(c.Samples) == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %s\n", c.Path)
		for _, s := range c.Samples {
			wrap := ""
			if s.Wraps {
				wrap = " (wraps)"
			}
			fmt.Fprintf(&b, "    day %d: questions %d-%d%s\n", s.Day, s.First, s.Last, wrap)
		}
	}
	b.WriteString("\n")

	s := r.Summary()
	b.WriteString("--- Summary ---\n")
	fmt.Fprintf(&b, "Days found: %d/%d\n", s.DaysFound, s.Days)
	fmt.Fprintf(&b, "Missing files: %d\n", s.MissingFiles)
	fmt.Fprintf(&b, "Empty corpora: %d\n", s.EmptyCorpora)
	fmt.Fprintf(&b, "Corpora with low question count: %d\n", s.LowCorpora)
	fmt.Fprintf(&b, "Days with < %d topics: %d\n", r.MinTopics, s.FewTopics)

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Report) byStatus(status Status) []Coverage {
	var out []Coverage
	for _, c := range r.Coverage {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}
