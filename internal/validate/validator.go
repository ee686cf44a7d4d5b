// Package validate checks that every question corpus referenced by the
// roadmap has enough questions for each day that will request it.
package validate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/p-n-ai/pai-prep/internal/corpus"
	"github.com/p-n-ai/pai-prep/internal/roadmap"
	"github.com/p-n-ai/pai-prep/internal/schedule"
)

// Observer receives findings as they are discovered. Returning an error
// stops the run.
type Observer func(Finding) error

// Options bounds a validation run.
type Options struct {
	Days      int
	MinTopics int
}

// Validator runs the roadmap, corpus and selector in read-only mode.
type Validator struct {
	roadmap *roadmap.Loader
	corpus  *corpus.Loader
	policy  schedule.Policy
	opts    Options
}

func New(rl *roadmap.Loader, cl *corpus.Loader, policy schedule.Policy, opts Options) *Validator {
	return &Validator{roadmap: rl, corpus: cl, policy: policy, opts: opts}
}

// Run validates days 1 through Options.Days. Findings are passed to observe
// (which may be nil) in discovery order and collected in the report.
func (v *Validator) Run(ctx context.Context, observe Observer) (*Report, error) {
	r := &Report{
		Days:        v.opts.Days,
		MinTopics:   v.opts.MinTopics,
		MissingDays: []int{},
		FewTopics:   []DayTopics{},
		Coverage:    []Coverage{},
		Findings:    []Finding{},
	}
	emit := func(f Finding) error {
		r.Findings = append(r.Findings, f)
		if observe != nil {
			return observe(f)
		}
		return nil
	}

	index := make(map[string]int)
	for day := 1; day <= v.opts.Days; day++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		plan, err := v.roadmap.Day(day)
		if errors.Is(err, roadmap.ErrDayNotFound) {
			r.MissingDays = append(r.MissingDays, day)
			if err := emit(Finding{Kind: KindMissingDay, Day: day, Message: fmt.Sprintf("day %d has no roadmap file", day)}); err != nil {
				return nil, err
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		r.Plans = append(r.Plans, plan)

		if len(plan.Topics) < v.opts.MinTopics {
			r.FewTopics = append(r.FewTopics, DayTopics{Day: day, Topics: len(plan.Topics)})
			if err := emit(Finding{
				Kind:    KindFewTopics,
				Day:     day,
				Message: fmt.Sprintf("day %d has %d topics, want at least %d", day, len(plan.Topics), v.opts.MinTopics),
			}); err != nil {
				return nil, err
			}
		}

		for _, t := range plan.AllTopics() {
			if t.ReferencePath == "" {
				if err := emit(Finding{Kind: KindMissingPath, Day: day, Topic: t.Name, Message: "topic has no path"}); err != nil {
					return nil, err
				}
				continue
			}

			ref := corpus.CleanRef(t.ReferencePath)
			i, seen := index[ref]
			if !seen {
				cov := v.inspect(ctx, t.Name, ref)
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				i = len(r.Coverage)
				index[ref] = i
				r.Coverage = append(r.Coverage, cov)
				if f, ok := statusFinding(cov, day); ok {
					if err := emit(f); err != nil {
						return nil, err
					}
				}
			}
			if quota, rule := v.policy.Lookup(t.Name, ref); quota > r.Coverage[i].Quota {
				r.Coverage[i].Quota, r.Coverage[i].Rule = quota, rule
			}
			if days := r.Coverage[i].Days; len(days) == 0 || days[len(days)-1] != day {
				r.Coverage[i].Days = append(r.Coverage[i].Days, day)
			}
		}
	}

	for i := range r.Coverage {
		for _, f := range v.finish(&r.Coverage[i]) {
			if err := emit(f); err != nil {
				return nil, err
			}
		}
	}

	slog.Info("validation finished",
		"days", r.Days,
		"corpora", len(r.Coverage),
		"findings", len(r.Findings),
		"failed", r.Failed(),
	)
	return r, nil
}

// inspect loads a corpus the first time it is referenced. The quota is
// raised later if another topic label for the same path maps to a larger
// one, so the corpus is judged against the heaviest day that can request it.
func (v *Validator) inspect(ctx context.Context, topic, ref string) Coverage {
	quota, rule := v.policy.Lookup(topic, ref)
	cov := Coverage{Path: ref, Topic: topic, Rule: rule, Quota: quota, Status: StatusOK}

	c, err := v.corpus.Load(ctx, ref)
	switch {
	case err == nil:
	case errors.Is(err, corpus.ErrEmpty):
		cov.Status = StatusEmpty
	default:
		if !errors.Is(err, corpus.ErrNotFound) && !errors.Is(err, corpus.ErrOutsideRoot) {
			slog.Warn("corpus unreadable", "path", ref, "error", err)
		}
		cov.Status = StatusMissing
		return cov
	}

	cov.Total = c.Len()
	cov.Duplicates = len(c.Duplicates)
	cov.Dropped = len(c.Dropped)
	return cov
}

func statusFinding(cov Coverage, day int) (Finding, bool) {
	switch cov.Status {
	case StatusMissing:
		return Finding{Kind: KindMissingFile, Day: day, Topic: cov.Topic, Path: cov.Path, Message: "corpus file not found"}, true
	case StatusEmpty:
		return Finding{Kind: KindEmptyCorpus, Day: day, Topic: cov.Topic, Path: cov.Path, Message: "corpus has no questions"}, true
	}
	return Finding{}, false
}

// finish fills in the day-dependent fields of a coverage entry once every
// day has been scanned and returns the findings it raises.
func (v *Validator) finish(cov *Coverage) []Finding {
	if len(cov.Days) == 0 {
		return nil
	}
	cov.MaxDay = cov.Days[len(cov.Days)-1]
	cov.CoverageMin = len(cov.Days) * cov.Quota
	cov.ProgressionMin = cov.MaxDay * cov.Quota
	cov.FreshDays = schedule.DaysToCover(cov.Quota, cov.Total)

	var findings []Finding
	if cov.Duplicates > 0 {
		findings = append(findings, Finding{
			Kind:    KindDuplicates,
			Topic:   cov.Topic,
			Path:    cov.Path,
			Message: fmt.Sprintf("%d duplicate questions", cov.Duplicates),
		})
	}
	if cov.Status != StatusOK {
		return findings
	}

	if cov.Total < cov.ProgressionMin {
		cov.Status = StatusLow
		findings = append(findings, Finding{
			Kind:    KindLowCoverage,
			Day:     cov.MaxDay,
			Topic:   cov.Topic,
			Path:    cov.Path,
			Message: fmt.Sprintf("%d questions, need %d for day %d at %d per day", cov.Total, cov.ProgressionMin, cov.MaxDay, cov.Quota),
		})
	}
	cov.Samples = samples(cov)
	return findings
}

// samples returns the windows for the first three days that use the corpus
// and the last one.
func samples(cov *Coverage) []Sample {
	days := slices.Clone(cov.Days[:min(3, len(cov.Days))])
	if last := cov.MaxDay; !slices.Contains(days, last) {
		days = append(days, last)
	}

	out := make([]Sample, 0, len(days))
	for _, d := range days {
		w, err := schedule.Select(d, cov.Quota, cov.Total)
		if err != nil || w.Count == 0 {
			continue
		}
		first, last := w.Range()
		out = append(out, Sample{Day: d, First: first, Last: last, Count: w.Count, Wraps: w.Wraps()})
	}
	return out
}
