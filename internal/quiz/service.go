// Package quiz answers roadmap and question queries by combining the day
// plans, the question corpora and the daily window selector.
package quiz

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/p-n-ai/pai-prep/internal/corpus"
	"github.com/p-n-ai/pai-prep/internal/roadmap"
	"github.com/p-n-ai/pai-prep/internal/schedule"
)

// CountAll requests the whole corpus regardless of day.
const CountAll = -1

// Config holds the service dependencies.
type Config struct {
	Roadmap *roadmap.Loader
	Corpus  *corpus.Loader
	Policy  schedule.Policy
}

// Service serves day plans and daily question selections.
type Service struct {
	roadmap *roadmap.Loader
	corpus  *corpus.Loader
	policy  schedule.Policy
}

func NewService(cfg Config) *Service {
	return &Service{
		roadmap: cfg.Roadmap,
		corpus:  cfg.Corpus,
		policy:  cfg.Policy,
	}
}

// Policy returns the quota policy in use.
func (s *Service) Policy() schedule.Policy {
	return s.policy
}

// Day returns the plan for day n.
func (s *Service) Day(n int) (roadmap.DayPlan, error) {
	return s.roadmap.Day(n)
}

// Days returns every day plan in the schedule.
func (s *Service) Days() ([]roadmap.DayPlan, error) {
	return s.roadmap.Days()
}

// QuestionsRequest selects questions from one corpus. Day zero means no
// day; Count zero means the policy quota for Topic and Path.
type QuestionsRequest struct {
	Path  string
	Topic string
	Day   int
	Count int
}

// Question is one selected question.
type Question struct {
	Ordinal  int    `json:"ordinal"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Selection is the result of a questions query.
type Selection struct {
	Path           string     `json:"path"`
	Topic          string     `json:"topic,omitempty"`
	DayNumber      int        `json:"dayNumber,omitempty"`
	Count          int        `json:"count"`
	TotalAvailable int        `json:"totalAvailable"`
	StartOrdinal   int        `json:"startOrdinal"`
	Wraps          bool       `json:"wraps"`
	Duplicates     int        `json:"duplicates"`
	Questions      []Question `json:"questions"`
}

// Questions loads the corpus at req.Path and returns the questions for
// req.Day. Without a day, or with CountAll, the whole corpus is returned.
func (s *Service) Questions(ctx context.Context, req QuestionsRequest) (Selection, error) {
	c, err := s.corpus.Load(ctx, req.Path)
	if err != nil {
		return Selection{}, err
	}

	sel := Selection{
		Path:           corpus.CleanRef(req.Path),
		Topic:          req.Topic,
		DayNumber:      req.Day,
		TotalAvailable: c.Len(),
		Duplicates:     len(c.Duplicates),
	}

	records := c.Records
	if req.Day != 0 && req.Count != CountAll {
		quota := req.Count
		if quota == 0 {
			quota = s.policy.QuotaFor(req.Topic, req.Path)
		}
		w, err := schedule.Select(req.Day, quota, c.Len())
		if err != nil {
			return Selection{}, fmt.Errorf("selecting questions for %s: %w", sel.Path, err)
		}
		records = schedule.Apply(c.Records, w)
		sel.StartOrdinal = w.Start
		sel.Wraps = w.Wraps()
	}

	sel.Questions = make([]Question, 0, len(records))
	for _, r := range records {
		sel.Questions = append(sel.Questions, Question{Ordinal: r.Ordinal, Question: r.Prompt, Answer: r.Answer})
	}
	sel.Count = len(sel.Questions)

	slog.Debug("questions selected",
		"path", sel.Path,
		"day", req.Day,
		"count", sel.Count,
		"total", sel.TotalAvailable,
	)
	return sel, nil
}

// TopicQuiz is the selection for one corpus on a day. Topics lists every
// topic label on the day that references the corpus.
type TopicQuiz struct {
	Topics    []string  `json:"topics"`
	Selection Selection `json:"selection"`
	Error     string    `json:"error,omitempty"`
}

// DayQuiz returns the day's question selections, one per distinct corpus
// referenced by the day's topics. Topics without a path are skipped;
// corpora that fail to load are reported inline.
func (s *Service) DayQuiz(ctx context.Context, n int) ([]TopicQuiz, error) {
	plan, err := s.roadmap.Day(n)
	if err != nil {
		return nil, err
	}

	var (
		out   []TopicQuiz
		index = make(map[string]int)
	)
	for _, t := range plan.AllTopics() {
		if t.ReferencePath == "" {
			continue
		}
		ref := corpus.CleanRef(t.ReferencePath)
		if i, ok := index[ref]; ok {
			out[i].Topics = append(out[i].Topics, t.Name)
			continue
		}
		index[ref] = len(out)

		q := TopicQuiz{Topics: []string{t.Name}}
		sel, err := s.Questions(ctx, QuestionsRequest{Path: t.ReferencePath, Topic: t.Name, Day: n})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			q.Error = err.Error()
			sel = Selection{Path: ref, Topic: t.Name, DayNumber: n, Questions: []Question{}}
		}
		q.Selection = sel
		out = append(out, q)
	}
	if out == nil {
		out = []TopicQuiz{}
	}
	return out, nil
}
