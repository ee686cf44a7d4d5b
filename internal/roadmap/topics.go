package roadmap

import (
	"regexp"
	"strconv"
	"strings"
)

type topicGroup int

const (
	groupNone topicGroup = iota
	groupCore
	groupExtra
)

var (
	topicsDayHeading = regexp.MustCompile(`^# Day (\d+)`)
	topicHeading     = regexp.MustCompile(`^### (.+)$`)
	topicPathField   = regexp.MustCompile("(?:\\*\\*Path\\*\\*|Path):\\s*`([^`]+)`")
)

// topicsParser holds the state of one ParseTopicsFile call. pending is the
// topic whose heading has been seen but whose path has not.
type topicsParser struct {
	group   topicGroup
	pending *TopicRef
	plan    DayPlan
}

// ParseTopicsFile parses the per-day topics.md layout, where each topic is a
// "### Name" heading followed by a "**Path**:" line, grouped under "Core
// Topics" and "Extra Topics" sections.
func ParseTopicsFile(text string) DayPlan {
	p := &topicsParser{plan: newDayPlan()}
	for _, line := range splitLines(text) {
		p.step(line)
	}
	p.flush()
	return p.plan
}

func (p *topicsParser) step(line string) {
	if m := topicsDayHeading.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			p.plan.DayNumber = n
		}
	}
	if strings.Contains(line, "Level:") {
		if m := levelField.FindStringSubmatch(line); m != nil {
			p.plan.Level = strings.TrimSpace(m[1])
		}
	}

	switch {
	case strings.Contains(line, "Core Topics"):
		p.flush()
		p.group = groupCore
		return
	case strings.Contains(line, "Extra Topics"):
		p.flush()
		p.group = groupExtra
		return
	}

	if m := topicHeading.FindStringSubmatch(line); m != nil {
		p.flush()
		if p.group != groupNone {
			name := strings.TrimSpace(m[1])
			p.pending = &TopicRef{Name: name, RawText: name}
		}
		return
	}

	if p.pending != nil {
		if m := topicPathField.FindStringSubmatch(line); m != nil {
			p.pending.ReferencePath = m[1]
			p.pending.RawText = rawTopicText(p.pending.RawText, m[1])
			p.flush()
		}
	}
}

// flush files the pending topic under the current group.
func (p *topicsParser) flush() {
	if p.pending == nil {
		return
	}
	switch p.group {
	case groupCore:
		p.plan.Topics = append(p.plan.Topics, *p.pending)
	case groupExtra:
		p.plan.ExtraTopics = append(p.plan.ExtraTopics, *p.pending)
	}
	p.pending = nil
}
