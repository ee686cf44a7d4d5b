// Package roadmap parses the day-by-day study roadmap into structured day
// plans and loads them from the schedule directory.
package roadmap

import (
	"regexp"
	"strconv"
	"strings"
)

type section int

const (
	sectionNone section = iota
	sectionCorePractice
	sectionTopics
	sectionCompletion
)

// sectionMarkers are checked in order; the first marker contained in a line
// switches the section.
var sectionMarkers = []struct {
	marker  string
	section section
}{
	{"CORE PRACTICE", sectionCorePractice},
	{"CORE TOPICS", sectionTopics},
	{"Completion", sectionCompletion},
}

const checkboxMarker = "- [ ]"

var (
	dayHeading       = regexp.MustCompile(`^# Day (\d+):`)
	levelField       = regexp.MustCompile(`Level: (.*?)\|`)
	boldSpan         = regexp.MustCompile(`\*\*(.*?)\*\*`)
	pathField        = regexp.MustCompile("Path:\\s*`([^`]+)`")
	pathContinuation = regexp.MustCompile("^\\s+-\\s+Path:\\s*`([^`]+)`")
)

// dayParser holds the state of one ParseDayPlan call. last is the index of
// the most recently added topic, or -1 before the first one.
type dayParser struct {
	lines   []string
	section section
	plan    DayPlan
	last    int
}

// ParseDayPlan parses one day block of the roadmap README. It never fails:
// lines it does not recognize are ignored and missing fields stay empty.
func ParseDayPlan(text string) DayPlan {
	p := &dayParser{
		lines: splitLines(text),
		plan:  newDayPlan(),
		last:  -1,
	}
	for i := range p.lines {
		p.step(i)
	}
	return p.plan
}

func (p *dayParser) step(i int) {
	line := p.lines[i]

	for _, m := range sectionMarkers {
		if strings.Contains(line, m.marker) {
			p.section = m.section
			break
		}
	}

	switch {
	case isChecklist(line):
		p.checklist(i, checklistText(line))
	case p.section == sectionTopics:
		if m := pathContinuation.FindStringSubmatch(line); m != nil {
			p.continuePath(m[1])
		}
	}

	if strings.HasPrefix(line, "# Day") {
		if m := dayHeading.FindStringSubmatch(line); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				p.plan.DayNumber = n
			}
		}
	}
	if strings.Contains(line, "Level:") {
		if m := levelField.FindStringSubmatch(line); m != nil {
			p.plan.Level = strings.TrimSpace(m[1])
		}
	}
}

func (p *dayParser) checklist(i int, item string) {
	switch p.section {
	case sectionTopics:
		p.addTopic(i, item)
	case sectionCorePractice:
		p.plan.CorePractice = append(p.plan.CorePractice, ChecklistItem{Text: item})
	case sectionCompletion:
		p.plan.Completion = append(p.plan.Completion, ChecklistItem{Text: item})
	}
}

func (p *dayParser) addTopic(i int, item string) {
	name := item
	if m := boldSpan.FindStringSubmatch(item); m != nil {
		name = strings.TrimSpace(m[1])
	}

	path := ""
	if m := pathField.FindStringSubmatch(item); m != nil {
		path = m[1]
	} else {
		path = p.lookahead(i)
	}

	p.plan.Topics = append(p.plan.Topics, TopicRef{
		Name:          name,
		ReferencePath: path,
		RawText:       rawTopicText(item, path),
	})
	p.last = len(p.plan.Topics) - 1
}

// lookahead returns the path given on the line after a topic item. A
// following checklist item is a separate topic and is never consumed.
func (p *dayParser) lookahead(i int) string {
	if i+1 >= len(p.lines) {
		return ""
	}
	next := p.lines[i+1]
	if isChecklist(next) {
		return ""
	}
	if m := pathField.FindStringSubmatch(next); m != nil {
		return m[1]
	}
	return ""
}

// continuePath fills in the path of the last topic from an indented
// "- Path:" line. A path already found for the topic is kept.
func (p *dayParser) continuePath(path string) {
	if p.last < 0 {
		return
	}
	t := &p.plan.Topics[p.last]
	if t.ReferencePath != "" {
		return
	}
	t.ReferencePath = path
	t.RawText = rawTopicText(t.RawText, path)
}

func isChecklist(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), checkboxMarker)
}

func checklistText(line string) string {
	return strings.TrimSpace(strings.Replace(line, checkboxMarker, "", 1))
}

func rawTopicText(item, path string) string {
	if path == "" {
		return item
	}
	return item + "\n  - Path: `" + path + "`"
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
