// Package corpus parses markdown question banks into ordered question records
// and loads them from a content root.
package corpus

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Answers must be longer than this many characters to be kept.
const minAnswerLen = 3

var (
	questionHeading = regexp.MustCompile(`^###\s+(?:\d+\.\s+)?(.+)$`)
	sectionHeading  = regexp.MustCompile(`^#{1,2}\s+`)
	answerLabel     = regexp.MustCompile(`(?i)^\*\*Answer:\*\*\s*`)
)

// languageLabels are third-level headings that introduce an implementation
// block inside an answer rather than a new question.
var languageLabels = map[string]bool{
	"JavaScript": true,
	"Python":     true,
	"Java":       true,
	"TypeScript": true,
	"C++":        true,
	"C#":         true,
	"Go":         true,
	"Rust":       true,
}

// IsLanguageLabel reports whether a heading text names an implementation
// language sub-block.
func IsLanguageLabel(heading string) bool {
	return languageLabels[strings.TrimSpace(heading)]
}

// parser holds the state of a single Parse call.
type parser struct {
	fold cases.Caser

	open    bool
	inFence bool
	prompt  string
	answer  []string

	records []Record
	seen    map[string]int
	dups    []Duplicate
	dropped []string
}

// Parse splits markdown text into question records. A question opens at a
// "###" heading (optionally numbered) and runs until the next question
// heading, a "---" rule, a first or second level heading, or the end of the
// text. Headings naming a programming language stay inside the current
// answer, as does everything inside a ``` fence. Questions whose answer is three characters or fewer are dropped.
// Repeated prompts are kept and reported in Duplicates.
func Parse(text string) Corpus {
	p := &parser{
		fold: cases.Fold(),
		seen: make(map[string]int),
	}
	for _, line := range splitLines(text) {
		p.line(line)
	}
	p.close()

	records := p.records
	if records == nil {
		records = []Record{}
	}
	return Corpus{Records: records, Duplicates: p.dups, Dropped: p.dropped}
}

func (p *parser) line(line string) {
	trimmed := strings.TrimSpace(line)

	if isFence(trimmed) {
		p.inFence = !p.inFence
		if p.open {
			p.answer = append(p.answer, line)
		}
		return
	}
	if p.inFence {
		if p.open {
			p.answer = append(p.answer, line)
		}
		return
	}

	if m := questionHeading.FindStringSubmatch(trimmed); m != nil {
		heading := strings.TrimSpace(m[1])
		if IsLanguageLabel(heading) {
			if p.open {
				p.answer = append(p.answer, line)
			}
			return
		}
		p.close()
		p.open = true
		p.prompt = heading
		return
	}

	if !p.open {
		return
	}
	if trimmed == "---" || sectionHeading.MatchString(trimmed) {
		p.close()
		return
	}
	p.answer = append(p.answer, line)
}

func (p *parser) close() {
	if !p.open {
		return
	}
	answer := strings.TrimSpace(strings.Join(p.answer, "\n"))
	answer = strings.TrimSpace(answerLabel.ReplaceAllString(answer, ""))

	if utf8.RuneCountInString(answer) > minAnswerLen {
		p.emit(p.prompt, answer)
	} else {
		p.dropped = append(p.dropped, p.prompt)
	}

	p.open = false
	p.prompt = ""
	p.answer = nil
}

func (p *parser) emit(prompt, answer string) {
	ordinal := len(p.records)
	p.records = append(p.records, Record{Ordinal: ordinal, Prompt: prompt, Answer: answer})

	key := p.fold.String(strings.TrimSpace(prompt))
	if first, ok := p.seen[key]; ok {
		p.dups = append(p.dups, Duplicate{Ordinal: ordinal, FirstOrdinal: first, Prompt: prompt})
		return
	}
	p.seen[key] = ordinal
}

func isFence(trimmed string) bool {
	return strings.HasPrefix(trimmed, "```")
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
