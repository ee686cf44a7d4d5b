package corpus

import (
	"strings"
)

// SourceFile is one standalone question file, such as questions/two-sum.md.
type SourceFile struct {
	Name string
	Text string
}

// Consolidate merges standalone question files into a single corpus text
// that Parse understands. Each file contributes one question titled by its
// "# " heading. The answer is its "## Approach" section followed by its
// "## Solution" section, each labelled; files with neither contribute their
// whole body. Files without a title are skipped.
func Consolidate(files []SourceFile) string {
	var b strings.Builder
	for _, f := range files {
		title, answer := consolidateFile(f.Text)
		if title == "" {
			continue
		}
		b.WriteString("### ")
		b.WriteString(title)
		b.WriteString("\n")
		if answer != "" {
			b.WriteString("**Answer:**\n")
			b.WriteString(answer)
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

// IsExplanationFile reports whether a question file holds supplementary
// notes rather than a question.
func IsExplanationFile(name string) bool {
	return strings.Contains(strings.ToLower(name), "explanation")
}

type fileSection int

const (
	sectionOther fileSection = iota
	sectionApproach
	sectionSolution
)

func consolidateFile(text string) (title, answer string) {
	lines := splitLines(text)

	var (
		inFence  bool
		titleAt  = -1
		section  = sectionOther
		approach []string
		solution []string
	)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isFence(trimmed) {
			inFence = !inFence
		} else if !inFence {
			switch {
			case strings.HasPrefix(line, "# ") && title == "":
				title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
				titleAt = i
				continue
			case strings.HasPrefix(line, "## Approach"):
				section = sectionApproach
				approach = approach[:0]
				continue
			case strings.HasPrefix(line, "## Solution"):
				section = sectionSolution
				solution = solution[:0]
				continue
			case strings.HasPrefix(line, "## "):
				section = sectionOther
				continue
			}
		}
		if trimmed == "" {
			continue
		}
		switch section {
		case sectionApproach:
			approach = append(approach, line)
		case sectionSolution:
			solution = append(solution, line)
		}
	}

	if title == "" {
		return "", ""
	}

	var parts []string
	if len(approach) > 0 {
		parts = append(parts, "**Approach:**\n"+demoteHeadings(strings.Join(approach, "\n")))
	}
	if len(solution) > 0 {
		parts = append(parts, "**Solution:**\n"+demoteHeadings(strings.Join(solution, "\n")))
	}
	if len(parts) > 0 {
		return title, strings.Join(parts, "\n\n")
	}

	body := strings.Join(lines[titleAt+1:], "\n")
	return title, demoteHeadings(strings.TrimSpace(body))
}

// demoteHeadings pushes headings in a file body below the question level so
// Parse keeps them inside the answer. Fenced code is left alone.
func demoteHeadings(body string) string {
	lines := strings.Split(body, "\n")
	inFence := false
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if isFence(trimmed) {
			inFence = !inFence
			continue
		}
		if !inFence && strings.HasPrefix(trimmed, "#") {
			lines[i] = "###" + trimmed
		}
	}
	return strings.Join(lines, "\n")
}
