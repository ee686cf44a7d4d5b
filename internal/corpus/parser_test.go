package corpus_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p-n-ai/pai-prep/internal/corpus"
)

func TestParse_LanguageSubBlocks(t *testing.T) {
	text := strings.Join([]string{
		"# Data Structures",
		"",
		"### 1. What is a Stack?",
		"A stack is a last-in, first-out collection.",
		"",
		"### JavaScript",
		"```js",
		"const stack = [];",
		"```",
		"",
		"### Python",
		"```python",
		"stack = []",
		"```",
		"",
		"---",
		"",
		"### 2. What is a Queue?",
		"**Answer:** A first-in, first-out collection.",
	}, "\n")

	c := corpus.Parse(text)

	require.Len(t, c.Records, 2)
	stack := c.Records[0]
	assert.Equal(t, 0, stack.Ordinal)
	assert.Equal(t, "What is a Stack?", stack.Prompt)
	assert.Contains(t, stack.Answer, "last-in, first-out")
	assert.Contains(t, stack.Answer, "### JavaScript")
	assert.Contains(t, stack.Answer, "const stack = [];")
	assert.Contains(t, stack.Answer, "### Python")
	assert.Contains(t, stack.Answer, "stack = []")
	assert.NotContains(t, stack.Answer, "---")

	queue := c.Records[1]
	assert.Equal(t, 1, queue.Ordinal)
	assert.Equal(t, "What is a Queue?", queue.Prompt)
	assert.Equal(t, "A first-in, first-out collection.", queue.Answer)
	assert.Empty(t, c.Duplicates)
}

func TestParse_FencedCodeStaysInAnswer(t *testing.T) {
	text := strings.Join([]string{
		"### 1. What is an Array?",
		"A contiguous block of elements.",
		"",
		"### Python",
		"```python",
		"# Array - Best for random access",
		"arr = [1, 2, 3]",
		"## not a section either",
		"---",
		"### 2. Nor a question",
		"```",
		"",
		"---",
		"",
		"### 2. What is a List?",
		"A linked sequence of nodes.",
	}, "\n")

	c := corpus.Parse(text)

	require.Len(t, c.Records, 2)
	array := c.Records[0]
	assert.Equal(t, "What is an Array?", array.Prompt)
	assert.Contains(t, array.Answer, "# Array - Best for random access")
	assert.Contains(t, array.Answer, "arr = [1, 2, 3]")
	assert.Contains(t, array.Answer, "### 2. Nor a question")
	assert.True(t, strings.HasSuffix(array.Answer, "```"), "answer should end with the closing fence: %q", array.Answer)
	assert.Equal(t, "What is a List?", c.Records[1].Prompt)
}

func TestParse_Boundaries(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantPrompts []string
		wantAnswers []string
	}{
		{
			name:        "next question closes previous",
			text:        "### One\nfirst answer\n### Two\nsecond answer",
			wantPrompts: []string{"One", "Two"},
			wantAnswers: []string{"first answer", "second answer"},
		},
		{
			name:        "second level heading closes",
			text:        "### One\nfirst answer\n## Next Chapter\nstray text\n### Two\nsecond answer",
			wantPrompts: []string{"One", "Two"},
			wantAnswers: []string{"first answer", "second answer"},
		},
		{
			name:        "first level heading closes",
			text:        "### One\nfirst answer\n# Part Two\nstray text",
			wantPrompts: []string{"One"},
			wantAnswers: []string{"first answer"},
		},
		{
			name:        "deeper headings stay in answer",
			text:        "### One\nintro\n#### Details\nmore",
			wantPrompts: []string{"One"},
			wantAnswers: []string{"intro\n#### Details\nmore"},
		},
		{
			name:        "answer label stripped case-insensitively",
			text:        "### One\n**answer:**   the answer",
			wantPrompts: []string{"One"},
			wantAnswers: []string{"the answer"},
		},
		{
			name:        "numbered heading prefix removed",
			text:        "###   12.   Closures\nfunctions with captured scope",
			wantPrompts: []string{"Closures"},
			wantAnswers: []string{"functions with captured scope"},
		},
		{
			name:        "carriage returns normalized",
			text:        "### One\r\nline a\r\nline b\r### Two\rline c!",
			wantPrompts: []string{"One", "Two"},
			wantAnswers: []string{"line a\nline b", "line c!"},
		},
		{
			name:        "language heading before any question is ignored",
			text:        "### Go\nfunc main() {}\n### One\nan answer",
			wantPrompts: []string{"One"},
			wantAnswers: []string{"an answer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := corpus.Parse(tt.text)
			require.Len(t, c.Records, len(tt.wantPrompts))
			for i, r := range c.Records {
				assert.Equal(t, i, r.Ordinal)
				assert.Equal(t, tt.wantPrompts[i], r.Prompt)
				assert.Equal(t, tt.wantAnswers[i], r.Answer)
			}
		})
	}
}

func TestParse_ShortAnswersDropped(t *testing.T) {
	text := "### Empty\n\n### Tiny\nabc\n### Kept\nabcd\n### Label only\n**Answer:**\n"

	c := corpus.Parse(text)

	require.Len(t, c.Records, 1)
	assert.Equal(t, "Kept", c.Records[0].Prompt)
	assert.Equal(t, 0, c.Records[0].Ordinal)
	assert.Equal(t, []string{"Empty", "Tiny", "Label only"}, c.Dropped)
}

func TestParse_MultibyteAnswerLength(t *testing.T) {
	c := corpus.Parse("### Unicode\nàéî\n### Longer\nàéîõ")
	require.Len(t, c.Records, 1)
	assert.Equal(t, "Longer", c.Records[0].Prompt)
}

func TestParse_Duplicates(t *testing.T) {
	text := "### What is a Closure?\nfirst version\n### Arrays\nlist of things\n###  what is a closure?  \nsecond version"

	c := corpus.Parse(text)

	require.Len(t, c.Records, 3)
	require.Len(t, c.Duplicates, 1)
	assert.Equal(t, corpus.Duplicate{Ordinal: 2, FirstOrdinal: 0, Prompt: "what is a closure?"}, c.Duplicates[0])
}

func TestParse_Empty(t *testing.T) {
	for _, text := range []string{"", "# Title only\n\nsome prose", "---\n---"} {
		c := corpus.Parse(text)
		assert.NotNil(t, c.Records)
		assert.Zero(t, c.Len())
	}
}

func TestParse_Deterministic(t *testing.T) {
	text := "### A\nanswer one\n### B\nanswer two\n### A\nanswer three"
	assert.Equal(t, corpus.Parse(text), corpus.Parse(text))
}

func TestIsLanguageLabel(t *testing.T) {
	assert.True(t, corpus.IsLanguageLabel("C#"))
	assert.True(t, corpus.IsLanguageLabel(" Rust "))
	assert.False(t, corpus.IsLanguageLabel("Golang"))
	assert.False(t, corpus.IsLanguageLabel("python"))
}
