package corpus

// Record is one question and its answer. Ordinal is the 0-based position of
// the record among the records emitted from the same corpus text.
type Record struct {
	Ordinal int    `json:"ordinal"`
	Prompt  string `json:"question"`
	Answer  string `json:"answer"`
}

// Duplicate flags a record whose normalized prompt already appeared earlier
// in the same corpus.
type Duplicate struct {
	Ordinal      int    `json:"ordinal"`
	FirstOrdinal int    `json:"firstOrdinal"`
	Prompt       string `json:"prompt"`
}

// Corpus is the parsed form of one question file.
type Corpus struct {
	Records    []Record    `json:"records"`
	Duplicates []Duplicate `json:"duplicates,omitempty"`
	// Dropped lists prompts whose answers were too short to keep.
	Dropped []string `json:"dropped,omitempty"`
}

// Len returns the number of records.
func (c Corpus) Len() int {
	return len(c.Records)
}
