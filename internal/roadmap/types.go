package roadmap

// TopicRef is a study topic scheduled on a day. ReferencePath points at the
// question corpus for the topic and is empty when the roadmap gives none.
type TopicRef struct {
	Name          string `json:"name"`
	ReferencePath string `json:"path"`
	RawText       string `json:"text"`
	Completed     bool   `json:"completed"`
}

// ChecklistItem is a practice or completion task.
type ChecklistItem struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// DayPlan is the parsed form of one day of the roadmap. DayNumber is zero
// when the source has no day heading.
type DayPlan struct {
	DayNumber    int             `json:"dayNumber"`
	Level        string          `json:"level,omitempty"`
	Topics       []TopicRef      `json:"topics"`
	ExtraTopics  []TopicRef      `json:"extraTopics,omitempty"`
	CorePractice []ChecklistItem `json:"corePractice"`
	Completion   []ChecklistItem `json:"completion"`
}

// AllTopics returns core topics followed by extra topics.
func (d DayPlan) AllTopics() []TopicRef {
	out := make([]TopicRef, 0, len(d.Topics)+len(d.ExtraTopics))
	out = append(out, d.Topics...)
	return append(out, d.ExtraTopics...)
}

func newDayPlan() DayPlan {
	return DayPlan{
		Topics:       []TopicRef{},
		CorePractice: []ChecklistItem{},
		Completion:   []ChecklistItem{},
	}
}
