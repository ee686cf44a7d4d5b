// Package progress records checklist progress submitted by learners.
package progress

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Event is one progress submission.
type Event struct {
	UserID    string         `json:"userId"`
	Day       int            `json:"day,omitempty"`
	Progress  map[string]any `json:"progress"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Recorder defines progress recording behavior.
type Recorder interface {
	Record(event Event) error
}

func validate(event Event) error {
	if event.UserID == "" {
		return fmt.Errorf("userId is required")
	}
	if event.Day < 0 {
		return fmt.Errorf("day must not be negative")
	}
	return nil
}

// LogRecorder writes submissions to the structured log and keeps nothing.
type LogRecorder struct{}

func (LogRecorder) Record(event Event) error {
	if err := validate(event); err != nil {
		return err
	}
	slog.Info("progress saved",
		"user_id", event.UserID,
		"day", event.Day,
		"items", len(event.Progress),
	)
	return nil
}

// MemoryRecorder stores events in memory for tests.
type MemoryRecorder struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{
		events: []Event{},
	}
}

func (r *MemoryRecorder) Record(event Event) error {
	if err := validate(event); err != nil {
		return err
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()

	return nil
}

func (r *MemoryRecorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event{}, r.events...)
}
