// Package api exposes the roadmap, question and validation services over
// HTTP with a JSON envelope.
package api

import (
	"context"
	"net/http"

	"github.com/p-n-ai/pai-prep/internal/progress"
	"github.com/p-n-ai/pai-prep/internal/quiz"
	"github.com/p-n-ai/pai-prep/internal/slides"
	"github.com/p-n-ai/pai-prep/internal/validate"
)

// Config holds handler dependencies. Slides, Progress and Ready are
// optional.
type Config struct {
	Quiz      *quiz.Service
	Validator *validate.Validator
	Slides    *slides.Deck
	Progress  progress.Recorder
	Ready     func(ctx context.Context) error
}

// Handler serves the HTTP API.
type Handler struct {
	quiz      *quiz.Service
	validator *validate.Validator
	slides    *slides.Deck
	progress  progress.Recorder
	ready     func(ctx context.Context) error
}

func New(cfg Config) *Handler {
	h := &Handler{
		quiz:      cfg.Quiz,
		validator: cfg.Validator,
		slides:    cfg.Slides,
		progress:  cfg.Progress,
		ready:     cfg.Ready,
	}
	if h.slides == nil {
		h.slides = slides.NewDeck(nil)
	}
	if h.progress == nil {
		h.progress = progress.LogRecorder{}
	}
	return h
}

// Routes returns the HTTP router wrapped with CORS handling.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.handleHealthz)
	mux.HandleFunc("GET /readyz", h.handleReadyz)

	mux.HandleFunc("GET /api/roadmap/days", h.handleDays)
	mux.HandleFunc("GET /api/roadmap/days/{day}", h.handleDay)
	mux.HandleFunc("GET /api/roadmap/days/{day}/quiz", h.handleDayQuiz)
	mux.HandleFunc("GET /api/questions", h.handleQuestions)

	mux.HandleFunc("GET /api/validate", h.handleValidate)
	mux.HandleFunc("GET /api/validate/stream", h.handleValidateStream)

	mux.HandleFunc("GET /api/slides", h.handleSlides)
	mux.HandleFunc("GET /api/slides/{id}", h.handleSlide)
	mux.HandleFunc("GET /api/stats", h.handleStats)
	mux.HandleFunc("POST /api/progress", h.handleProgress)

	return withCORS(mux)
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (h *Handler) handleReadyz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
