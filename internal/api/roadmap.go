package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/p-n-ai/pai-prep/internal/quiz"
)

func (h *Handler) handleDays(w http.ResponseWriter, r *http.Request) {
	days, err := h.quiz.Days()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, map[string]any{"count": len(days), "days": days})
}

func (h *Handler) handleDay(w http.ResponseWriter, r *http.Request) {
	day, ok := pathDay(w, r)
	if !ok {
		return
	}
	plan, err := h.quiz.Day(day)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, plan)
}

func (h *Handler) handleDayQuiz(w http.ResponseWriter, r *http.Request) {
	day, ok := pathDay(w, r)
	if !ok {
		return
	}
	quizzes, err := h.quiz.DayQuiz(r.Context(), day)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, map[string]any{"dayNumber": day, "corpora": quizzes})
}

func (h *Handler) handleQuestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := quiz.QuestionsRequest{
		Path:  strings.TrimSpace(q.Get("path")),
		Topic: strings.TrimSpace(q.Get("topic")),
	}
	if req.Path == "" {
		writeFailure(w, http.StatusBadRequest, CodeBadRequest, "path parameter is required")
		return
	}

	if v := q.Get("day"); v != "" {
		day, err := strconv.Atoi(v)
		if err != nil || day < 1 {
			writeFailure(w, http.StatusBadRequest, CodeBadRequest, "day must be a positive integer")
			return
		}
		req.Day = day
	}

	switch v := strings.ToLower(q.Get("count")); v {
	case "":
	case "all":
		req.Count = quiz.CountAll
	default:
		count, err := strconv.Atoi(v)
		if err != nil || count < 1 {
			writeFailure(w, http.StatusBadRequest, CodeBadRequest, `count must be a positive integer or "all"`)
			return
		}
		req.Count = count
	}

	sel, err := h.quiz.Questions(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, sel)
}

func pathDay(w http.ResponseWriter, r *http.Request) (int, bool) {
	day, err := strconv.Atoi(r.PathValue("day"))
	if err != nil || day < 1 {
		writeFailure(w, http.StatusBadRequest, CodeBadRequest, "day must be a positive integer")
		return 0, false
	}
	return day, true
}
