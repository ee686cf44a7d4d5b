package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/p-n-ai/pai-prep/internal/progress"
)

func (h *Handler) handleSlides(w http.ResponseWriter, r *http.Request) {
	all := h.slides.All()
	writeData(w, map[string]any{"count": len(all), "slides": all})
}

func (h *Handler) handleSlide(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, CodeBadRequest, "id must be an integer")
		return
	}
	slide, ok := h.slides.Get(id)
	if !ok {
		writeFailure(w, http.StatusNotFound, CodeNotFound, "slide not found")
		return
	}
	writeData(w, slide)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	writeData(w, h.slides.Stats())
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	var body progress.Event
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFailure(w, http.StatusBadRequest, CodeBadRequest, "invalid JSON body")
		return
	}
	body.CreatedAt = time.Time{}

	if err := h.progress.Record(body); err != nil {
		writeFailure(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Progress saved"})
}
