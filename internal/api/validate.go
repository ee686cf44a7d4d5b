package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/p-n-ai/pai-prep/internal/validate"
)

// streamMessage is one websocket frame of a validation stream.
type streamMessage struct {
	Type    string            `json:"type"`
	Finding *validate.Finding `json:"finding,omitempty"`
	Summary *validate.Summary `json:"summary,omitempty"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	report, err := h.validator.Run(r.Context(), nil)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, map[string]any{"summary": report.Summary(), "report": report})
}

// handleValidateStream runs a validation and pushes each finding to the
// client as it is found, followed by a summary frame.
func (h *Handler) handleValidateStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // same open CORS policy as the JSON API
	})
	if err != nil {
		slog.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	ctx := conn.CloseRead(r.Context())

	report, err := h.validator.Run(ctx, func(f validate.Finding) error {
		return wsjson.Write(ctx, conn, streamMessage{Type: "finding", Finding: &f})
	})
	if err != nil {
		if !errors.Is(err, ctx.Err()) {
			slog.Warn("validation stream aborted", "error", err)
		}
		conn.Close(websocket.StatusInternalError, "validation aborted")
		return
	}

	summary := report.Summary()
	if err := wsjson.Write(ctx, conn, streamMessage{Type: "summary", Summary: &summary}); err != nil {
		slog.Warn("writing validation summary failed", "error", err)
		return
	}
	conn.Close(websocket.StatusNormalClosure, "")
}
