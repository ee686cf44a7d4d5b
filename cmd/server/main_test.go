package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/p-n-ai/pai-prep/internal/app"
	"github.com/p-n-ai/pai-prep/internal/platform/config"
	"github.com/p-n-ai/pai-prep/internal/slides"
)

func TestHealthEndpoints(t *testing.T) {
	root := t.TempDir()
	a, err := app.New(t.Context(), &config.Config{
		Content: config.ContentConfig{
			ScheduleDir: filepath.Join(root, "daily-schedule"),
			CorpusRoot:  root,
		},
		Schedule: config.ScheduleConfig{Days: 1},
	})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}
	defer a.Close()

	handler := newHandler(a, slides.NewDeck(nil))

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "healthz returns 200",
			path:       "/healthz",
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok"}`,
		},
		{
			name:       "readyz returns 200",
			path:       "/readyz",
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ready"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestMissingScheduleIsServerError(t *testing.T) {
	root := t.TempDir()
	a, err := app.New(t.Context(), &config.Config{
		Content: config.ContentConfig{
			ScheduleDir: filepath.Join(root, "absent"),
			CorpusRoot:  root,
		},
		Schedule: config.ScheduleConfig{Days: 1},
	})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}
	defer a.Close()

	rec := httptest.NewRecorder()
	newHandler(a, slides.NewDeck(nil)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/roadmap/days", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
