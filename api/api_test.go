package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/tubedl/tubedl/config"
	"github.com/tubedl/tubedl/engine"
	"github.com/tubedl/tubedl/job"
	"github.com/tubedl/tubedl/processor"
	"github.com/tubedl/tubedl/progress"
)

var logger = log.New(os.Stderr, "[test-api] ", log.Ldate|log.Ltime)

type stubEngine struct {
	metaErr error
}

func (e *stubEngine) FetchMetadata(ctx context.Context, url string) (engine.Metadata, error) {
	if e.metaErr != nil {
		return engine.Metadata{}, e.metaErr
	}
	return engine.Metadata{Items: 1, Title: "clip"}, nil
}

func (e *stubEngine) Download(ctx context.Context, spec engine.Spec, hook func(engine.Event)) error {
	hook(engine.Event{Status: "finished"})
	return nil
}

func newTestAPI(t *testing.T, e engine.Engine) *API {
	t.Helper()

	cfg := config.Config{}
	cfg.Media.VideoDir = t.TempDir()
	cfg.Media.AudioDir = t.TempDir()
	cfg.Media.OutputTemplate = config.DefaultOutputTemplate
	cfg.Media.DiskHigh = 99
	cfg.Media.DiskLow = 95

	state := progress.NewState()
	p, err := processor.New(e, state, cfg, logger)
	if err != nil {
		t.Fatal(err)
	}
	return New(p, state, nil, "localhost", 8080, "", logger)
}

func TestHandleDownloadForm(t *testing.T) {
	as := newTestAPI(t, &stubEngine{})

	form := url.Values{}
	form.Set("url", "https://example.com/watch?v=1")
	form.Set("download_type", "video")
	form.Set("quality", "720")

	req := httptest.NewRequest("POST", "/download", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	as.handleDownload(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["id"] == "" {
		t.Error("Expected a job id in the response")
	}
}

func TestHandleDownloadJSON(t *testing.T) {
	as := newTestAPI(t, &stubEngine{})

	body := `{"url": "https://example.com/watch?v=1", "download_type": "audio", "quality": 320}`
	req := httptest.NewRequest("POST", "/download", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	as.handleDownload(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHandleDownloadValidation(t *testing.T) {
	as := newTestAPI(t, &stubEngine{})

	cases := map[string]string{
		"missing url":     `{"download_type": "video", "quality": 720}`,
		"invalid url":     `{"url": "not a url", "download_type": "video", "quality": 720}`,
		"invalid type":    `{"url": "https://example.com/v", "download_type": "document"}`,
		"invalid quality": `{"url": "https://example.com/v", "download_type": "video", "quality": 999}`,
		"kind mismatch":   `{"url": "https://example.com/v", "download_type": "video", "quality": 320}`,
	}

	for desc, body := range cases {
		req := httptest.NewRequest("POST", "/download", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		as.handleDownload(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d: %s", desc, w.Code, w.Body.String())
		}
	}
}

func TestHandleDownloadMetadataError(t *testing.T) {
	as := newTestAPI(t, &stubEngine{metaErr: errors.New("video unavailable")})

	body := `{"url": "https://example.com/v", "download_type": "video", "quality": 720}`
	req := httptest.NewRequest("POST", "/download", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	as.handleDownload(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "video unavailable") {
		t.Errorf("Expected the engine error surfaced, got: %s", w.Body.String())
	}
}

func TestHandleDownloadMethodNotAllowed(t *testing.T) {
	as := newTestAPI(t, &stubEngine{})

	req := httptest.NewRequest("GET", "/download", nil)
	w := httptest.NewRecorder()
	as.handleDownload(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", w.Code)
	}
}

func TestHandleProgress(t *testing.T) {
	as := newTestAPI(t, &stubEngine{})

	req := httptest.NewRequest("GET", "/progress", nil)
	w := httptest.NewRecorder()
	as.handleProgress(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %s", ct)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["progress"] != "0.0%" {
		t.Errorf("Expected progress 0.0%%, got %v", resp["progress"])
	}
	if resp["status"] != "idle" {
		t.Errorf("Expected status idle, got %v", resp["status"])
	}
}

func TestHandleProgressReflectsState(t *testing.T) {
	as := newTestAPI(t, &stubEngine{})
	as.State.Write(job.Snapshot{
		Percent: 42, Current: 2, Total: 5,
		Title: "mix", Status: job.StatusDownloading,
	})

	req := httptest.NewRequest("GET", "/progress", nil)
	w := httptest.NewRecorder()
	as.handleProgress(w, req)

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["progress"] != "42.0%" {
		t.Errorf("Expected 42.0%%, got %v", resp["progress"])
	}
	if resp["current"] != float64(2) || resp["total"] != float64(5) {
		t.Errorf("Expected 2/5, got %v/%v", resp["current"], resp["total"])
	}
	if resp["title"] != "mix" {
		t.Errorf("Expected title mix, got %v", resp["title"])
	}
}

func TestHandleProgressMethodNotAllowed(t *testing.T) {
	as := newTestAPI(t, &stubEngine{})

	req := httptest.NewRequest("POST", "/progress", nil)
	w := httptest.NewRecorder()
	as.handleProgress(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", w.Code)
	}
}

func TestHandleHistoryWithoutStorage(t *testing.T) {
	as := newTestAPI(t, &stubEngine{})

	req := httptest.NewRequest("GET", "/history", nil)
	w := httptest.NewRecorder()
	as.handleHistory(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("Expected an empty list, got %s", got)
	}
}

func TestHandleHistoryInvalidLimit(t *testing.T) {
	as := newTestAPI(t, &stubEngine{})

	for _, v := range []string{"0", "-3", "abc"} {
		req := httptest.NewRequest("GET", "/history?limit="+v, nil)
		w := httptest.NewRecorder()
		as.handleHistory(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: expected 400, got %d", v, w.Code)
		}
	}
}
