package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"meeting-analysis-service/internal/jobs"
	"meeting-analysis-service/internal/models"
	"meeting-analysis-service/internal/service/analysis"
)

type stubTranscriber struct{}

func (stubTranscriber) Transcribe(_ context.Context, _ string) (string, []models.TranscriptChunk, error) {
	return "hello world", []models.TranscriptChunk{
		{Start: 0, End: 5, Text: "hello"},
		{Start: 5, End: 10, Text: "world"},
	}, nil
}

type stubDiarizer struct{}

func (stubDiarizer) Diarize(_ context.Context, _ string) ([]models.SpeakerSegment, error) {
	return []models.SpeakerSegment{
		{Speaker: "SPEAKER_00", Start: 0, End: 10},
	}, nil
}

type stubSummarizer struct{}

func (stubSummarizer) Summarize(_ context.Context, _ string, _ []models.AlignedSegment, _ string) (string, error) {
	return "greetings", nil
}

type stubClassifier struct{}

func (stubClassifier) Classify(_ context.Context, _ []models.AlignedSegment) (models.SentimentResult, error) {
	return models.SentimentResult{Overall: models.SentimentNeutral, Description: "neutral", Score: 0.5}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	analyzer := analysis.NewAnalyzer(stubSummarizer{}, stubClassifier{}, nil)
	orc := jobs.NewOrchestrator(jobs.NewMemoryStore(), stubTranscriber{}, stubDiarizer{}, analyzer, nil, nil, nil)
	srv := httptest.NewServer(NewRouter(orc, nil))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestProcess_MissingAudioPath(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/process", map[string]string{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	body := decode[map[string]string](t, resp)
	if body["error"] == "" {
		t.Error("expected an error message")
	}
}

func TestProcess_InvalidBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/process", "application/json", bytes.NewReader([]byte("{not json")))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestProcess_AudioNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/process", map[string]string{"audio_path": "/no/such/file.wav"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()

	// No job was allocated, so any fabricated id is unknown.
	statusResp, err := http.Get(srv.URL + "/api/status/fabricated-id")
	if err != nil {
		t.Fatal(err)
	}
	defer statusResp.Body.Close()
	if statusResp.StatusCode != http.StatusNotFound {
		t.Errorf("fabricated id status = %d, want 404", statusResp.StatusCode)
	}
}

func TestProcessStatusResult_FullLifecycle(t *testing.T) {
	srv := newTestServer(t)

	audio := filepath.Join(t.TempDir(), "meeting.wav")
	if err := os.WriteFile(audio, []byte("fake audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	resp := postJSON(t, srv.URL+"/api/process", map[string]string{"audio_path": audio})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("process status = %d, want 200", resp.StatusCode)
	}
	submitted := decode[map[string]string](t, resp)
	jobID := submitted["job_id"]
	if jobID == "" {
		t.Fatal("expected a job_id")
	}

	// Poll until completed.
	deadline := time.Now().Add(5 * time.Second)
	var status string
	for time.Now().Before(deadline) {
		sResp, err := http.Get(fmt.Sprintf("%s/api/status/%s", srv.URL, jobID))
		if err != nil {
			t.Fatal(err)
		}
		if sResp.StatusCode != http.StatusOK {
			t.Fatalf("status endpoint = %d, want 200", sResp.StatusCode)
		}
		body := decode[map[string]string](t, sResp)
		status = body["status"]
		if status == "completed" || status == "failed" {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if status != "completed" {
		t.Fatalf("job ended as %q", status)
	}

	rResp, err := http.Get(fmt.Sprintf("%s/api/result/%s", srv.URL, jobID))
	if err != nil {
		t.Fatal(err)
	}
	if rResp.StatusCode != http.StatusOK {
		t.Fatalf("result status = %d, want 200", rResp.StatusCode)
	}
	job := decode[jobs.Job](t, rResp)
	if job.Result == nil {
		t.Fatal("expected analysis payload")
	}
	if job.Result.Topic != "greetings" {
		t.Errorf("topic = %q", job.Result.Topic)
	}
	if len(job.Result.SpeakerStats) != 1 {
		t.Errorf("speaker stats = %+v", job.Result.SpeakerStats)
	}
}

func TestResult_UnknownAndIncomplete(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/result/nope")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown id result = %d, want 404", resp.StatusCode)
	}
}

func TestResult_NotCompletedReturns400(t *testing.T) {
	// Drive the handler directly with a store entry pinned in processing, so
	// the response for an unfinished job is deterministic.
	store := jobs.NewMemoryStore()
	store.Put("job-1", jobs.Job{ID: "job-1", Status: jobs.StatusProcessing})
	analyzer := analysis.NewAnalyzer(stubSummarizer{}, stubClassifier{}, nil)
	orc := jobs.NewOrchestrator(store, stubTranscriber{}, stubDiarizer{}, analyzer, nil, nil, nil)
	srv := httptest.NewServer(NewRouter(orc, nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/result/job-1")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	body := decode[map[string]string](t, resp)
	if body["status"] != "processing" {
		t.Errorf("status field = %q, want processing", body["status"])
	}

	// A failed job reports 400 with its error.
	store.Put("job-2", jobs.Job{ID: "job-2", Status: jobs.StatusFailed, Error: "transcription: boom"})
	resp2, err := http.Get(srv.URL + "/api/result/job-2")
	if err != nil {
		t.Fatal(err)
	}
	if resp2.StatusCode != http.StatusBadRequest {
		t.Fatalf("failed job status = %d, want 400", resp2.StatusCode)
	}
	body2 := decode[map[string]string](t, resp2)
	if body2["error"] != "transcription: boom" {
		t.Errorf("error = %q", body2["error"])
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s = %d, want 200", path, resp.StatusCode)
		}
	}
}
