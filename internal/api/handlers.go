package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"meeting-analysis-service/internal/jobs"
)

type handler struct {
	orchestrator *jobs.Orchestrator
}

type processRequest struct {
	AudioPath    string `json:"audio_path"`
	TextFilePath string `json:"text_file_path,omitempty"`
}

type processResponse struct {
	Message string `json:"message"`
	JobID   string `json:"job_id"`
}

type statusResponse struct {
	Status jobs.Status `json:"status"`
	Error  string      `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// process accepts a submission and returns the job id immediately; the
// pipeline runs off this request's path.
func (h *handler) process(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	jobID, err := h.orchestrator.Submit(req.AudioPath, req.TextFilePath)
	switch {
	case errors.Is(err, jobs.ErrMissingAudioPath):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "audio_path is required"})
		return
	case errors.Is(err, jobs.ErrAudioNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, processResponse{
		Message: "Processing started",
		JobID:   jobID,
	})
}

func (h *handler) status(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	job, err := h.orchestrator.GetResult(jobID)
	if errors.Is(err, jobs.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "job not found"})
		return
	}

	resp := statusResponse{Status: job.Status}
	if job.Status == jobs.StatusFailed {
		resp.Error = job.Error
	}
	writeJSON(w, http.StatusOK, resp)
}

// result returns the full analysis once a job completes. Jobs that are still
// running or failed map to 400 with the current status, matching the polling
// contract.
func (h *handler) result(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	job, err := h.orchestrator.GetResult(jobID)
	if errors.Is(err, jobs.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "job not found"})
		return
	}

	if job.Status != jobs.StatusCompleted {
		resp := statusResponse{Status: job.Status, Error: job.Error}
		if resp.Error == "" {
			resp.Error = "job is still processing"
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	writeJSON(w, http.StatusOK, job)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
