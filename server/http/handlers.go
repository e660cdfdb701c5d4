package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/recapkit/recap/internal/service"
	"github.com/recapkit/recap/store"
)

const maxUploadSize = 2 << 20 // multipart envelope around the 1MB transcript cap

type generateRequest struct {
	Transcript   string `json:"transcript"`
	CustomPrompt string `json:"customPrompt"`
}

type createRequest struct {
	Transcript   string `json:"transcript"`
	CustomPrompt string `json:"customPrompt"`
	Summary      string `json:"summary"`
	MeetingTitle string `json:"meetingTitle"`
}

// updateRequest keeps optional fields as pointers so a missing key
// (leave the stored value alone) stays distinct from an explicit
// empty string (clear the field).
type updateRequest struct {
	Id           string  `json:"id"`
	Summary      *string `json:"summary"`
	CustomPrompt *string `json:"customPrompt"`
	Transcript   *string `json:"transcript"`
	MeetingTitle *string `json:"meetingTitle"`
}

type sendRequest struct {
	Recipients   []string `json:"recipients"`
	Subject      string   `json:"subject"`
	Summary      string   `json:"summary"`
	MeetingTitle string   `json:"meetingTitle"`
}

type recordResponse struct {
	Id           string    `json:"id"`
	Transcript   string    `json:"transcript"`
	CustomPrompt string    `json:"customPrompt"`
	Summary      string    `json:"summary"`
	MeetingTitle string    `json:"meetingTitle"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toRecordResponse(rec *store.Record) recordResponse {
	return recordResponse{
		Id:           rec.Id,
		Transcript:   rec.Transcript,
		CustomPrompt: rec.CustomPrompt,
		Summary:      rec.Summary,
		MeetingTitle: rec.MeetingTitle,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

func (s *httpServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	summary, err := s.app.GenerateSummary(r.Context(), req.Transcript, req.CustomPrompt)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"summary": summary})
}

func (s *httpServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	id, err := s.app.SaveSummary(r.Context(), req.Transcript, req.CustomPrompt, req.Summary, req.MeetingTitle)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": id})
}

func (s *httpServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if len(req.Id) == 0 {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	fields := store.Fields{
		Summary:      store.FromPtr(req.Summary),
		CustomPrompt: store.FromPtr(req.CustomPrompt),
		Transcript:   store.FromPtr(req.Transcript),
		MeetingTitle: store.FromPtr(req.MeetingTitle),
	}

	rec, err := s.app.UpdateSummary(r.Context(), req.Id, fields)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"updatedFields": toRecordResponse(rec),
	})
}

func (s *httpServer) handleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	rec, err := s.app.GetSummary(r.Context(), id)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(rec))
}

func (s *httpServer) handleSend(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := s.app.SendSummary(r.Context(), req.Recipients, req.Subject, req.Summary, req.MeetingTitle); err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *httpServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "transcript file is required")
		return
	}
	defer file.Close()

	transcript, err := s.app.ReadTranscript(header.Filename, r.FormValue("meetingTitle"), file)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"transcript":   transcript.Text,
		"meetingTitle": transcript.MeetingTitle,
		"characters":   len(transcript.Text),
	})
}

func (s *httpServer) handleTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"templates": s.app.Templates()})
}

func (s *httpServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// writeFailure maps the service failure taxonomy onto status codes.
// Validation detail is safe to echo; collaborator failures are
// already reduced to their generic category by the services.
func writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrInvalidId), errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
