package api

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"prosty-screening/internal/cv"
	"prosty-screening/internal/storage"
)

// maxUploadBytes caps multipart CV uploads.
const maxUploadBytes = 10 << 20

type UploadCandidateResponse struct {
	Success         bool               `json:"success"`
	Candidate       *storage.Candidate `json:"candidate"`
	TextLength      int                `json:"text_length"`
	EmbeddingQueued bool               `json:"embedding_queued"`
	ProcessingTime  string             `json:"processing_time"`
}

// UploadCandidateHandler adds a candidate to the pool from a CV file
// @Summary Upload candidate CV
// @Description Parses the CV, extracts name, email and skills, stores the candidate and queues its embedding
// @Tags candidates
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CV file (PDF, DOCX, DOC, RTF, ODT or TXT)"
// @Param workspace_id formData string false "Workspace the candidate belongs to"
// @Param name formData string false "Overrides the extracted name"
// @Success 201 {object} UploadCandidateResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/candidates/upload [post]
func (a *API) UploadCandidateHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	startTime := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1024)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.writeError(w, http.StatusBadRequest, "file too large or invalid (max 10MB)")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	if !cv.SupportedExtension(filepath.Ext(header.Filename)) {
		a.writeError(w, http.StatusBadRequest, "invalid file type (supported: PDF, DOCX, DOC, RTF, ODT, TXT)")
		return
	}

	wsID, err := a.optionalWorkspace(r.Context(), r.FormValue("workspace_id"), caller(r).Subject)
	if err != nil {
		a.fail(w, err, "failed to check workspace membership")
		return
	}

	parsed, err := a.cvParser.ParseFile(header.Filename, file)
	if err != nil {
		a.log.Error("failed to parse CV", zap.String("filename", header.Filename), zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "failed to parse CV")
		return
	}
	a.log.Debug("CV parsed", zap.String("filename", parsed.Filename), zap.Int("text_bytes", len(parsed.FullText)))

	profile := cv.ExtractProfile(parsed.FullText)
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		name = profile.Name
	}
	if name == "" {
		name = strings.TrimSuffix(parsed.Filename, parsed.FileType)
	}

	c := &storage.Candidate{
		WorkspaceID: wsID,
		Name:        name,
		Email:       profile.Email,
		Skills:      profile.Skills,
		ResumeText:  parsed.FullText,
		ResumePath:  parsed.FilePath,
	}
	if err := a.store.InsertCandidate(r.Context(), c); err != nil {
		a.fail(w, err, "failed to save candidate")
		return
	}

	queued := a.QueueEmbeddingJob(c.ID)
	a.log.Info("candidate uploaded",
		zap.String("candidate_id", c.ID),
		zap.Int("skills", len(c.Skills)),
		zap.Bool("embedding_queued", queued))

	a.writeJSON(w, http.StatusCreated, UploadCandidateResponse{
		Success:         true,
		Candidate:       c,
		TextLength:      len(parsed.FullText),
		EmbeddingQueued: queued,
		ProcessingTime:  time.Since(startTime).String(),
	})
}
