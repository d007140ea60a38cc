package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/db"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/ingestion"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/pipeline"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/ranking"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/server/middleware"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/types"
)

// multipartMemory is how much of an upload ParseMultipartForm keeps in memory.
const multipartMemory = 1 << 20

// QualityRequest is the body of POST /quality.
type QualityRequest struct {
	Text string `json:"text"`
}

// CandidateListResponse is the body of GET /jobs/{job_id}/candidates.
type CandidateListResponse struct {
	JobID      uuid.UUID      `json:"job_id"`
	Candidates []db.Candidate `json:"candidates"`
	Count      int            `json:"count"`
}

// handleParseCV extracts one uploaded CV. The response is the flat extraction result
// plus optional match, candidate_id and fell_back keys.
func (s *Server) handleParseCV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorFromErr(w, r, err)
			return
		}
		s.errorFromErr(w, r, &ErrValidation{Field: "file", Message: "expected multipart/form-data upload"})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorFromErr(w, r, &ErrValidation{Field: "file", Message: "file field is required"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorFromErr(w, r, fmt.Errorf("failed to read upload: %w", err))
		return
	}
	if len(data) == 0 {
		s.errorResponse(w, http.StatusBadRequest, ingestion.ErrEmptyDocument.Error())
		return
	}

	var jobID *uuid.UUID
	if raw := strings.TrimSpace(r.FormValue("job_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			s.errorFromErr(w, r, &ErrValidation{Field: "job_id", Message: "must be a UUID"})
			return
		}
		jobID = &id
	}

	req := types.JobRequirements{
		MandatorySkills: splitList(r.FormValue("mandatory")),
		PreferredSkills: splitList(r.FormValue("preferred")),
	}

	doc := types.NewDocument(data, header.Filename)
	outcome := pipeline.Run(r.Context(), s.extractor, doc, s.timeout)
	if outcome.Err != nil {
		if errors.Is(outcome.Err, ingestion.ErrEmptyDocument) {
			s.errorResponse(w, http.StatusBadRequest, ingestion.ErrEmptyDocument.Error())
			return
		}
		s.logger.Warn("extraction fell back to filename",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("filename", doc.Filename),
			zap.Error(outcome.Err))
	}

	body, err := flatten(outcome.Result)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	body["fell_back"] = outcome.FellBack

	var match *types.MatchResult
	if len(req.MandatorySkills) > 0 || len(req.PreferredSkills) > 0 {
		m := s.scorer.Score(outcome.Result.Skills, req)
		match = &m
		body["match"] = match
	}

	if s.store != nil && jobID != nil {
		input := db.NewCandidateInput(jobID, doc, outcome.Result, match)
		existing, err := s.store.FindCandidateByHash(r.Context(), *jobID, input.ContentHash)
		if err != nil {
			s.errorFromErr(w, r, err)
			return
		}
		if existing != nil {
			body["candidate_id"] = existing.ID
			body["duplicate"] = true
			s.jsonResponse(w, http.StatusOK, body)
			return
		}

		candidate, err := s.store.InsertCandidate(r.Context(), input)
		if err != nil {
			s.errorFromErr(w, r, err)
			return
		}
		body["candidate_id"] = candidate.ID
	}

	s.jsonResponse(w, http.StatusOK, body)
}

// handleScore scores a skill list against job requirements.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorFromErr(w, r, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.scorer.Score(req.Skills, req.Requirements))
}

// handleQuality rates the writing quality of CV text.
func (s *Server) handleQuality(w http.ResponseWriter, r *http.Request) {
	var req QualityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorFromErr(w, r, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.errorFromErr(w, r, &ErrValidation{Field: "text", Message: "text is required"})
		return
	}

	s.jsonResponse(w, http.StatusOK, ranking.AnalyzeQuality(req.Text))
}

// handleListCandidates lists stored candidates for a job, best match first.
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorFromErr(w, r, &ErrStoreUnavailable{})
		return
	}

	jobID, err := uuid.Parse(r.PathValue("job_id"))
	if err != nil {
		s.errorFromErr(w, r, &ErrValidation{Field: "job_id", Message: "must be a UUID"})
		return
	}

	candidates, err := s.store.ListCandidatesByJob(r.Context(), jobID)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	if candidates == nil {
		candidates = []db.Candidate{}
	}

	s.jsonResponse(w, http.StatusOK, CandidateListResponse{
		JobID:      jobID,
		Candidates: candidates,
		Count:      len(candidates),
	})
}

// flatten renders result through its wire form into a mutable map.
func flatten(result *types.ExtractionResult) (map[string]any, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return body, nil
}

// splitList parses a comma-separated form value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
