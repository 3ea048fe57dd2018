package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/resume-intel/internal/extract"
	"github.com/jonathan/resume-intel/internal/types"
)

// CompareRequest is the body of POST /analyze/compare.
type CompareRequest struct {
	Document       json.RawMessage `json:"document"`
	JobDescription string          `json:"job_description"`
}

// handleGapAnalysis reports the skill gap between the body's resume and the
// catalog role named by ?role=.
func (s *Server) handleGapAnalysis(w http.ResponseWriter, r *http.Request) {
	roleID, ok := s.roleParam(w, r)
	if !ok {
		return
	}
	doc, err := s.readDocument(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	gap, err := s.engine.GapAnalysis(r.Context(), doc, roleID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, gap)
}

// handleRoadmap plans the way from the body's resume to the role named by ?role=.
func (s *Server) handleRoadmap(w http.ResponseWriter, r *http.Request) {
	roleID, ok := s.roleParam(w, r)
	if !ok {
		return
	}
	doc, err := s.readDocument(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	roadmap, err := s.engine.Roadmap(r.Context(), doc, roleID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, roadmap)
}

// handleCompare checks a resume against a job description. The document
// field holds either a Document object or plain resume text.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	var req CompareRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		s.errorResponse(w, &ErrValidation{Field: "job_description", Message: "is required"})
		return
	}

	doc, err := compareDocument(r.URL.Query().Get("source"), req.Document)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	cmp, err := s.engine.Compare(r.Context(), doc, req.JobDescription)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, cmp)
}

// compareDocument reads the document field: a JSON string is resume text,
// an object is a Document.
func compareDocument(source string, raw json.RawMessage) (*types.Document, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, &ErrValidation{Field: "document", Message: "is required"}
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return extract.Parse(source, text), nil
	}
	doc, err := extract.Decode(source, "application/json", raw)
	if err != nil {
		return nil, &ErrValidation{Field: "document", Message: err.Error()}
	}
	return doc, nil
}

func (s *Server) roleParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	roleID := strings.TrimSpace(r.URL.Query().Get("role"))
	if roleID == "" {
		s.errorResponse(w, &ErrValidation{Field: "role", Message: "is required"})
		return "", false
	}
	return roleID, true
}
