package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-intel/internal/extract"
	"github.com/jonathan/resume-intel/internal/pipeline"
	"github.com/jonathan/resume-intel/internal/types"
)

const (
	defaultListLimit = 20
	maxListLimit     = 200
)

// BatchRequest is the body of POST /analyze/batch.
type BatchRequest struct {
	Documents []types.Document `json:"documents"`
}

// BatchResponse is the reply to POST /analyze/batch.
type BatchResponse struct {
	Results []*types.AnalysisResult `json:"results"`
}

// handleAnalyze analyzes one document. A text/plain or text/html body is
// split into sections; otherwise the body is a JSON Document. ?save=true stores the result.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readDocument(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	save := wantsSave(r)
	if save && s.store == nil {
		s.errorResponse(w, ErrStoreDisabled)
		return
	}

	result, err := s.engine.Analyze(r.Context(), doc)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	if save {
		if err := s.store.SaveAnalysis(r.Context(), result); err != nil {
			s.errorResponse(w, err)
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleAnalyzeStream streams progress as "step" events and finishes with a
// "result" event holding the AnalysisResult.
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readDocument(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	engine := s.engine.Observe(func(event pipeline.ProgressEvent) {
		if event.Step == pipeline.StepComplete {
			return
		}
		if err := sse.WriteEvent("step", event); err != nil {
			s.logger.Warn("writing SSE event", zap.Error(err))
		}
	})

	result, err := engine.Analyze(r.Context(), doc)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	if err := sse.WriteEvent("result", result); err != nil {
		s.logger.Warn("writing SSE result", zap.Error(err))
	}
}

func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes*int64(s.maxBatchSize))

	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}
	if len(req.Documents) == 0 {
		s.errorResponse(w, &ErrValidation{Field: "documents", Message: "at least one document is required"})
		return
	}
	if len(req.Documents) > s.maxBatchSize {
		s.errorResponse(w, &ErrValidation{
			Field:   "documents",
			Message: fmt.Sprintf("at most %d documents per batch, got %d", s.maxBatchSize, len(req.Documents)),
		})
		return
	}
	save := wantsSave(r)
	if save && s.store == nil {
		s.errorResponse(w, ErrStoreDisabled)
		return
	}

	docs := make([]*types.Document, len(req.Documents))
	for i := range req.Documents {
		docs[i] = extract.Prepare(&req.Documents[i])
	}

	results, err := s.engine.AnalyzeBatch(r.Context(), docs)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	if save {
		for _, result := range results {
			if err := s.store.SaveAnalysis(r.Context(), result); err != nil {
				s.errorResponse(w, err)
				return
			}
		}
	}

	s.jsonResponse(w, http.StatusOK, BatchResponse{Results: results})
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, ErrStoreDisabled)
		return
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListLimit {
			s.errorResponse(w, &ErrValidation{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", maxListLimit)})
			return
		}
		limit = n
	}

	summaries, err := s.store.ListAnalyses(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"analyses": summaries, "count": len(summaries)})
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := s.analysisID(w, r)
	if !ok {
		return
	}

	result, err := s.store.GetAnalysis(r.Context(), id)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if result == nil {
		s.errorResponse(w, &ErrNotFound{ID: raw})
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := s.analysisID(w, r)
	if !ok {
		return
	}

	deleted, err := s.store.DeleteAnalysis(r.Context(), id)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if !deleted {
		s.errorResponse(w, &ErrNotFound{ID: raw})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// analysisID checks the store and parses the {id} path value, answering the
// request itself when either fails.
func (s *Server) analysisID(w http.ResponseWriter, r *http.Request) (uuid.UUID, string, bool) {
	if s.store == nil {
		s.errorResponse(w, ErrStoreDisabled)
		return uuid.Nil, "", false
	}

	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "id", Message: "not a valid UUID"})
		return uuid.Nil, raw, false
	}
	return id, raw, true
}

// readDocument decodes the request body into a prepared document.
func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) (*types.Document, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}

	if contentType := r.Header.Get("Content-Type"); strings.HasPrefix(contentType, "text/") {
		doc, err := extract.Decode(r.URL.Query().Get("source"), contentType, body)
		if err != nil {
			return nil, &ErrValidation{Field: "body", Message: err.Error()}
		}
		return doc, nil
	}

	var doc types.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &ErrValidation{Field: "body", Message: "invalid JSON document: " + err.Error()}
	}
	return extract.Prepare(&doc), nil
}

func wantsSave(r *http.Request) bool {
	save, _ := strconv.ParseBool(r.URL.Query().Get("save"))
	return save
}
