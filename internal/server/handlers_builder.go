package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/persistence"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// SaveResponse reports the outcome of a best-effort save
type SaveResponse struct {
	Saved bool   `json:"saved"`
	Key   string `json:"key"`
}

// ValidationReport is returned by POST /api/resume/validate
type ValidationReport struct {
	Valid  bool               `json:"valid"`
	Issues []types.FieldIssue `json:"issues"`
}

// StepRequest moves the wizard. Step is "next", "previous" or a step name.
type StepRequest struct {
	Step string `json:"step"`
}

// TemplateRequest selects a template
type TemplateRequest struct {
	Template types.TemplateID `json:"template"`
}

// handleTemplates lists the available templates
func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"templates": types.Templates(),
		"default":   types.DefaultTemplate,
	})
}

// handleBuilder enters the builder: a shared resume in the query wins over
// the stored one, which wins over the empty default
func (s *Server) handleBuilder(w http.ResponseWriter, r *http.Request) {
	state := builder.Load(r.URL.Query(), s.codec)
	s.session.Reset(state)
	log.Printf("Builder loaded from %s with template %s", state.Source, state.Template)

	snapshot := s.session.Snapshot()
	snapshot.Source = state.Source
	s.jsonResponse(w, http.StatusOK, snapshot)
}

// handleGetResume returns the session resume
func (s *Server) handleGetResume(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.session.Resume())
}

// handlePutResume replaces the session resume. It is not persisted until saved.
func (s *Server) handlePutResume(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	data, err := persistence.Decode(raw)
	if err != nil {
		s.failureResponse(w, &ErrValidation{Field: "resume", Message: err.Error()})
		return
	}

	s.session.SetResume(data)
	s.jsonResponse(w, http.StatusOK, s.session.Resume())
}

// handleSaveResume writes the session resume to storage. Failures are logged
// and reported as saved=false, never as an error status.
func (s *Server) handleSaveResume(w http.ResponseWriter, _ *http.Request) {
	if !s.session.TryBegin(builder.OpSave) {
		s.failureResponse(w, &ErrBusy{Operation: builder.OpSave})
		return
	}
	defer s.session.End(builder.OpSave)

	saved := s.codec.SaveBestEffort(s.session.Resume())
	s.jsonResponse(w, http.StatusOK, SaveResponse{Saved: saved, Key: s.codec.Key()})
}

// handleValidateResume runs the opt-in field checks on the request body, or
// on the session resume when the body is empty
func (s *Server) handleValidateResume(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	data := s.session.Resume()
	if len(bytes.TrimSpace(raw)) > 0 {
		data, err = persistence.Decode(raw)
		if err != nil {
			s.failureResponse(w, &ErrValidation{Field: "resume", Message: err.Error()})
			return
		}
	}

	err = data.Validate()
	if err == nil {
		s.jsonResponse(w, http.StatusOK, ValidationReport{Valid: true, Issues: []types.FieldIssue{}})
		return
	}

	var verr *types.ValidationError
	if !errors.As(err, &verr) {
		s.failureResponse(w, err)
		return
	}
	s.jsonResponse(w, HTTPStatus(err), ValidationReport{Valid: false, Issues: verr.Issues})
}

// handleStep moves the wizard and returns the session state
func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	var req StepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	switch req.Step {
	case "next":
		s.session.Next()
	case "previous":
		s.session.Previous()
	default:
		step, err := builder.ParseStep(req.Step)
		if err != nil {
			s.failureResponse(w, &ErrValidation{Field: "step", Message: err.Error()})
			return
		}
		s.session.SetStep(step)
	}

	s.jsonResponse(w, http.StatusOK, s.session.Snapshot())
}

// handleShare returns a share link for the session resume. An optional body
// selects the template first.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	if !s.session.TryBegin(builder.OpShare) {
		s.failureResponse(w, &ErrBusy{Operation: builder.OpShare})
		return
	}
	defer s.session.End(builder.OpShare)

	var req TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Template != "" {
		if err := s.session.SetTemplate(req.Template); err != nil {
			s.failureResponse(w, &ErrValidation{Field: "template", Message: err.Error()})
			return
		}
	}

	result, err := s.sharer.Share(r.Context(), s.session.Resume(), s.session.Template())
	if err != nil {
		log.Printf("Error creating share link: %v", err)
		s.failureResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handlePreview renders the session resume as HTML. A template query
// parameter previews another layout without changing the session.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	id := s.session.Template()
	if q := r.URL.Query().Get("template"); q != "" {
		id = types.TemplateID(q)
	}

	var buf bytes.Buffer
	if err := rendering.RenderHTML(&buf, s.session.Resume(), id); err != nil {
		s.failureResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing preview: %v", err)
	}
}

// handleExportPDF prints the preview to PDF
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "PDF export is not configured")
		return
	}
	if !s.session.TryBegin(builder.OpExport) {
		s.failureResponse(w, &ErrBusy{Operation: builder.OpExport})
		return
	}
	defer s.session.End(builder.OpExport)

	resume := s.session.Resume()
	pdf, err := s.exporter.Resume(r.Context(), resume, s.session.Template())
	if err != nil {
		log.Printf("Error exporting PDF: %v", err)
		s.failureResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(resume)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("Error writing PDF: %v", err)
	}
}
