package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/generation"
	"github.com/jonathan/resume-builder/internal/types"
)

// SummaryResponse is returned by POST /api/generate-summary
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// ExperienceResponse is returned by POST /api/generate-experience
type ExperienceResponse struct {
	Description string `json:"description"`
}

// SkillsResponse is returned by POST /api/generate-skills
type SkillsResponse struct {
	Skills []types.Skill `json:"skills"`
}

// AutofillComplete is the payload of the final autofill stream event
type AutofillComplete struct {
	Fields int               `json:"fields"`
	Failed int               `json:"failed"`
	Resume *types.ResumeData `json:"resume"`
}

// handleGenerateSummary drafts a professional summary
func (s *Server) handleGenerateSummary(w http.ResponseWriter, r *http.Request) {
	if !s.session.TryBegin(builder.OpGenerateSummary) {
		s.failureResponse(w, &ErrBusy{Operation: builder.OpGenerateSummary})
		return
	}
	defer s.session.End(builder.OpGenerateSummary)

	var req generation.SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	summary, err := s.generator.GenerateSummary(r.Context(), req)
	if err != nil {
		s.generationFailure(w, "summary", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, SummaryResponse{Summary: summary})
}

// handleGenerateExperience drafts a position description
func (s *Server) handleGenerateExperience(w http.ResponseWriter, r *http.Request) {
	if !s.session.TryBegin(builder.OpGenerateExperience) {
		s.failureResponse(w, &ErrBusy{Operation: builder.OpGenerateExperience})
		return
	}
	defer s.session.End(builder.OpGenerateExperience)

	var req generation.ExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	description, err := s.generator.GenerateExperienceDescription(r.Context(), req)
	if err != nil {
		s.generationFailure(w, "experience description", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ExperienceResponse{Description: description})
}

// handleGenerateSkills suggests skills; unparseable completions still yield a list
func (s *Server) handleGenerateSkills(w http.ResponseWriter, r *http.Request) {
	if !s.session.TryBegin(builder.OpGenerateSkills) {
		s.failureResponse(w, &ErrBusy{Operation: builder.OpGenerateSkills})
		return
	}
	defer s.session.End(builder.OpGenerateSkills)

	var req generation.SkillsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	skills, err := s.generator.GenerateSkills(r.Context(), req)
	if err != nil {
		s.generationFailure(w, "skills", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, SkillsResponse{Skills: skills})
}

// handleAutofillStream fills every empty AI-assisted field of the session resume
// and streams one event per field
func (s *Server) handleAutofillStream(w http.ResponseWriter, r *http.Request) {
	if !s.session.TryBegin(builder.OpAutofill) {
		s.failureResponse(w, &ErrBusy{Operation: builder.OpAutofill})
		return
	}
	defer s.session.End(builder.OpAutofill)

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Starting autofill stream...")

	filled, report := s.generator.Autofill(r.Context(), s.session.Resume(), generation.AutofillOptions{
		OnEvent: func(event generation.AutofillEvent) {
			if err := sse.WriteEvent("field", event); err != nil {
				log.Printf("Error writing SSE event: %v", err)
			}
		},
	})

	if err := r.Context().Err(); err != nil {
		log.Printf("Autofill stream aborted: %v", err)
		return
	}

	// Merge into the current resume so edits made during the run survive
	resume := s.session.Update(func(dst *types.ResumeData) {
		report.Apply(dst, filled)
	})

	sse.WriteComplete(AutofillComplete{
		Fields: len(report.Events),
		Failed: len(report.Failed()),
		Resume: resume,
	})
	log.Printf("Autofill stream completed: %d fields, %d failed", len(report.Events), len(report.Failed()))
}

// generationFailure writes the error body used by every generate endpoint
func (s *Server) generationFailure(w http.ResponseWriter, what string, err error) {
	log.Printf("Error generating %s: %v", what, err)
	s.jsonResponse(w, http.StatusInternalServerError, map[string]string{
		"error":   "Failed to generate " + what + ". Please try again.",
		"details": err.Error(),
	})
}
