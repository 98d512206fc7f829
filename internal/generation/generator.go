// Package generation turns partially filled resume fields into completion prompts
// and converts the completion text back into typed resume fields.
package generation

import (
	"context"
	"log"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/types"
)

const promptFile = "generation.json"

// Operation names, also used as prompt keys
const (
	OpSummary    = "generate-summary"
	OpExperience = "generate-experience"
	OpSkills     = "generate-skills"
)

// SummaryRequest carries the fields used to draft a professional summary.
// Experience is a free-text hint and may be empty.
type SummaryRequest struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	Experience string `json:"experience"`
}

// ExperienceRequest carries the fields used to draft a position description.
// An empty EndDate is rendered as "Present".
type ExperienceRequest struct {
	Position  string `json:"position"`
	Company   string `json:"company"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// SkillsRequest carries the fields used to suggest skills
type SkillsRequest struct {
	Title      string `json:"title"`
	Experience string `json:"experience"`
}

// Generator issues one completion call per operation. It holds no mutable state,
// so different operations may run concurrently.
type Generator struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewGenerator creates a Generator over the given client
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client, tier: llm.TierStandard}
}

// GenerateSummary returns the completion text verbatim as the summary.
func (g *Generator) GenerateSummary(ctx context.Context, req SummaryRequest) (string, error) {
	return g.complete(ctx, OpSummary, req)
}

// GenerateExperienceDescription returns the completion text verbatim as the description.
func (g *Generator) GenerateExperienceDescription(ctx context.Context, req ExperienceRequest) (string, error) {
	return g.complete(ctx, OpExperience, req)
}

// GenerateSkills asks for a JSON array of skills and parses the reply with ParseSkills.
// Only a failed completion call yields an error; unparseable output degrades to defaults.
func (g *Generator) GenerateSkills(ctx context.Context, req SkillsRequest) ([]types.Skill, error) {
	text, err := g.complete(ctx, OpSkills, req)
	if err != nil {
		return nil, err
	}
	return ParseSkills(text), nil
}

func (g *Generator) complete(ctx context.Context, op string, data any) (string, error) {
	prompt, err := prompts.Render(promptFile, op, data)
	if err != nil {
		return "", &PromptError{Key: op, Cause: err}
	}

	text, err := g.client.GenerateContent(ctx, prompt, g.tier)
	if err != nil {
		log.Printf("[generation] %s failed: %v", op, err)
		return "", &GenerationError{Operation: op, Cause: err}
	}
	return text, nil
}
