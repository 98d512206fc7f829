package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/generation"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/observability"
)

var (
	generateAPIKey string
	generateJSON   bool

	summaryName       string
	summaryTitle      string
	summaryExperience string

	experiencePosition string
	experienceCompany  string
	experienceStart    string
	experienceEnd      string

	skillsTitle      string
	skillsExperience string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft resume content with Gemini",
	Long:  "Drafts a professional summary, a position description or a skill list from the fields provided. Empty fields are sent as \"Not provided\".",
}

var generateSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Draft a professional summary",
	RunE:  runGenerateSummary,
}

var generateExperienceCmd = &cobra.Command{
	Use:   "experience",
	Short: "Draft a position description",
	RunE:  runGenerateExperience,
}

var generateSkillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Suggest skills with proficiency levels",
	Long:  "Suggests skills with proficiency levels. Output the model cannot parse falls back to a default list.",
	RunE:  runGenerateSkills,
}

func init() {
	generateCmd.PersistentFlags().StringVar(&generateAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	generateCmd.PersistentFlags().BoolVar(&generateJSON, "json", false, "Print the result as JSON")

	generateSummaryCmd.Flags().StringVar(&summaryName, "name", "", "Candidate name")
	generateSummaryCmd.Flags().StringVar(&summaryTitle, "title", "", "Professional title")
	generateSummaryCmd.Flags().StringVar(&summaryExperience, "experience", "", "Experience hint, e.g. \"Engineer at Acme\"")

	generateExperienceCmd.Flags().StringVar(&experiencePosition, "position", "", "Position held")
	generateExperienceCmd.Flags().StringVar(&experienceCompany, "company", "", "Company name")
	generateExperienceCmd.Flags().StringVar(&experienceStart, "start", "", "Start date")
	generateExperienceCmd.Flags().StringVar(&experienceEnd, "end", "", "End date (empty means Present)")

	generateSkillsCmd.Flags().StringVar(&skillsTitle, "title", "", "Professional title")
	generateSkillsCmd.Flags().StringVar(&skillsExperience, "experience", "", "Experience hint")

	generateCmd.AddCommand(generateSummaryCmd, generateExperienceCmd, generateSkillsCmd)
	rootCmd.AddCommand(generateCmd)
}

// newGenerator builds a Generator and returns the client for closing
func newGenerator(ctx context.Context) (*generation.Generator, llm.Client, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, nil, err
	}
	client, err := newClient(ctx, cfg, generateAPIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return generation.NewGenerator(client), client, nil
}

func runGenerateSummary(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	gen, client, err := newGenerator(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	summary, err := gen.GenerateSummary(ctx, generation.SummaryRequest{
		Name:       summaryName,
		Title:      summaryTitle,
		Experience: summaryExperience,
	})
	if err != nil {
		return fmt.Errorf("failed to generate summary: %w", err)
	}

	if generateJSON {
		return writeJSON(cmd, "", map[string]string{"summary": summary})
	}
	printf(cmd, "%s\n", summary)
	return nil
}

func runGenerateExperience(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	gen, client, err := newGenerator(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	description, err := gen.GenerateExperienceDescription(ctx, generation.ExperienceRequest{
		Position:  experiencePosition,
		Company:   experienceCompany,
		StartDate: experienceStart,
		EndDate:   experienceEnd,
	})
	if err != nil {
		return fmt.Errorf("failed to generate experience description: %w", err)
	}

	if generateJSON {
		return writeJSON(cmd, "", map[string]string{"description": description})
	}
	printf(cmd, "%s\n", description)
	return nil
}

func runGenerateSkills(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	gen, client, err := newGenerator(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	skills, err := gen.GenerateSkills(ctx, generation.SkillsRequest{
		Title:      skillsTitle,
		Experience: skillsExperience,
	})
	if err != nil {
		return fmt.Errorf("failed to generate skills: %w", err)
	}

	if generateJSON {
		return writeJSON(cmd, "", map[string]any{"skills": skills})
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSkills(skills)
	return nil
}
