package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/generation"
	"github.com/jonathan/resume-builder/internal/observability"
)

var (
	autofillIn     string
	autofillOut    string
	autofillSave   bool
	autofillAPIKey string
)

var autofillCmd = &cobra.Command{
	Use:   "autofill",
	Short: "Fill every empty summary, description and skill list",
	Long: "Generates the summary, the skill list and each experience description that is still empty. " +
		"Fields are generated concurrently; a failed field is reported and left empty.",
	RunE: runAutofill,
}

func init() {
	autofillCmd.Flags().StringVarP(&autofillIn, "in", "i", storedInput, "Resume JSON file, \"-\" for stdin or \"stored\" for the saved resume")
	autofillCmd.Flags().StringVarP(&autofillOut, "out", "o", "", "Write the filled resume to this file (default stdout unless --save)")
	autofillCmd.Flags().BoolVar(&autofillSave, "save", false, "Save the filled resume")
	autofillCmd.Flags().StringVar(&autofillAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	rootCmd.AddCommand(autofillCmd)
}

func runAutofill(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	data, err := readResume(cmd, cfg, autofillIn)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := newClient(ctx, cfg, autofillAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	filled, report := generation.NewGenerator(client).Autofill(ctx, data, generation.AutofillOptions{})
	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintAutofillReport(report)
	}

	if autofillSave {
		codec, err := openCodec(cfg)
		if err != nil {
			return err
		}
		if err := codec.Save(filled); err != nil {
			return fmt.Errorf("failed to save resume: %w", err)
		}
		if autofillOut == "" {
			printf(cmd, "Filled %d fields (%d failed), saved\n", len(report.Events), len(report.Failed()))
			return nil
		}
	}

	return writeJSON(cmd, autofillOut, filled)
}
