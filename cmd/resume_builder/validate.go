package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/types"
)

var validateIn string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a resume for invalid fields",
	Long: "Checks email format, skill levels and identifier uniqueness. " +
		"These checks are advisory: an invalid resume still saves, renders and shares.",
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateIn, "in", "i", storedInput, "Resume JSON file, \"-\" for stdin or \"stored\" for the saved resume")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	data, err := readResume(cmd, cfg, validateIn)
	if err != nil {
		return err
	}

	err = data.Validate()
	observability.NewPrinter(cmd.OutOrStdout()).PrintValidation(err)

	var verr *types.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("resume has %d invalid fields", len(verr.Issues))
	}
	return err
}
