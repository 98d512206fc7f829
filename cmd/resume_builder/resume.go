package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/persistence"
)

var (
	saveIn  string
	loadOut string
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a resume as the working resume",
	Long:  "Validates the shape of a resume JSON document and stores it under the \"resumeData\" key. The previous resume is replaced.",
	RunE:  runSave,
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Print the saved resume",
	Long:  "Prints the saved resume as JSON. Reports when nothing has been saved yet and fails when the saved data is corrupt.",
	RunE:  runLoad,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the saved resume",
	RunE:  runClear,
}

func init() {
	saveCmd.Flags().StringVarP(&saveIn, "in", "i", "", "Resume JSON file or \"-\" for stdin (required)")
	if err := saveCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	loadCmd.Flags().StringVarP(&loadOut, "out", "o", "", "Write the resume to this file instead of stdout")

	rootCmd.AddCommand(saveCmd, loadCmd, clearCmd)
}

func runSave(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if saveIn == storedInput {
		return fmt.Errorf("--in must be a file or \"-\"")
	}

	data, err := readResume(cmd, cfg, saveIn)
	if err != nil {
		return err
	}

	codec, err := openCodec(cfg)
	if err != nil {
		return err
	}
	if err := codec.Save(data); err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintResume(data)
	}
	printf(cmd, "Saved resume under %q\n", codec.Key())
	return nil
}

func runLoad(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	codec, err := openCodec(cfg)
	if err != nil {
		return err
	}

	data, err := codec.Load()
	if err != nil {
		var corrupt *persistence.CorruptDataError
		if errors.As(err, &corrupt) {
			return fmt.Errorf("saved resume is corrupt, run 'resume_builder clear' or save a new one: %w", err)
		}
		return err
	}
	if data == nil {
		printf(cmd, "No saved resume\n")
		return nil
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintResume(data)
	}
	return writeJSON(cmd, loadOut, data)
}

func runClear(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	codec, err := openCodec(cfg)
	if err != nil {
		return err
	}
	if err := codec.Clear(); err != nil {
		return fmt.Errorf("failed to clear saved resume: %w", err)
	}
	printf(cmd, "Cleared saved resume\n")
	return nil
}
