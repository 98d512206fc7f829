package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/rendering"
)

var (
	renderIn       string
	renderOut      string
	renderTemplate string
	renderText     bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume as an HTML page",
	Long:  "Renders a resume with one of the four templates. --text prints the plain-text reading of the page instead.",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderIn, "in", "i", storedInput, "Resume JSON file, \"-\" for stdin or \"stored\" for the saved resume")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output file (default stdout)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template id (default from config)")
	renderCmd.Flags().BoolVar(&renderText, "text", false, "Print plain text instead of HTML")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	templateID, err := parseTemplate(renderTemplate, cfg)
	if err != nil {
		return err
	}

	data, err := readResume(cmd, cfg, renderIn)
	if err != nil {
		return err
	}

	html, err := rendering.Render(data, templateID)
	if err != nil {
		return fmt.Errorf("failed to render resume: %w", err)
	}

	if renderText {
		text, err := rendering.PlainText(html)
		if err != nil {
			return fmt.Errorf("failed to extract text: %w", err)
		}
		return writeOutput(cmd, renderOut, []byte(text+"\n"))
	}
	return writeOutput(cmd, renderOut, []byte(html))
}
