package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/export"
)

var (
	exportIn       string
	exportOut      string
	exportTemplate string
	exportTimeout  time.Duration
	exportChrome   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a resume to PDF",
	Long:  "Prints the rendered resume to an A4 PDF with headless Chrome. The file is named after the candidate unless --out is given.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportIn, "in", "i", storedInput, "Resume JSON file, \"-\" for stdin or \"stored\" for the saved resume")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output PDF path (default \"<name>.pdf\")")
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "Template id (default from config)")
	exportCmd.Flags().DurationVar(&exportTimeout, "timeout", export.DefaultTimeout, "Browser timeout")
	exportCmd.Flags().StringVar(&exportChrome, "chrome", "", "Chrome binary (overrides CHROME_PATH)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if exportChrome != "" {
		cfg.ChromePath = exportChrome
	}

	templateID, err := parseTemplate(exportTemplate, cfg)
	if err != nil {
		return err
	}

	data, err := readResume(cmd, cfg, exportIn)
	if err != nil {
		return err
	}

	exporter := export.NewExporter(export.Options{
		Timeout:  exportTimeout,
		ExecPath: cfg.ChromePath,
		Verbose:  cfg.Verbose,
	})
	pdf, err := exporter.Resume(cmd.Context(), data, templateID)
	if err != nil {
		return fmt.Errorf("failed to export PDF: %w", err)
	}

	out := exportOut
	if out == "" {
		out = export.FileName(data)
	}
	if err := writeOutput(cmd, out, pdf); err != nil {
		return err
	}

	printf(cmd, "Output: %s (%d bytes)\n", out, len(pdf))
	return nil
}
