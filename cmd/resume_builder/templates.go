package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/types"
)

var templatesJSON bool

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available templates",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if templatesJSON {
			return writeJSON(cmd, "", types.Templates())
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintTemplates(types.Templates())
		return nil
	},
}

func init() {
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Print the catalogue as JSON")
	rootCmd.AddCommand(templatesCmd)
}
