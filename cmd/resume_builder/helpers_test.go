package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jonathan/resume-builder/internal/types"
)

// getBinaryPath returns the path to the resume_builder binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "resume_builder"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", binaryPath)
	}

	return binaryPath
}

// executeCommand runs the root command in-process with fresh flag values
func executeCommand(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	if stdin == nil {
		stdin = strings.NewReader("")
	}
	var out bytes.Buffer
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag of cmd and its children to its default
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// writeResumeFile writes data as JSON into dir and returns the path
func writeResumeFile(t *testing.T, dir string, data *types.ResumeData) string {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("failed to marshal resume: %v", err)
	}
	path := filepath.Join(dir, "resume.json")
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatalf("failed to write resume: %v", err)
	}
	return path
}

func sampleResume() *types.ResumeData {
	return &types.ResumeData{
		PersonalInfo: types.PersonalInfo{
			Name:     "Grace Hopper",
			Title:    "Rear Admiral",
			Email:    "grace@example.com",
			Location: "Arlington, VA",
			Summary:  "Compiler pioneer.",
		},
		Experience: []types.Experience{
			{ID: "e1", Company: "US Navy", Position: "Computer Scientist", StartDate: "1943", EndDate: "1986"},
		},
		Education: []types.Education{
			{ID: "d1", Institution: "Yale", Degree: "PhD", Field: "Mathematics"},
		},
		Skills: []types.Skill{{ID: "s1", Name: "COBOL", Level: "Expert"}},
	}
}
