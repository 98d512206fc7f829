package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/persistence"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

// storedInput selects the saved resume as command input
const storedInput = "stored"

// loadSettings layers flags over the config file over the environment over defaults.
func loadSettings() (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = *fileCfg
	}

	cfg = cfg.MergeWithDefaults(config.FromEnv())
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if storeDir != "" {
		cfg.StoreDir = storeDir
	}
	if verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openStore opens the file store named by cfg, or the per-user default directory
func openStore(cfg config.Config) (*storage.FileStore, error) {
	dir := cfg.StoreDir
	if dir == "" {
		var err error
		if dir, err = storage.DefaultDir(); err != nil {
			return nil, err
		}
	}
	return storage.NewFileStore(dir)
}

// openCodec returns the persistence codec over the configured store
func openCodec(cfg config.Config) (*persistence.Codec, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return persistence.NewCodec(store), nil
}

// newClient creates the Gemini client. The flag value wins over the configured key.
func newClient(ctx context.Context, cfg config.Config, apiKeyFlag string) (llm.Client, error) {
	apiKey := apiKeyFlag
	if apiKey == "" {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	llmCfg := llm.DefaultConfig()
	if cfg.Model != "" {
		llmCfg = llmCfg.WithModel(llm.TierStandard, cfg.Model)
	}
	if cfg.Temperature > 0 {
		llmCfg = llmCfg.WithTemperature(cfg.Temperature)
	}
	return llm.NewClient(ctx, llmCfg, apiKey)
}

// readResume reads a resume from a JSON file, from stdin ("-") or from the
// saved resume ("stored"). A missing saved resume yields the empty default.
func readResume(cmd *cobra.Command, cfg config.Config, in string) (*types.ResumeData, error) {
	var raw []byte
	var err error

	switch in {
	case "", storedInput:
		codec, err := openCodec(cfg)
		if err != nil {
			return nil, err
		}
		data, err := codec.Load()
		if err != nil {
			return nil, err
		}
		if data == nil {
			return types.NewResumeData(), nil
		}
		return data, nil
	case "-":
		raw, err = io.ReadAll(cmd.InOrStdin())
	default:
		raw, err = os.ReadFile(in)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}

	data, err := persistence.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid resume %s: %w", in, err)
	}
	return data, nil
}

// parseTemplate resolves a template flag, falling back to the configured default
func parseTemplate(flag string, cfg config.Config) (types.TemplateID, error) {
	if flag == "" {
		flag = cfg.Template
	}
	return types.ParseTemplateID(flag)
}

// writeOutput writes data to path, or to the command output when path is empty
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	// Ensure output directory exists
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// writeJSON writes v as indented JSON
func writeJSON(cmd *cobra.Command, path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeOutput(cmd, path, append(jsonBytes, '\n'))
}

// printf writes to the command output
func printf(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
