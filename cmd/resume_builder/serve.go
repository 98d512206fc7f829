package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/server"
)

var (
	servePort      int
	serveAPIKey    string
	serveNoExport  bool
	serveChromeBin string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local API server",
	Long:  `Start an HTTP server that exposes the generation endpoints, the builder session, share links, preview and PDF export.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT, default 8080)")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	serveCmd.Flags().BoolVar(&serveNoExport, "no-export", false, "Disable PDF export")
	serveCmd.Flags().StringVar(&serveChromeBin, "chrome", "", "Chrome binary used for PDF export (overrides CHROME_PATH)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveChromeBin != "" {
		cfg.ChromePath = serveChromeBin
	}

	client, err := newClient(context.Background(), cfg, serveAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to open store: %w", err)
	}

	srvCfg := server.Config{
		Port:              cfg.Port,
		Client:            client,
		Store:             store,
		Origin:            cfg.Origin,
		MaxShareURLLength: cfg.MaxShareURLLength,
	}
	if !serveNoExport {
		srvCfg.Exporter = export.NewExporter(export.Options{ExecPath: cfg.ChromePath, Verbose: cfg.Verbose})
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
