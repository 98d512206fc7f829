package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/share"
	"github.com/jonathan/resume-builder/internal/types"
)

var (
	shareIn       string
	shareTemplate string
	shareCopy     bool
	shareOrigin   string
	decodeOut     string
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Encode and decode share links",
}

var shareEncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Create a share link for a resume",
	Long:  "Creates <origin>/builder?template=<id>&data=<base64 JSON>. Opening the link in the builder restores the resume and template.",
	RunE:  runShareEncode,
}

var shareDecodeCmd = &cobra.Command{
	Use:   "decode <link>",
	Short: "Print the resume carried by a share link",
	Args:  cobra.ExactArgs(1),
	RunE:  runShareDecode,
}

func init() {
	shareEncodeCmd.Flags().StringVarP(&shareIn, "in", "i", storedInput, "Resume JSON file, \"-\" for stdin or \"stored\" for the saved resume")
	shareEncodeCmd.Flags().StringVarP(&shareTemplate, "template", "t", "", "Template id (default from config)")
	shareEncodeCmd.Flags().BoolVar(&shareCopy, "copy", false, "Copy the link to the clipboard")
	shareEncodeCmd.Flags().StringVar(&shareOrigin, "origin", "", "Link origin (overrides RESUME_ORIGIN)")

	shareDecodeCmd.Flags().StringVarP(&decodeOut, "out", "o", "", "Write the resume to this file instead of stdout")

	shareCmd.AddCommand(shareEncodeCmd, shareDecodeCmd)
	rootCmd.AddCommand(shareCmd)
}

func runShareEncode(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if shareOrigin != "" {
		cfg.Origin = shareOrigin
	}

	templateID, err := parseTemplate(shareTemplate, cfg)
	if err != nil {
		return err
	}

	data, err := readResume(cmd, cfg, shareIn)
	if err != nil {
		return err
	}

	codec := share.NewCodec(cfg.Origin)
	codec.MaxURLLength = cfg.MaxShareURLLength

	var cb share.Clipboard
	if shareCopy {
		cb = share.SystemClipboard{}
	}

	result, err := share.NewSharer(codec, cb).Share(cmd.Context(), data, templateID)
	if err != nil {
		return fmt.Errorf("failed to create share link: %w", err)
	}

	printf(cmd, "%s\n", result.URL)
	if shareCopy && result.Copied {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Link copied to clipboard")
	}
	return nil
}

func runShareDecode(cmd *cobra.Command, args []string) error {
	payload, err := share.DecodeURL(args[0])
	if err != nil {
		return err
	}
	if payload.Data == nil {
		return fmt.Errorf("link carries no resume data")
	}
	if payload.Template != "" && !payload.Template.IsValid() {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: unknown template %q, the builder will use %s\n", payload.Template, types.DefaultTemplate)
	}

	return writeJSON(cmd, decodeOut, payload)
}
