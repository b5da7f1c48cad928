// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/daybook/internal/source"
	"github.com/pdiddy/daybook/pkg/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [pdf]",
	Short: "Show page count and document information for a PDF",
	Long: `Inspect reads the PDF's structure with pdfcpu without extracting text
and reports its page count, PDF version, size, and encryption. The page
count is compared with --expected-pages.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd, map[string]string{
		"expected-pages": "extract.expected_pages",
	})
	if err != nil {
		return err
	}

	path := cfg.Extraction.Input
	if len(args) > 0 {
		path = args[0]
	}

	info, err := source.Inspect(path)
	if err != nil {
		return err
	}

	expected := cfg.Extraction.ExpectedPages
	if source.PageCountMismatch(info.PageCount, expected) {
		logger.Warn().Int("pages", info.PageCount).Int("expected", expected).Msg("unexpected page count")
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatInspectOutput(cmd.OutOrStdout(), info, jsonOutput)
}

func formatInspectOutput(w io.Writer, info source.Info, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	fmt.Fprintf(w, "File:      %s\n", info.Path)
	fmt.Fprintf(w, "Pages:     %d\n", info.PageCount)
	fmt.Fprintf(w, "Version:   %s\n", info.Version)
	fmt.Fprintf(w, "Size:      %d bytes\n", info.FileSize)
	fmt.Fprintf(w, "Encrypted: %t\n", info.Encrypted)
	return nil
}

func init() {
	inspectCmd.Flags().Int("expected-pages", types.DefaultExpectedPages, "warn when the page count differs (0 = no check)")
	inspectCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(inspectCmd)
}
