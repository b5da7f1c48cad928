// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/daybook/internal/extract"
	"github.com/pdiddy/daybook/internal/source"
	"github.com/pdiddy/daybook/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract page records from the letters PDF into JSON",
	Long: `Extract reads every page of the source PDF, splits each page into
text blocks, and classifies them into the date line, body paragraphs, and
closing metadata note. The records are written as a JSON array, one per
page, in page order.

Pages without a date line use their first block as the date; pages without
text produce an empty record, or are skipped with --empty-page skip. Both
cases are reported as warnings and never stop the run.

Backends:
  rows       glyph rows from github.com/ledongthuc/pdf (default)
  layout     line detection from github.com/tsawler/tabula
  pdftotext  poppler pdftotext in a docker or podman container`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd, map[string]string{
		"input":          "extract.input",
		"output":         "extract.output",
		"backend":        "extract.backend",
		"expected-pages": "extract.expected_pages",
		"image":          "extract.pdftotext_image",
		"metadata-rule":  "extract.policy.metadata_rule",
		"boundary-rule":  "extract.policy.boundary_rule",
		"gap-factor":     "extract.policy.gap_factor",
		"empty-page":     "extract.policy.empty_page",
	})
	if err != nil {
		return err
	}

	src, err := source.New(cfg.Extraction)
	if err != nil {
		return err
	}

	_, err = extract.Extract(cmd.Context(), src, cfg.Extraction, logger, cmd.OutOrStdout())
	return err
}

func init() {
	d := types.DefaultConfig().Extraction

	extractCmd.Flags().String("input", d.Input, "source PDF")
	extractCmd.Flags().String("output", d.Output, "JSON output file")
	extractCmd.Flags().String("backend", string(d.Backend), "text backend: rows, layout, or pdftotext")
	extractCmd.Flags().Int("expected-pages", d.ExpectedPages, "warn when the page count differs (0 = no check)")
	extractCmd.Flags().String("image", d.PdftotextImage, "container image providing pdftotext")
	extractCmd.Flags().String("metadata-rule", string(d.Policy.MetadataRule), "metadata rule: last-block or parenthetical")
	extractCmd.Flags().String("boundary-rule", string(d.Policy.BoundaryRule), "block boundary rule: blank-line or vertical-gap")
	extractCmd.Flags().Float64("gap-factor", d.Policy.GapFactor, "vertical-gap threshold as a multiple of line height")
	extractCmd.Flags().String("empty-page", string(d.Policy.EmptyPage), "pages without text: emit or skip")

	rootCmd.AddCommand(extractCmd)
}
