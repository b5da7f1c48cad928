// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/daybook/internal/assemble"
	"github.com/pdiddy/daybook/pkg/types"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble JSON page records into a formatted PDF",
	Long: `Assemble reads a JSON array of page records and renders one section
per record: a centered "Page N" title, the date and metadata as header
lines, then the paragraphs as justified body text. Every section starts
on a new page.

Malformed JSON or a record without a page number stops the run before any
output is written.`,
	RunE: runAssemble,
}

func runAssemble(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd, map[string]string{
		"input":  "assemble.input",
		"output": "assemble.output",
	})
	if err != nil {
		return err
	}
	if flagChanged(cmd.Flags(), "no-date-header") {
		noDate, _ := cmd.Flags().GetBool("no-date-header")
		cfg.Assembly.DateHeader = !noDate
	}

	_, err = assemble.Assemble(cmd.Context(), cfg.Assembly, assemble.DefaultStyle(), logger, cmd.OutOrStdout())
	return err
}

func init() {
	d := types.DefaultConfig().Assembly

	assembleCmd.Flags().String("input", d.Input, "JSON record file")
	assembleCmd.Flags().String("output", d.Output, "PDF output file")
	assembleCmd.Flags().Bool("no-date-header", false, "omit the date header line")

	rootCmd.AddCommand(assembleCmd)
}
