// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/daybook/internal/store"
	"github.com/pdiddy/daybook/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Load JSON page records into the search index",
	Long: `Index reads a JSON record file into a SQLite database with FTS5
full-text indexing at <index-dir>/daybook.db, replacing the previous
contents, and writes <index-dir>/export.json. An unchanged file is
skipped on later runs.`,
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd, map[string]string{
		"input":     "index.input",
		"index-dir": "index.index_dir",
	})
	if err != nil {
		return err
	}

	s, err := store.NewStore(cfg.Index)
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.Ingest(cmd.Context(), cfg.Index.Input, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if summary.Undated > 0 {
		logger.Warn().Int("records", summary.Undated).Msg("records without a parsable date")
	}
	return nil
}

func init() {
	d := types.DefaultConfig().Index

	indexCmd.Flags().String("input", d.Input, "JSON record file")
	indexCmd.Flags().String("index-dir", d.IndexDir, "index directory")

	rootCmd.AddCommand(indexCmd)
}
