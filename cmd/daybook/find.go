// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/daybook/internal/segment"
	"github.com/pdiddy/daybook/internal/store"
	"github.com/pdiddy/daybook/pkg/types"
)

var findCmd = &cobra.Command{
	Use:   "find [query]",
	Short: "Search the index by text, date, or page",
	Long: `Find queries the index built by the index command. A query argument
runs an FTS5 full-text search over the date, body, and metadata; --month,
--day, and --page filter on their own or narrow a search.

With --export, the matching records are written as a JSON record array
in page order instead of printed.`,
	RunE: runFind,
}

func runFind(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd, map[string]string{
		"index-dir": "index.index_dir",
	})
	if err != nil {
		return err
	}

	opts, err := queryOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}
	exportPath, _ := cmd.Flags().GetString("export")
	if opts.IsEmpty() && exportPath == "" {
		return fmt.Errorf("query or filter required: provide a search query, --month, --day, or --page")
	}

	s, err := store.NewStore(cfg.Index)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	if exportPath != "" {
		path, err := s.ExportJSON(cmd.Context(), opts, exportPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported to %s\n", path)
		return nil
	}

	results, err := s.Retrieve(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatFindOutput(out, results, jsonOutput)
}

func formatFindOutput(w io.Writer, results []store.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		if results == nil {
			results = []store.QueryResult{}
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-14s  %-30s  %s\n", "Page", "Date", "Metadata", "Text")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range results {
		text := r.Snippet
		if text == "" && len(r.Record.Paragraphs) > 0 {
			text = r.Record.Paragraphs[0]
		}
		fmt.Fprintf(w, "%-4d  %-14s  %-30s  %s\n",
			r.Record.PageNumber, truncate(r.Record.Date, 14), truncate(r.Record.Metadata, 30), truncate(text, 46))
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) (store.QueryOptions, error) {
	monthFlag, _ := cmd.Flags().GetString("month")
	day, _ := cmd.Flags().GetInt("day")
	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")

	month, err := parseMonth(monthFlag)
	if err != nil {
		return store.QueryOptions{}, err
	}
	if day < 0 || day > 31 {
		return store.QueryOptions{}, fmt.Errorf("day %d out of range 1-31", day)
	}

	return store.QueryOptions{
		Query:      strings.Join(args, " "),
		Month:      month,
		Day:        day,
		Page:       page,
		MaxResults: limit,
	}, nil
}

// parseMonth accepts a month name in any case or a number 1-12. Empty
// means no month filter.
func parseMonth(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("month %d out of range 1-12", n)
		}
		return n, nil
	}
	if n := segment.MonthNumber(s); n > 0 {
		return n, nil
	}
	return 0, fmt.Errorf("unknown month %q", s)
}

func init() {
	d := types.DefaultConfig().Index

	findCmd.Flags().String("index-dir", d.IndexDir, "index directory")
	findCmd.Flags().String("month", "", "filter by month name or number")
	findCmd.Flags().Int("day", 0, "filter by day of month")
	findCmd.Flags().Int("page", 0, "filter by page number")
	findCmd.Flags().Int("limit", 0, "maximum results (0 = use index.max_results)")
	findCmd.Flags().Bool("json", false, "output results as JSON")
	findCmd.Flags().String("export", "", "write matching records to this JSON file")

	rootCmd.AddCommand(findCmd)
}
