// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/pdiddy/daybook/internal/fileutil"
	"github.com/pdiddy/daybook/pkg/types"
)

const exportLimit = 100000

// ExportJSON writes the matching records, in page order, in the same JSON
// schema the extractor produces. An empty path writes export.json in the
// index directory. It returns the path written.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions, path string) (string, error) {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = filepath.Join(s.indexDir, exportFile)
	}
	data, err := types.EncodeRecords(records)
	if err != nil {
		return "", err
	}
	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Store) exportRecords(ctx context.Context, opts QueryOptions) ([]types.PageRecord, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = exportLimit
	}
	results, err := s.Retrieve(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	records := make([]types.PageRecord, len(results))
	for i, r := range results {
		records[i] = r.Record
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].PageNumber < records[j].PageNumber
	})
	return records, nil
}
