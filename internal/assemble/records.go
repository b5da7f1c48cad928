// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pdiddy/daybook/internal/source"
	"github.com/pdiddy/daybook/pkg/types"
)

// ReadRecords decodes the JSON record array at path. Malformed JSON and a
// record without a page number are both fatal; the error names the index
// of the offending record.
func ReadRecords(path string) ([]types.PageRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", source.ErrInputMissing, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	records, err := types.DecodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}
