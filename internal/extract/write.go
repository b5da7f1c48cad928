// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"github.com/pdiddy/daybook/internal/fileutil"
	"github.com/pdiddy/daybook/pkg/types"
)

// WriteJSON writes records to path through a temporary file in the same
// directory, so path is either the complete new file or untouched.
func WriteJSON(path string, records []types.PageRecord) error {
	data, err := types.EncodeRecords(records)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, data)
}
