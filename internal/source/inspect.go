// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Info describes a PDF without reading its text.
type Info struct {
	Path      string `json:"path"`
	PageCount int    `json:"page_count"`
	Version   string `json:"version"`
	FileSize  int64  `json:"file_size"`
	Encrypted bool   `json:"encrypted"`
}

// Inspect reads the document structure with pdfcpu.
func Inspect(path string) (Info, error) {
	if err := CheckInput(path); err != nil {
		return Info{}, err
	}

	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("reading PDF structure of %s: %w", path, err)
	}

	info := Info{
		Path:      path,
		PageCount: ctx.PageCount,
		Encrypted: ctx.Encrypt != nil,
	}
	if ctx.HeaderVersion != nil {
		info.Version = ctx.HeaderVersion.String()
	}
	if st, err := os.Stat(path); err == nil {
		info.FileSize = st.Size()
	}
	return info, nil
}

// PageCountMismatch reports whether count differs from expected. An
// expected count of zero disables the check.
func PageCountMismatch(count, expected int) bool {
	return expected > 0 && count != expected
}
