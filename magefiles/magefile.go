//go:build mage

// Package main contains Mage build targets for daybook developer tooling.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/daybook/pkg/types"
)

// projectDirs lists the working directories the pipeline expects.
var projectDirs = []string{
	types.DefaultIndexDir,
	binDir,
}

const configFile = "daybook.yaml"

// Init creates the working directories and a daybook.yaml holding the
// default configuration. An existing daybook.yaml is left alone.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}

	if _, err := os.Stat(configFile); err == nil {
		fmt.Printf("   %s (exists, kept)\n", configFile)
	} else if errors.Is(err, fs.ErrNotExist) {
		data, err := yaml.Marshal(types.DefaultConfig())
		if err != nil {
			return fmt.Errorf("encoding default config: %w", err)
		}
		if err := os.WriteFile(configFile, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", configFile, err)
		}
		fmt.Println("  ", configFile)
	} else {
		return fmt.Errorf("checking %s: %w", configFile, err)
	}

	fmt.Println("Project initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "daybook"
	cmdPkg  = "./cmd/daybook"

	// sqliteTags enables FTS5 in github.com/mattn/go-sqlite3.
	sqliteTags = "sqlite_fts5"
)

var binPath = filepath.Join(binDir, binName)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	if err := sh.RunV("go", "build", "-tags", sqliteTags, "-o", binPath, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", binPath)
	return nil
}

// Test runs every package's tests.
func Test() error {
	return sh.RunV("go", "test", "-tags", sqliteTags, "./...")
}

// Extract builds the CLI and extracts Letters.pdf into extracted_pages.json.
func Extract() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "extract")
}

// Assemble builds the CLI and renders extracted_pages.json into
// Letters_assembled.pdf.
func Assemble() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "assemble")
}

// Index builds the CLI and loads extracted_pages.json into the search index.
func Index() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "index")
}

// Roundtrip extracts, then assembles, then indexes.
func Roundtrip() {
	mg.SerialDeps(Extract, Assemble, Index)
}

// Stats prints project metrics: Go production/test LOC and documentation word count.
func Stats() error {
	prodLines, testLines, err := countGoLines(".")
	if err != nil {
		return err
	}
	docWords, err := countDocWords(".")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (documentation):           %d\n", docWords)
	return nil
}

// skipDir reports whether the go tool would ignore a directory.
func skipDir(root, path string, d fs.DirEntry) bool {
	name := d.Name()
	return path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || name == "testdata")
}

// countGoLines counts non-blank lines in production and test Go files.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(root, path, d) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		for _, line := range bytes.Split(data, []byte("\n")) {
			if len(bytes.TrimSpace(line)) > 0 {
				n++
			}
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

// countDocWords counts words in the Markdown files at the top of root.
func countDocWords(root string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(root, "*.md"))
	if err != nil {
		return 0, err
	}
	total := 0
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", path, err)
		}
		total += len(bytes.Fields(data))
	}
	return total, nil
}
