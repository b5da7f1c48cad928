package types

import "fmt"

// MetadataRule selects how the metadata block is found on a page.
type MetadataRule string

const (
	// MetadataLastBlock takes the final block on the page unconditionally.
	MetadataLastBlock MetadataRule = "last-block"
	// MetadataParenthetical takes the block holding "(" followed later by a
	// month name, and discards other blocks that mention a month.
	MetadataParenthetical MetadataRule = "parenthetical"
)

// BoundaryRule selects how lines are grouped into blocks.
type BoundaryRule string

const (
	// BoundaryBlankLine splits blocks on blank lines in the raw page text.
	BoundaryBlankLine BoundaryRule = "blank-line"
	// BoundaryVerticalGap splits blocks where the space between two
	// positioned lines exceeds GapFactor times the line height.
	BoundaryVerticalGap BoundaryRule = "vertical-gap"
)

// EmptyPagePolicy decides what happens to a page with no text blocks.
type EmptyPagePolicy string

const (
	EmptyPageEmit EmptyPagePolicy = "emit"
	EmptyPageSkip EmptyPagePolicy = "skip"
)

// SourceBackend identifies the PDF text backend.
type SourceBackend string

const (
	BackendRows      SourceBackend = "rows"
	BackendLayout    SourceBackend = "layout"
	BackendPdftotext SourceBackend = "pdftotext"
)

// Default file names and limits.
const (
	DefaultSourcePDF     = "Letters.pdf"
	DefaultRecordsJSON   = "extracted_pages.json"
	DefaultAssembledPDF  = "Letters_assembled.pdf"
	DefaultIndexDir      = "index"
	DefaultExpectedPages = 366
	DefaultGapFactor     = 1.5
	DefaultMaxResults    = 20
	DefaultPdftotextImg  = "minidocks/poppler:latest"
)

// PolicyConfig is the page classification policy shared by every
// extraction backend and by the assembler.
type PolicyConfig struct {
	MetadataRule MetadataRule    `json:"metadata_rule" yaml:"metadata_rule" mapstructure:"metadata_rule"`
	BoundaryRule BoundaryRule    `json:"boundary_rule" yaml:"boundary_rule" mapstructure:"boundary_rule"`
	GapFactor    float64         `json:"gap_factor" yaml:"gap_factor" mapstructure:"gap_factor"`
	EmptyPage    EmptyPagePolicy `json:"empty_page" yaml:"empty_page" mapstructure:"empty_page"`
}

// Validate rejects unknown rule names and a non-positive gap factor.
func (p PolicyConfig) Validate() error {
	switch p.MetadataRule {
	case MetadataLastBlock, MetadataParenthetical:
	default:
		return fmt.Errorf("unknown metadata rule %q: use last-block or parenthetical", p.MetadataRule)
	}
	switch p.BoundaryRule {
	case BoundaryBlankLine, BoundaryVerticalGap:
	default:
		return fmt.Errorf("unknown boundary rule %q: use blank-line or vertical-gap", p.BoundaryRule)
	}
	switch p.EmptyPage {
	case EmptyPageEmit, EmptyPageSkip:
	default:
		return fmt.Errorf("unknown empty-page policy %q: use emit or skip", p.EmptyPage)
	}
	if p.GapFactor <= 0 {
		return fmt.Errorf("gap factor must be positive, got %v", p.GapFactor)
	}
	return nil
}

// ExtractionConfig holds settings for the extract pass.
type ExtractionConfig struct {
	// Input is the source PDF.
	Input string `json:"input" yaml:"input" mapstructure:"input"`

	// Output is the JSON file receiving the record array.
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// Backend selects the text source: rows, layout, or pdftotext.
	Backend SourceBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// ExpectedPages triggers a warning when the document differs. Zero disables the check.
	ExpectedPages int `json:"expected_pages" yaml:"expected_pages" mapstructure:"expected_pages"`

	// PdftotextImage is the container image providing pdftotext.
	PdftotextImage string `json:"pdftotext_image" yaml:"pdftotext_image" mapstructure:"pdftotext_image"`

	Policy PolicyConfig `json:"policy" yaml:"policy" mapstructure:"policy"`
}

// AssemblyConfig holds settings for the assemble pass.
type AssemblyConfig struct {
	Input  string `json:"input" yaml:"input" mapstructure:"input"`
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// DateHeader renders the date line as a header above the metadata line.
	DateHeader bool `json:"date_header" yaml:"date_header" mapstructure:"date_header"`
}

// IndexConfig holds settings for the record index.
type IndexConfig struct {
	// Input is the JSON record file ingested by the index command.
	Input string `json:"input" yaml:"input" mapstructure:"input"`

	// IndexDir holds daybook.db and export.json.
	IndexDir string `json:"index_dir" yaml:"index_dir" mapstructure:"index_dir"`

	// MaxResults is the default maximum number of query results.
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups every pass's configuration; it is the shape of daybook.yaml.
type Config struct {
	Extraction ExtractionConfig `json:"extract" yaml:"extract" mapstructure:"extract"`
	Assembly   AssemblyConfig   `json:"assemble" yaml:"assemble" mapstructure:"assemble"`
	Index      IndexConfig      `json:"index" yaml:"index" mapstructure:"index"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns the configuration used when no file, flag, or
// environment variable overrides a value.
func DefaultConfig() Config {
	return Config{
		Extraction: ExtractionConfig{
			Input:          DefaultSourcePDF,
			Output:         DefaultRecordsJSON,
			Backend:        BackendRows,
			ExpectedPages:  DefaultExpectedPages,
			PdftotextImage: DefaultPdftotextImg,
			Policy: PolicyConfig{
				MetadataRule: MetadataLastBlock,
				BoundaryRule: BoundaryBlankLine,
				GapFactor:    DefaultGapFactor,
				EmptyPage:    EmptyPageEmit,
			},
		},
		Assembly: AssemblyConfig{
			Input:      DefaultRecordsJSON,
			Output:     DefaultAssembledPDF,
			DateHeader: true,
		},
		Index: IndexConfig{
			Input:      DefaultRecordsJSON,
			IndexDir:   DefaultIndexDir,
			MaxResults: DefaultMaxResults,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
