// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Default file names. The booklet command reads and writes fixed names in the
// working directory unless configuration overrides them.
const (
	DefaultInputPath  = "chep_data.csv"
	DefaultOutputPath = "booklet.docx"
	DefaultCatalogDir = "catalog"
	DefaultPDFImage   = "booklet-pdf:latest"
	DefaultPDFOutput  = "booklet.pdf"
	DefaultMaxResults = 20
)

// BuildConfig holds settings for the booklet build.
type BuildConfig struct {
	// InputPath is the submissions CSV (default chep_data.csv).
	InputPath string `json:"input" yaml:"input"`

	// OutputPath is the DOCX file written at the end of the run
	// (default booklet.docx).
	OutputPath string `json:"output" yaml:"output"`

	// StylesPath is an optional YAML stylesheet overriding the built-in
	// paragraph styles.
	StylesPath string `json:"styles,omitempty" yaml:"styles,omitempty"`
}

// CatalogConfig holds settings for the session catalog.
type CatalogConfig struct {
	// Dir is the directory holding booklet.db and the export files.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PDFConfig holds settings for the PDF export.
type PDFConfig struct {
	// Image is the container image that converts DOCX on stdin to PDF on stdout.
	Image string `json:"image" yaml:"image"`

	// OutputPath is the PDF file to write (default booklet.pdf).
	OutputPath string `json:"output" yaml:"output"`

	// Runtime forces "docker" or "podman". Empty tries docker first.
	Runtime string `json:"runtime,omitempty" yaml:"runtime,omitempty"`
}

// Config groups all settings read from booklet.yaml.
type Config struct {
	Build   BuildConfig   `json:"build" yaml:"build"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	PDF     PDFConfig     `json:"pdf" yaml:"pdf"`

	// Verbose enables debug logging.
	Verbose bool `json:"verbose" yaml:"verbose"`
}
