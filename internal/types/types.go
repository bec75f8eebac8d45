// Package types defines every cross‑package data structure used by the treedump CLI.
package types

const (
	CommandExport  = "export"
	CommandTree    = "tree"
	CommandContent = "content"

	FormatText = "text"
	FormatJSON = "json"
	FormatPDF  = "pdf"

	DispositionContent  = "content"
	DispositionExcluded = "excluded"
	DispositionPrivate  = "private"
	DispositionError    = "error"
)

// Marker lines emitted in place of file content.
const (
	// ExcludedMarker replaces the content of files beneath excluded or hidden folders.
	ExcludedMarker = "[Content is excluded]"
	// PrivateMarker replaces the content of files matching the private list.
	PrivateMarker = "[Content is private]"
	// FileErrorMarkerFormat replaces the content of files that could not be read.
	FileErrorMarkerFormat = "[Error reading file: %s]"
	// DirectoryErrorMarkerFormat is rendered in place of an unlistable directory's children.
	DirectoryErrorMarkerFormat = "[Error reading directory: %s]"
)

// TreeNode represents one entry of the rendered directory tree.
type TreeNode struct {
	Name         string      `json:"name"`
	Path         string      `json:"path"`
	IsDir        bool        `json:"isDir"`
	Size         string      `json:"size,omitempty"`
	SizeBytes    int64       `json:"-"`
	LastModified string      `json:"lastModified,omitempty"`
	ReadError    string      `json:"readError,omitempty"`
	Children     []*TreeNode `json:"children,omitempty"`
}

// FileRecord pairs a file's root-relative path with its emitted content span.
type FileRecord struct {
	RelativePath string `json:"path"`
	Disposition  string `json:"disposition"`
	Content      string `json:"content,omitempty"`
	Tokens       int    `json:"tokens,omitempty"`
	SizeBytes    int64  `json:"-"`
}

// ExportSummary captures aggregate information about an export run.
type ExportSummary struct {
	TotalFiles  int    `json:"totalFiles"`
	TotalBytes  int64  `json:"-"`
	TotalSize   string `json:"totalSize"`
	TotalTokens int    `json:"totalTokens,omitempty"`
	Model       string `json:"model,omitempty"`
}

// Artifact bundles everything an export run produces for rendering.
type Artifact struct {
	RootLabel string        `json:"root"`
	Tree      *TreeNode     `json:"tree"`
	Records   []FileRecord  `json:"files"`
	Summary   ExportSummary `json:"summary"`
}
