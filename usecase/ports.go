package usecase

import "context"

// FolderInfo describes a dated storage subfolder.
type FolderInfo struct {
	ID   string
	Name string
	Year string
	Path string
}

// DocumentStorage abstracts the external file store the rendered invoices
// are uploaded to. Folder paths are POSIX-style slash-delimited strings
// below a configured root, e.g. "customers/2024/07".
type DocumentStorage interface {
	Download(ctx context.Context, fileID string) ([]byte, error)
	// Upload stores data under filename inside the parent folder. A file
	// with the same name in the same folder is overwritten in place, which
	// keeps re-runs idempotent on the storage side.
	Upload(ctx context.Context, filename string, data []byte, parentID string) (string, error)
	EnsureFolderPath(ctx context.Context, path string) (string, error)
	// ConvertToPDF derives a PDF from an uploaded document and stores it
	// under the given folder, returning the new file ID.
	ConvertToPDF(ctx context.Context, fileID, filename, folderID string) (string, error)
	Delete(ctx context.Context, fileID string) error
	LatestMonthFolder(ctx context.Context, category string) (*FolderInfo, error)
}

// Renderer produces document bytes from a template and a tag mapping.
type Renderer interface {
	Render(template []byte, tags map[string]any) ([]byte, error)
}

// TemplateSource yields the customer invoice template bytes.
type TemplateSource interface {
	CustomerTemplate(ctx context.Context) ([]byte, error)
}
