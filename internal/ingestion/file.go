// Package ingestion loads résumé files from disk and inspects them before upload.
package ingestion

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jonathan/resume-matcher/internal/types"
)

// genericType is what content sniffing returns when it cannot tell.
const genericType = "application/octet-stream"

// Load reads a résumé file and returns a handle carrying its base name,
// declared media type and bytes.
func Load(path string) (*types.FileHandle, error) {
	if path == "" {
		return nil, fmt.Errorf("file path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	name := filepath.Base(path)
	return &types.FileHandle{
		Name:        name,
		ContentType: DetectContentType(name, data),
		Data:        data,
	}, nil
}

// DetectContentType sniffs the media type from content and falls back to the
// file extension when sniffing is inconclusive.
func DetectContentType(name string, data []byte) string {
	detected := mimetype.Detect(data)
	if detected != nil && !detected.Is(genericType) {
		return detected.String()
	}

	if byExt := mime.TypeByExtension(filepath.Ext(name)); byExt != "" {
		return byExt
	}
	return genericType
}
