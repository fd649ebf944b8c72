//nolint:revive // types is a standard Go package name pattern
package types

import (
	"path/filepath"
	"strings"
)

// FileHandle is a selected résumé file. A nil *FileHandle means no file is selected.
type FileHandle struct {
	Name        string // base file name sent to the service
	ContentType string // declared media type
	Data        []byte
}

// Ext returns the lower-cased file extension including the dot.
func (f *FileHandle) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// Size returns the file size in bytes.
func (f *FileHandle) Size() int {
	return len(f.Data)
}
