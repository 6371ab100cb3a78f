package compression

import (
	"path/filepath"

	"github.com/glcage/glcage/pkg/compression/zip"
	"github.com/glcage/glcage/pkg/logger"
)

type Extractor interface {
	Extract(src string, dest string) ([]string, error)
}

// NewFromExt picks an extractor by the file extension of the path
// or returns nil when the format is not supported.
func NewFromExt(path string, log *logger.Logger) Extractor {
	switch filepath.Ext(path) {
	case zip.Ext:
		return zip.New(log)
	default:
		return nil
	}
}
