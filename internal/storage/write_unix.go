//go:build !windows

package storage

import (
	"os"

	"github.com/google/renameio/v2"
)

// writeFileAtomic fsyncs and renames so readers never see a partial file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm)
}
