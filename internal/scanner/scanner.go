// Package scanner lists the direct children of the source directory and
// classifies them by extension. The scan is deliberately non-recursive: the
// source is a flat export folder, not a tree.
package scanner

import (
	"os"
	"path/filepath"

	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/pkg/types"
)

type Scanner struct{}

func New() *Scanner {
	return &Scanner{}
}

// Scan returns one entry per regular file in root, including files with
// unrecognized extensions (they still get copied, just unrenamed).
func (s *Scanner) Scan(root string) ([]types.FileEntry, error) {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var entries []types.FileEntry
	for _, d := range dirEntries {
		if d.IsDir() {
			continue
		}

		info, err := d.Info()
		if err != nil {
			continue
		}

		name := d.Name()
		entries = append(entries, types.FileEntry{
			Path:    filepath.Join(root, name),
			Name:    name,
			Ext:     filepath.Ext(name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Kind:    types.KindForExt(types.NormalizeExt(name)),
		})
	}

	return entries, nil
}
