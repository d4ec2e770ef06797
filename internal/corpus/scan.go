package corpus

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// Collect walks root recursively and returns every template file
// (extension .yaml or .yml) in walk order. Walk order is lexical per
// directory, so enumeration is deterministic for a given tree. Any
// error while walking is fatal for the run: a partially enumerated
// corpus would silently skew the results.
func Collect(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}
