package main

import (
	"os"
	"path/filepath"
)

// walkTarget expands a directory into the list of regular files beneath it,
// skipping dotfiles and dot-directories the way grep -r does. A target that
// is already a plain file is returned as a single-element list.
func walkTarget(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{target}, nil
	}

	var files []string
	err = filepath.WalkDir(target, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if name != "." && len(name) > 1 && name[0] == '.' {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
