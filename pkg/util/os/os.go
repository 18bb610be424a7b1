package os

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// PrepareDir makes sure dir exists and is a directory, creating it with 0755
// permissions if needed. When clean is true, any existing content is removed
// first. The absolute path of the directory is returned.
func PrepareDir(dir string, clean bool) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	finfo, err := os.Stat(absDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return "", fmt.Errorf("failed to stat directory %s: %w", absDir, err)
	case !finfo.IsDir():
		return "", fmt.Errorf("%s is not a directory", absDir)
	case clean:
		if err := os.RemoveAll(absDir); err != nil {
			return "", fmt.Errorf("failed to clean directory %s: %w", absDir, err)
		}
	}

	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", absDir, err)
	}
	return absDir, nil
}

// IsDirEmpty returns true if the directory at path is empty, false otherwise.
// Returns an error if the path does not exist or is not a directory.
func IsDirEmpty(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	entries, err := f.Readdir(1)
	if err != nil {
		if err == io.EOF {
			return true, nil
		}
		return false, err
	}
	return len(entries) == 0, nil
}

// ListFiles returns path itself if it is a regular file, or every regular
// file below it, in lexical order, if it is a directory.
func ListFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}

// CopyFile appends the content of the file at path to w.
func CopyFile(w io.Writer, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return io.Copy(w, f)
}
