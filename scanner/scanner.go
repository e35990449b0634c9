package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions written by common slicers for G-code output.
var Extensions = []string{".gcode", ".gco", ".g"}

type FileInfo struct {
	Path string
	Size int64
}

type Scanner struct {
	rootDir    string
	extensions []string
}

// New returns a scanner for rootDir. With no extensions every regular file
// is a target.
func New(rootDir string, extensions ...string) *Scanner {
	return &Scanner{
		rootDir:    rootDir,
		extensions: extensions,
	}
}

// Scan walks rootDir and returns the target files sorted by path.
// Hidden directories are skipped.
func (s *Scanner) Scan() ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.Walk(s.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != s.rootDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode().IsRegular() && s.IsTarget(path) {
			files = append(files, FileInfo{
				Path: path,
				Size: info.Size(),
			})
		}
		return nil
	})

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, err
}

// IsTarget reports whether path has one of the scanner's extensions,
// ignoring case.
func (s *Scanner) IsTarget(path string) bool {
	if len(s.extensions) == 0 {
		return true
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, targetExt := range s.extensions {
		if ext == targetExt {
			return true
		}
	}
	return false
}
