package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultSkipDirs are directory names never descended into.
var DefaultSkipDirs = []string{"node_modules", ".git", ".hg", ".svn"}

type FileInfo struct {
	Path string
	Size int64
}

type Scanner struct {
	rootDir    string
	extensions []string
	skipDirs   map[string]bool
	exclude    func(path string) bool
}

func New(rootDir string, extensions ...string) *Scanner {
	s := &Scanner{
		rootDir:    rootDir,
		extensions: extensions,
		skipDirs:   make(map[string]bool),
	}
	return s.Skip(DefaultSkipDirs...)
}

// Skip adds directory base names to leave out of the walk.
func (s *Scanner) Skip(names ...string) *Scanner {
	for _, name := range names {
		s.skipDirs[name] = true
	}
	return s
}

// Exclude drops any file or directory for which fn returns true.
func (s *Scanner) Exclude(fn func(path string) bool) *Scanner {
	s.exclude = fn
	return s
}

// Scan walks the root and returns the target files sorted by path.
func (s *Scanner) Scan() ([]FileInfo, error) {
	files := make([]FileInfo, 0)

	err := filepath.Walk(s.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if s.exclude != nil && s.exclude(path) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			if path != s.rootDir && s.skipDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if s.isTargetFile(path) {
			files = append(files, FileInfo{
				Path: path,
				Size: info.Size(),
			})
		}
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

// Paths is Scan reduced to file paths.
func (s *Scanner) Paths() ([]string, error) {
	files, err := s.Scan()
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths, err
}

func (s *Scanner) isTargetFile(path string) bool {
	if len(s.extensions) == 0 {
		return true
	}

	ext := filepath.Ext(path)
	for _, targetExt := range s.extensions {
		if strings.EqualFold(ext, targetExt) {
			return true
		}
	}
	return false
}
