package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PHPExtension is the extension of the source files the scanner inspects.
const PHPExtension = ".php"

// DiscoverFiles walks the directory tree rooted at root and returns the regular files
// with the given extension, sorted by path component (a/b.php sorts before a.php).
// Symlinks to regular files are included; symlinked directories are not descended into.
// Any file system error aborts the walk and is returned to the caller.
func DiscoverFiles(root, ext string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access %q: %w", path, err)
		}
		if filepath.Ext(d.Name()) != ext || !isRegularFile(path, d) {
			return nil
		}
		found = append(found, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(found, func(i, j int) bool {
		return comparePathComponents(found[i], found[j]) < 0
	})
	return found, nil
}

// isRegularFile reports whether the entry is a regular file or a symlink resolving to one.
// Dangling links are skipped.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// comparePathComponents orders paths element by element, a shorter prefix first.
func comparePathComponents(a, b string) int {
	ap := strings.Split(filepath.ToSlash(a), "/")
	bp := strings.Split(filepath.ToSlash(b), "/")
	for i := 0; i < len(ap) && i < len(bp); i++ {
		if c := strings.Compare(ap[i], bp[i]); c != 0 {
			return c
		}
	}
	return len(ap) - len(bp)
}

// readSource returns the file content with invalid UTF-8 sequences dropped.
func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", path, err)
	}
	return strings.ToValidUTF8(string(data), ""), nil
}
