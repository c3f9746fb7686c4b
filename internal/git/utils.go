package git

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// findGitRepositoryPath function finds a git repository path for a given source folder
func findGitRepositoryPath(sourceFolder string) (string, error) {
	if sourceFolder == "" {
		return "", fmt.Errorf("source folder is not set")
	}

	// check if source folder is a subfolder of a git repository
	for {
		_, err := git.PlainOpen(sourceFolder)
		if err == nil {
			return sourceFolder, nil
		}

		// move up one level
		parent := filepath.Dir(sourceFolder)

		// check if reached the root folder
		if parent == sourceFolder {
			break
		}
		sourceFolder = parent
	}

	return "", ErrNotRepository
}
