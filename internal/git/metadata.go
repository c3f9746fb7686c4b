package git

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/hashicorp/go-hclog"
)

// RepositoryMetadata describes the git work tree a scanned plugin lives in.
type RepositoryMetadata struct {
	BranchName     *string
	CommitHash     *string
	RemoteURL      *string
	RepositoryURI  *string
	Subfolder      string
	RepoRootFolder string
}

// CollectRepositoryMetadata function collects repository metadata
// that includes branch name, commit hash, origin URL, subfolder and repository root folder.
// A folder outside any repository yields ErrNotRepository together with partial metadata.
// A nil logger discards output.
func CollectRepositoryMetadata(logger hclog.Logger, sourceFolder string) (*RepositoryMetadata, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if sourceFolder == "" {
		return &RepositoryMetadata{}, fmt.Errorf("source folder is not set")
	}

	if absSource, err := filepath.Abs(sourceFolder); err == nil {
		sourceFolder = absSource
	}

	md := &RepositoryMetadata{
		RepoRootFolder: filepath.Clean(sourceFolder),
	}

	repoRootFolder, err := findGitRepositoryPath(sourceFolder)
	if err != nil {
		return md, err
	}
	md.RepoRootFolder = filepath.Clean(repoRootFolder)
	logger.Debug("git repository found", "repo_root", md.RepoRootFolder)

	repo, err := git.PlainOpen(repoRootFolder)
	if err != nil {
		return md, fmt.Errorf("failed to open repository: %w", err)
	}

	if rel, err := filepath.Rel(repoRootFolder, sourceFolder); err == nil && rel != "." {
		md.Subfolder = filepath.ToSlash(rel)
	}

	// empty repositories have no HEAD yet
	head, err := repo.Head()
	if err != nil {
		logger.Debug("repository has no HEAD", "repo_root", md.RepoRootFolder, "error", err)
	} else {
		if head.Name().IsBranch() {
			branchName := head.Name().Short()
			md.BranchName = &branchName
		}

		hash := head.Hash().String()
		md.CommitHash = &hash
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		logger.Debug("origin remote unavailable", "repo_root", md.RepoRootFolder, "error", err)
		return md, nil
	}
	if cfg := remote.Config(); cfg != nil && len(cfg.URLs) > 0 {
		remoteURL := cfg.URLs[0]
		md.RemoteURL = &remoteURL
		uri, err := NormalizeRemoteURL(remoteURL)
		if err != nil {
			logger.Debug("origin URL has no browsable form", "remote_url", remoteURL, "error", err)
		} else {
			md.RepositoryURI = &uri
		}
	}

	return md, nil
}
