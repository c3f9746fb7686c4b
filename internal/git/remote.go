package git

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gitsight/go-vcsurl"
)

// NormalizeRemoteURL converts a remote URL into the browsable https form
// used as the repository URI in reports. Credentials and ports are dropped.
//
//	git@github.com:acme/plugin.git        -> https://github.com/acme/plugin
//	ssh://git@gitlab.com/group/sub/plugin -> https://gitlab.com/group/sub/plugin
//	git@git.example.com:wp/plugin.git     -> https://git.example.com/wp/plugin
func NormalizeRemoteURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrNoRemoteURL
	}

	info, err := vcsurl.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse remote URL %q (%v): %w", raw, err, ErrNoRemoteURL)
	}

	switch info.Host {
	case vcsurl.GitHub, vcsurl.GitLab, vcsurl.Bitbucket:
		remote, err := info.Remote(vcsurl.HTTPS)
		if err != nil {
			return "", fmt.Errorf("failed to build https remote for %q (%v): %w", raw, err, ErrNoRemoteURL)
		}
		return strings.TrimSuffix(remote, ".git"), nil
	default:
		return selfHostedRemote(raw, info)
	}
}

// selfHostedRemote builds the https form for hosts vcsurl has no dedicated handler for.
func selfHostedRemote(raw string, info *vcsurl.VCS) (string, error) {
	host := (&url.URL{Host: string(info.Host)}).Hostname()
	fullName := strings.Trim(strings.TrimSuffix(strings.TrimSuffix(info.FullName, "/"), ".git"), "/")
	if host == "" || !strings.Contains(fullName, "/") {
		return "", fmt.Errorf("remote URL %q does not name a repository: %w", raw, ErrNoRemoteURL)
	}
	return fmt.Sprintf("https://%s/%s", host, fullName), nil
}
