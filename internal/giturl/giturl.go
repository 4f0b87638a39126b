// Package giturl normalizes hook repository URLs so that equivalent
// spellings (https, ssh, scp-like) share one cache entry.
package giturl

import (
	"fmt"
	"net/url"
	"strings"
)

// IsURL checks if the given string looks like a git remote URL.
func IsURL(u string) bool {
	return strings.HasPrefix(u, "git@") || isSupportedProtocol(u)
}

func isSupportedProtocol(u string) bool {
	return strings.HasPrefix(u, "ssh:") ||
		strings.HasPrefix(u, "git+ssh:") ||
		strings.HasPrefix(u, "git:") ||
		strings.HasPrefix(u, "http:") ||
		strings.HasPrefix(u, "git+https:") ||
		strings.HasPrefix(u, "https:")
}

func isPossibleProtocol(u string) bool {
	return isSupportedProtocol(u) ||
		strings.HasPrefix(u, "ftp:") ||
		strings.HasPrefix(u, "file:")
}

// Parse normalizes git remote urls, including scp-like syntax
// (git@github.com:owner/repo).
func Parse(rawURL string) (*url.URL, error) {
	if !isPossibleProtocol(rawURL) &&
		strings.ContainsRune(rawURL, ':') &&
		// not a Windows path
		!strings.ContainsRune(rawURL, '\\') {
		// support scp-like syntax for ssh protocol
		rawURL = "ssh://" + strings.Replace(rawURL, ":", "/", 1)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	switch u.Scheme {
	case "git+https":
		u.Scheme = "https"
	case "git+ssh":
		u.Scheme = "ssh"
	}

	if u.Scheme != "ssh" {
		return u, nil
	}

	if strings.HasPrefix(u.Path, "//") {
		u.Path = strings.TrimPrefix(u.Path, "/")
	}

	u.Host = strings.TrimSuffix(u.Host, ":"+u.Port())

	return u, nil
}

// Canonical reduces a hook repository URL to "host/path" with the scheme,
// user info, .git suffix and trailing slash removed. Two URLs with the
// same canonical form refer to the same repository.
func Canonical(rawURL string) (string, error) {
	u, err := Parse(rawURL)
	if err != nil {
		return "", err
	}

	host := strings.ToLower(u.Hostname())
	path := strings.TrimSuffix(strings.Trim(u.Path, "/"), ".git")

	if path == "" {
		return "", fmt.Errorf("invalid repository URL %q", rawURL)
	}

	// Filesystem remotes (an absolute path or file:// URL) have no host;
	// the path alone identifies the repository.
	if host == "" {
		if !strings.HasPrefix(u.Path, "/") {
			return "", fmt.Errorf("invalid repository URL %q", rawURL)
		}

		return path, nil
	}

	return host + "/" + path, nil
}

// OwnerRepo extracts the owner and repository name from a URL whose path
// has the usual forge layout. Used by the GitHub autoupdate fast path.
func OwnerRepo(rawURL string) (owner, repo string, err error) {
	canonical, err := Canonical(rawURL)
	if err != nil {
		return "", "", err
	}

	parts := strings.Split(canonical, "/")
	if len(parts) != 3 {
		return "", "", fmt.Errorf("URL %q does not have a host/owner/repo layout", rawURL)
	}

	return parts[1], parts[2], nil
}

// IsGitHub reports whether the URL points at github.com.
func IsGitHub(rawURL string) bool {
	canonical, err := Canonical(rawURL)
	if err != nil {
		return false
	}

	return strings.HasPrefix(canonical, "github.com/")
}

// Slug converts a canonical URL into a filesystem-safe directory name.
func Slug(canonical string) string {
	return strings.NewReplacer("/", "-", ":", "-").Replace(canonical)
}
