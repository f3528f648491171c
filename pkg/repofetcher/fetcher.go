//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=fetcher.go -destination=mock.gen.go -package=repofetcher
package repofetcher

import (
	"context"
	"errors"
	"regexp"
	"sort"

	gh "github.com/google/go-github/v55/github"
	"golang.org/x/mod/semver"

	"github.com/lerenn/scout/pkg/adapters/github"
	"github.com/lerenn/scout/pkg/manifest"
)

// ErrInvalidRepoURL is returned when the repository URL cannot be parsed.
var ErrInvalidRepoURL = errors.New("invalid repository URL")

// Fetcher retrieves manifests and version tags from a remote codebase.
type Fetcher interface {
	// FetchManifests fetches every recognized manifest filename from the
	// repository root at the given ref. Remote discovery is deliberately
	// shallow: one contents call per candidate file, no tree walk. A file
	// that is missing or unreadable is simply not in the result.
	FetchManifests(ctx context.Context, repoURL, ref string) (map[manifest.Format][]byte, error)
	// LatestTag returns the highest plain semver tag of the repository, or
	// "" when the repository has none.
	LatestTag(ctx context.Context, repoURL string) (string, error)
}

type fetcher struct {
	client github.Client
}

// New creates a Fetcher backed by the given GitHub client.
func New(client github.Client) Fetcher {
	return &fetcher{client: client}
}

var _ Fetcher = (*fetcher)(nil)

func (f *fetcher) FetchManifests(ctx context.Context, repoURL, ref string) (map[manifest.Format][]byte, error) {
	owner, name := parseOwnerAndRepo(repoURL)
	if owner == "" || name == "" {
		return nil, ErrInvalidRepoURL
	}
	results := make(map[manifest.Format][]byte)
	for _, format := range manifest.Formats() {
		content, err := f.client.GetFileContent(ctx, github.GetFileContentParams{
			Owner: owner,
			Repo:  name,
			Path:  string(format),
			Ref:   ref,
		})
		if err != nil || content == nil {
			continue
		}
		results[format] = content
	}
	return results, nil
}

func (f *fetcher) LatestTag(ctx context.Context, repoURL string) (string, error) {
	owner, name := parseOwnerAndRepo(repoURL)
	if owner == "" || name == "" {
		return "", ErrInvalidRepoURL
	}
	tags, err := f.client.ListTags(ctx, owner, name)
	if err != nil {
		return "", err
	}
	return latestSemverTag(tags), nil
}

// latestSemverTag returns the latest semantic version tag (ignoring
// pre-releases and non-semver tags).
func latestSemverTag(tags []*gh.RepositoryTag) string {
	semverRE := regexp.MustCompile(`^v[0-9]+\.[0-9]+\.[0-9]+$`)
	var versions []string
	for _, tag := range tags {
		if tag == nil || tag.Name == nil {
			continue
		}
		name := *tag.Name
		if semverRE.MatchString(name) && semver.Prerelease(name) == "" {
			versions = append(versions, name)
		}
	}
	if len(versions) == 0 {
		return ""
	}
	sort.Slice(versions, func(i, j int) bool {
		return semver.Compare(versions[i], versions[j]) > 0 // descending
	})
	return versions[0]
}

// parseOwnerAndRepo extracts the owner and repo name from a GitHub URL like
// https://github.com/example/testrepo1.git.
func parseOwnerAndRepo(url string) (owner, repo string) {
	const prefix = "github.com/"
	idx := -1
	for i := 0; i < len(url)-len(prefix); i++ {
		if url[i:i+len(prefix)] == prefix {
			idx = i + len(prefix)
			break
		}
	}
	if idx == -1 {
		return "", ""
	}
	rest := url[idx:]
	if len(rest) == 0 {
		return "", ""
	}
	if len(rest) > 4 && rest[len(rest)-4:] == ".git" {
		rest = rest[:len(rest)-4]
	}
	parts := make([]string, 0, 2)
	for _, p := range rest {
		if p == '/' {
			parts = append(parts, "")
			continue
		}
		if len(parts) == 0 {
			parts = append(parts, "")
		}
		parts[len(parts)-1] += string(p)
	}
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}
