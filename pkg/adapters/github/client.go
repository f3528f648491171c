//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=client.go -destination=mock.gen.go -package=github
package github

import (
	"context"

	"github.com/google/go-github/v55/github"
	"golang.org/x/oauth2"
)

// GetFileContentParams contains parameters for GetFileContent.
type GetFileContentParams struct {
	Owner string
	Repo  string
	Path  string
	Ref   string
}

// Client defines the read-only surface scout needs from GitHub.
type Client interface {
	GetFileContent(ctx context.Context, params GetFileContentParams) ([]byte, error)
	ListTags(ctx context.Context, owner, repo string) ([]*github.RepositoryTag, error)
}

// client implements Client using go-github.
type client struct {
	gh *github.Client
}

// New creates a new GitHub client. An empty token yields an unauthenticated
// client, which is enough for public repositories.
func New(token string) Client {
	if token == "" {
		return &client{gh: github.NewClient(nil)}
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	gh := github.NewClient(oauth2.NewClient(context.Background(), ts))
	return &client{gh: gh}
}

// GetFileContent retrieves the content of a file from a GitHub repository.
func (c *client) GetFileContent(ctx context.Context, params GetFileContentParams) ([]byte, error) {
	fileContent, _, _, err := c.gh.Repositories.GetContents(
		ctx, params.Owner, params.Repo, params.Path,
		&github.RepositoryContentGetOptions{Ref: params.Ref},
	)
	if err != nil {
		return nil, err
	}
	if fileContent == nil {
		return nil, nil
	}
	content, err := fileContent.GetContent()
	if err != nil {
		return nil, err
	}
	return []byte(content), nil
}

// ListTags retrieves the tags of a GitHub repository.
func (c *client) ListTags(ctx context.Context, owner, repo string) ([]*github.RepositoryTag, error) {
	tags, _, err := c.gh.Repositories.ListTags(ctx, owner, repo, nil)
	return tags, err
}
