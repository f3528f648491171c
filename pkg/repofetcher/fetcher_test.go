//go:build unit
// +build unit

package repofetcher

import (
	"context"
	"errors"
	"testing"

	gh "github.com/google/go-github/v55/github"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lerenn/scout/pkg/adapters/github"
	"github.com/lerenn/scout/pkg/manifest"
)

func TestFetchManifests_ToleratesMissingFiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := github.NewMockClient(ctrl)

	client.EXPECT().
		GetFileContent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params github.GetFileContentParams) ([]byte, error) {
			require.Equal(t, "example", params.Owner)
			require.Equal(t, "shared", params.Repo)
			require.Equal(t, "main", params.Ref)
			if params.Path == "package.json" {
				return []byte(`{"dependencies": {"firebase": "10.1.0"}}`), nil
			}
			return nil, errors.New("404 not found")
		}).
		Times(len(manifest.Formats()))

	fetched, err := New(client).FetchManifests(context.Background(), "https://github.com/example/shared.git", "main")
	require.NoError(t, err)
	require.Len(t, fetched, 1)
	require.Contains(t, fetched, manifest.FormatPackageJSON)
}

func TestFetchManifests_InvalidURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := github.NewMockClient(ctrl)

	_, err := New(client).FetchManifests(context.Background(), "not-a-repo", "main")
	require.ErrorIs(t, err, ErrInvalidRepoURL)
}

func TestLatestTag_RanksSemverTags(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := github.NewMockClient(ctrl)

	name := func(s string) *gh.RepositoryTag { return &gh.RepositoryTag{Name: &s} }
	client.EXPECT().
		ListTags(gomock.Any(), "example", "shared").
		Return([]*gh.RepositoryTag{
			name("v1.2.0"),
			name("v1.10.0"),
			name("v2.0.0-rc.1"), // pre-release, ignored
			name("nightly"),     // non-semver, ignored
		}, nil)

	tag, err := New(client).LatestTag(context.Background(), "https://github.com/example/shared")
	require.NoError(t, err)
	require.Equal(t, "v1.10.0", tag)
}

func TestLatestTag_NoTags(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := github.NewMockClient(ctrl)

	client.EXPECT().ListTags(gomock.Any(), "example", "shared").Return(nil, nil)

	tag, err := New(client).LatestTag(context.Background(), "https://github.com/example/shared")
	require.NoError(t, err)
	require.Empty(t, tag)
}
