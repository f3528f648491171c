// Package scout orchestrates the reconnaissance run: codebase resolution,
// manifest discovery, version reconciliation and health reporting.
package scout

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/lerenn/scout/pkg/adapters/github"
	"github.com/lerenn/scout/pkg/config"
	"github.com/lerenn/scout/pkg/drift"
	"github.com/lerenn/scout/pkg/health"
	"github.com/lerenn/scout/pkg/logging"
	"github.com/lerenn/scout/pkg/manifest"
	"github.com/lerenn/scout/pkg/repofetcher"
)

// Scout wires the locator, reconciler and health checker for one run. All
// state is per-run; nothing is shared or persisted across invocations.
type Scout struct {
	config     *config.Config
	locator    manifest.Locator
	reconciler drift.Reconciler
	checker    health.Checker
	fetcher    repofetcher.Fetcher
}

// New creates a Scout instance. The GitHub token may be empty; it is only
// used when the configuration declares remote codebases.
func New(cfg *config.Config, token string) *Scout {
	return &Scout{
		config:     cfg,
		locator:    manifest.NewLocator(),
		reconciler: drift.NewReconciler(),
		checker:    health.NewChecker(),
		fetcher:    repofetcher.New(github.New(token)),
	}
}

// Drift runs manifest discovery and version reconciliation over every
// codebase under root. Mismatches are findings, not errors: the only error
// returned is an unreadable root.
func (s *Scout) Drift(ctx context.Context, root string) ([]drift.Report, error) {
	codebases, err := s.resolveCodebases(root)
	if err != nil {
		return nil, err
	}

	sources := make(map[string]drift.ManifestSet, len(codebases))
	for _, codebase := range codebases {
		sources[codebase.Name] = s.manifestSet(ctx, codebase)
	}

	tracked := s.config.Tracked
	if len(tracked) == 0 {
		tracked = config.DefaultTracked()
	}

	return s.reconciler.Reconcile(sources, tracked), nil
}

// Health runs the presence-only check. It shares the locator with Drift but
// never parses manifest content.
func (s *Scout) Health(ctx context.Context, root string) ([]health.Check, error) {
	codebases, err := s.resolveCodebases(root)
	if err != nil {
		return nil, err
	}

	located := make(map[string][]manifest.Manifest, len(codebases))
	for _, codebase := range codebases {
		if codebase.Remote() {
			located[codebase.Name] = s.remoteManifests(ctx, codebase)
			continue
		}
		located[codebase.Name] = s.locator.Locate(codebase.Path)
	}
	return s.checker.Check(located), nil
}

// resolveCodebases returns the configured codebases, or discovers them under
// root when the configuration declares none. Configured relative paths are
// resolved against root.
func (s *Scout) resolveCodebases(root string) ([]config.Codebase, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("project root unreadable: %w", err)
	}
	if len(s.config.Codebases) == 0 {
		return config.Discover(root, s.locator)
	}
	codebases := make([]config.Codebase, 0, len(s.config.Codebases))
	for _, codebase := range s.config.Codebases {
		if !codebase.Remote() && !filepath.IsAbs(codebase.Path) {
			codebase.Path = filepath.Join(root, codebase.Path)
		}
		codebases = append(codebases, codebase)
	}
	return codebases, nil
}

// manifestSet reads the primary manifest per format for one codebase.
func (s *Scout) manifestSet(ctx context.Context, codebase config.Codebase) drift.ManifestSet {
	if codebase.Remote() {
		return s.remoteManifestSet(ctx, codebase)
	}

	located := s.locator.Locate(codebase.Path)
	set := make(drift.ManifestSet)
	for _, format := range manifest.Formats() {
		primary, ok := manifest.Primary(located, format)
		if !ok {
			continue
		}
		content, err := os.ReadFile(filepath.Join(codebase.Path, filepath.FromSlash(primary.Path)))
		if err != nil {
			logging.C(ctx).Warn("Skipping unreadable manifest",
				zap.String("codebase", codebase.Name),
				zap.String("path", primary.Path),
				zap.Error(err))
			continue
		}
		set[format] = content
	}
	return set
}

func (s *Scout) remoteManifestSet(ctx context.Context, codebase config.Codebase) drift.ManifestSet {
	ref := codebase.Ref
	if ref == "" {
		ref = "main"
	}
	fetched, err := s.fetcher.FetchManifests(ctx, codebase.URL, ref)
	if err != nil {
		logging.C(ctx).Warn("Skipping remote codebase",
			zap.String("codebase", codebase.Name),
			zap.String("url", codebase.URL),
			zap.Error(err))
		return drift.ManifestSet{}
	}
	if tag, err := s.fetcher.LatestTag(ctx, codebase.URL); err == nil && tag != "" {
		logging.C(ctx).Info("Remote codebase latest tag",
			zap.String("codebase", codebase.Name),
			zap.String("tag", tag))
	}
	return drift.ManifestSet(fetched)
}

func (s *Scout) remoteManifests(ctx context.Context, codebase config.Codebase) []manifest.Manifest {
	set := s.remoteManifestSet(ctx, codebase)
	located := make([]manifest.Manifest, 0, len(set))
	for _, format := range manifest.Formats() {
		if _, ok := set[format]; ok {
			located = append(located, manifest.Manifest{Path: string(format), Format: format})
		}
	}
	return located
}
