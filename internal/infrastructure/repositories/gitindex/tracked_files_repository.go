// Package gitindex lists tracked files straight from the git index, the same
// set `git ls-files` prints, without shelling out to git.
package gitindex

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// TrackedFilesRepository implements repositories.TrackedFilesRepository with go-git.
type TrackedFilesRepository struct{}

// NewTrackedFilesRepository creates a new TrackedFilesRepository.
func NewTrackedFilesRepository() *TrackedFilesRepository {
	return &TrackedFilesRepository{}
}

// ListTrackedFiles opens the repository containing dir and returns the index
// entries below dir, relative to dir, in index (path) order.
func (r *TrackedFilesRepository) ListTrackedFiles(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	//nolint:exhaustruct // only repository discovery is needed
	repo, err := git.PlainOpenWithOptions(absDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", absDir, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}

	prefix, err := relativePrefix(worktree.Filesystem.Root(), absDir)
	if err != nil {
		return nil, err
	}

	index, err := repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to read git index: %w", err)
	}

	files := make([]string, 0, len(index.Entries))
	last := ""
	for _, entry := range index.Entries {
		if !strings.HasPrefix(entry.Name, prefix) {
			continue
		}
		name := strings.TrimPrefix(entry.Name, prefix)
		// conflicted paths appear once per stage
		if name == last {
			continue
		}
		files = append(files, name)
		last = name
	}

	return files, nil
}

// relativePrefix returns the slash-terminated index prefix of dir inside
// root, or "" when dir is the root itself.
func relativePrefix(root, dir string) (string, error) {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return "", fmt.Errorf("failed to locate %s in worktree %s: %w", dir, root, err)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel) + "/", nil
}
