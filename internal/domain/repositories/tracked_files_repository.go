package repositories

import "context"

// TrackedFilesRepository lists the files tracked by the local version control index.
type TrackedFilesRepository interface {
	// ListTrackedFiles returns tracked paths under dir, relative to dir, in index order.
	ListTrackedFiles(ctx context.Context, dir string) ([]string, error)
}
