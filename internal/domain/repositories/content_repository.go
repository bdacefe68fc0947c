package repositories

import (
	"context"

	"github.com/rios0rios0/ghpush/internal/domain/entities"
)

// ContentRepository abstracts a remote content store that commits one file
// per request (the GitHub Contents API and compatible hosts).
//
// The returned error is reserved for transport failures: DNS, TLS, timeouts,
// resets, or a body that cannot be decoded. Any HTTP response, including
// error statuses, is reported through the status code with a nil error.
type ContentRepository interface {
	// PutFile creates or updates a file on the target branch.
	PutFile(ctx context.Context, target entities.Target, file entities.RemoteFile) (int, error)

	// GetFileSHA fetches the blob SHA of the current version of a file.
	GetFileSHA(ctx context.Context, target entities.Target, path string) (string, int, error)
}
