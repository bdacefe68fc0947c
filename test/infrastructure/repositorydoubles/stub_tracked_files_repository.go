//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/ghpush/internal/domain/repositories"
)

// StubTrackedFilesRepository is a stub implementation of repositories.TrackedFilesRepository.
type StubTrackedFilesRepository struct {
	Files     []string
	Err       error
	CallCount int
	LastDir   string
}

var _ repositories.TrackedFilesRepository = (*StubTrackedFilesRepository)(nil)

func (s *StubTrackedFilesRepository) ListTrackedFiles(_ context.Context, dir string) ([]string, error) {
	s.CallCount++
	s.LastDir = dir
	return s.Files, s.Err
}
