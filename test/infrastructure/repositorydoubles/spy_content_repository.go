//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations — no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"net/http"

	"github.com/rios0rios0/ghpush/internal/domain/entities"
	"github.com/rios0rios0/ghpush/internal/domain/repositories"
)

// PutResponse is one scripted answer to PutFile.
type PutResponse struct {
	Status int
	Err    error
}

// SpyContentRepository implements repositories.ContentRepository as a configurable spy.
type SpyContentRepository struct {
	// --- PutFile ---
	// PutResponses are consumed in order; once exhausted every PUT answers 201.
	PutResponses []PutResponse
	PutCalls     []entities.RemoteFile
	PutTargets   []entities.Target

	// --- GetFileSHA ---
	SHA       string
	GetStatus int
	GetErr    error
	GetCalls  []string
}

var _ repositories.ContentRepository = (*SpyContentRepository)(nil)

func (s *SpyContentRepository) PutFile(
	_ context.Context, target entities.Target, file entities.RemoteFile,
) (int, error) {
	s.PutCalls = append(s.PutCalls, file)
	s.PutTargets = append(s.PutTargets, target)
	if len(s.PutResponses) == 0 {
		return http.StatusCreated, nil
	}
	next := s.PutResponses[0]
	s.PutResponses = s.PutResponses[1:]
	return next.Status, next.Err
}

func (s *SpyContentRepository) GetFileSHA(
	_ context.Context, _ entities.Target, path string,
) (string, int, error) {
	s.GetCalls = append(s.GetCalls, path)
	if s.GetErr != nil {
		return "", 0, s.GetErr
	}
	status := s.GetStatus
	if status == 0 {
		status = http.StatusOK
	}
	return s.SHA, status, nil
}

// CallCount returns the number of HTTP requests the spy has seen.
func (s *SpyContentRepository) CallCount() int {
	return len(s.PutCalls) + len(s.GetCalls)
}
