//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/ghpush/internal/domain/commands"
	"github.com/rios0rios0/ghpush/internal/domain/entities"
)

// StubPushCommand is a stub implementation of commands.Push.
type StubPushCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Summary          *entities.PushSummary
	LastOpts         commands.PushOptions
}

var _ commands.Push = (*StubPushCommand)(nil)

func (s *StubPushCommand) Execute(
	_ context.Context,
	opts commands.PushOptions,
) (*entities.PushSummary, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.Summary != nil {
		return s.Summary, nil
	}
	return &entities.PushSummary{}, nil
}
