package repositories

import (
	domainRepos "github.com/rios0rios0/ghpush/internal/domain/repositories"
	ghRepo "github.com/rios0rios0/ghpush/internal/infrastructure/repositories/github"
	"github.com/rios0rios0/ghpush/internal/infrastructure/repositories/gitindex"
	"go.uber.org/dig"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register provider registry with all provider factories
	if err := container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register("github", func(settings ProviderSettings) (domainRepos.ContentRepository, error) {
			return ghRepo.NewContentsRepository(settings.Token, settings.APIURL)
		})
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.TrackedFilesRepository {
		return gitindex.NewTrackedFilesRepository()
	}); err != nil {
		return err
	}

	return nil
}
