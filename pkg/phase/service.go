package phase

import (
	"context"

	log "github.com/sirupsen/logrus"
)

type Service interface {
	// Catalog returns the phase catalog. It falls back to the built-in
	// list when the repository is unavailable, so callers always get a
	// usable catalog.
	Catalog(ctx context.Context) []Phase
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Catalog(ctx context.Context) []Phase {
	phases, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Warnf("failed to load phase catalog, falling back to built-in list: %v", err)
		return DefaultCatalog()
	}
	if len(phases) == 0 {
		log.Warn("phase catalog is empty, falling back to built-in list")
		return DefaultCatalog()
	}
	return phases
}
