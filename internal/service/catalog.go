package service

import (
	"context"
	"fmt"
	"strings"

	"kodbot/internal/domain"
	"kodbot/internal/repository"

	"go.uber.org/zap"
)

// ReferenceResolver turns a remote reference into a direct link
type ReferenceResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// CatalogService looks codes up in the local assets and the catalog
type CatalogService struct {
	assets      repository.AssetStore
	catalogRepo repository.CatalogRepository
	resolver    ReferenceResolver
	logger      *zap.Logger
}

// NewCatalogService creates a new catalog service. resolver may be nil,
// in which case remote entries never resolve.
func NewCatalogService(
	assets repository.AssetStore,
	catalogRepo repository.CatalogRepository,
	resolver ReferenceResolver,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		assets:      assets,
		catalogRepo: catalogRepo,
		resolver:    resolver,
		logger:      logger,
	}
}

// Lookup finds the entry for code. Local assets win over catalog entries.
func (s *CatalogService) Lookup(code string) (domain.CodeEntry, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.CodeEntry{}, false
	}

	if path, ok := s.assets.Find(code); ok {
		return domain.LocalAsset(code, path), true
	}

	ref, ok, err := s.catalogRepo.GetReference(code)
	if err != nil {
		s.logger.Warn("Failed to read catalog", zap.String("code", code), zap.Error(err))
		return domain.CodeEntry{}, false
	}
	if !ok || strings.TrimSpace(ref) == "" {
		return domain.CodeEntry{}, false
	}
	return domain.RemoteReference(code, ref), true
}

// Resolve turns code into something deliverable. Every failure is NotFound.
func (s *CatalogService) Resolve(ctx context.Context, code string) domain.Resolution {
	code = strings.TrimSpace(code)

	entry, ok := s.Lookup(code)
	if !ok {
		return domain.NotFound(code)
	}

	switch entry.Kind {
	case domain.EntryLocal:
		return domain.Found(code, domain.Playable{Path: entry.Path})
	case domain.EntryRemote:
		if s.resolver == nil {
			s.logger.Warn("Remote entry without resolver", zap.String("code", code))
			return domain.NotFound(code)
		}
		link, err := s.resolver.Resolve(ctx, entry.Reference)
		if err != nil {
			s.logger.Warn("Failed to resolve remote reference",
				zap.String("code", code),
				zap.Error(err),
			)
			return domain.NotFound(code)
		}
		return domain.Found(code, domain.Playable{URL: link})
	}

	return domain.NotFound(code)
}

// AddEntry appends a remote reference to the catalog
func (s *CatalogService) AddEntry(code, ref string) error {
	code = strings.TrimSpace(code)
	ref = strings.TrimSpace(ref)
	if code == "" || ref == "" {
		return fmt.Errorf("code and reference cannot be empty")
	}
	return s.catalogRepo.AddEntry(code, ref)
}
