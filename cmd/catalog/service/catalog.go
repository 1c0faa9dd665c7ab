package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/droidbay/catalog/cmd/catalog/models"
	"github.com/droidbay/catalog/cmd/catalog/repository"
	"github.com/droidbay/catalog/common/logger"
)

// CatalogService handles catalog entry and APK lifecycle operations
type CatalogService struct {
	apps       *repository.AppRepository
	categories *repository.CategoryRepository
	artifacts  *ArtifactStore
	log        *logger.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	apps *repository.AppRepository,
	categories *repository.CategoryRepository,
	artifacts *ArtifactStore,
	log *logger.Logger,
) *CatalogService {
	return &CatalogService{
		apps:       apps,
		categories: categories,
		artifacts:  artifacts,
		log:        log,
	}
}

// List returns every app in insertion order
func (s *CatalogService) List() []models.App {
	return s.apps.All()
}

// Categories returns every category in insertion order
func (s *CatalogService) Categories() []models.Category {
	return s.categories.All()
}

// Get returns one app by ID
func (s *CatalogService) Get(id string) (models.App, error) {
	app, ok := s.apps.Get(id)
	if !ok {
		return models.App{}, ErrNotFound
	}
	return app, nil
}

// Search returns apps whose name contains query, case-insensitively.
// An empty query matches everything.
func (s *CatalogService) Search(query string) []models.App {
	query = strings.ToLower(query)

	matches := make([]models.App, 0)
	for _, app := range s.apps.All() {
		if strings.Contains(strings.ToLower(app.Name), query) {
			matches = append(matches, app)
		}
	}
	return matches
}

// Create validates the full field set and inserts a new app.
// The APK reference starts out unset.
func (s *CatalogService) Create(ctx context.Context, input models.AppInput) (models.App, error) {
	if err := input.Validate(); err != nil {
		return models.App{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var app models.App
	input.Apply(&app)

	created, err := s.apps.Insert(ctx, app)
	if err != nil {
		return models.App{}, err
	}

	s.log.Info("app created", "app_id", created.ID, "name", created.Name)
	return created, nil
}

// Update replaces every field except ID and the APK reference.
// Partial updates are not supported; a missing field is a caller error.
func (s *CatalogService) Update(ctx context.Context, id string, input models.AppInput) (models.App, error) {
	if err := input.Validate(); err != nil {
		return models.App{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	current, ok := s.apps.Get(id)
	if !ok {
		return models.App{}, ErrNotFound
	}

	input.Apply(&current)

	updated, found, err := s.apps.Update(ctx, id, current)
	if err != nil {
		return models.App{}, err
	}
	if !found {
		return models.App{}, ErrNotFound
	}

	s.log.Info("app updated", "app_id", id)
	return updated, nil
}

// Delete removes an app from the catalog. A previously uploaded APK file is
// deliberately left in the artifact store.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	found, err := s.apps.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}

	s.log.Info("app deleted", "app_id", id)
	return nil
}

// AttachArtifact stores the APK bytes and, only after the write succeeds,
// records the stored filename on the app. A failed write leaves the app
// metadata untouched.
func (s *CatalogService) AttachArtifact(ctx context.Context, id, filename string, r io.Reader) (models.App, string, error) {
	if _, ok := s.apps.Get(id); !ok {
		return models.App{}, "", ErrNotFound
	}

	if filename == "" {
		return models.App{}, "", ErrEmptyFilename
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".apk") {
		return models.App{}, "", ErrBadExtension
	}

	stored := SanitizeFilename(id + "_" + filename)

	if err := s.artifacts.Save(stored, r); err != nil {
		s.log.Error("apk write failed", "app_id", id, "filename", stored, "error", err)
		return models.App{}, "", fmt.Errorf("%w: %v", ErrStorage, err)
	}

	app, found, err := s.apps.SetArtifact(ctx, id, stored)
	if err != nil {
		return models.App{}, "", fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if !found {
		return models.App{}, "", ErrNotFound
	}

	s.log.Info("apk attached", "app_id", id, "filename", stored)
	return app, stored, nil
}

// OpenArtifact returns a stream over an app's APK along with the suggested
// download name "{name}_{version}.{ext}".
func (s *CatalogService) OpenArtifact(id string) (io.ReadCloser, string, error) {
	app, ok := s.apps.Get(id)
	if !ok {
		return nil, "", ErrNotFound
	}

	if app.ApkFilename == nil {
		return nil, "", ErrNoArtifact
	}

	if !s.artifacts.Exists(*app.ApkFilename) {
		return nil, "", ErrArtifactGone
	}

	rc, err := s.artifacts.Open(*app.ApkFilename)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrStorage, err)
	}

	ext := "apk"
	if idx := strings.LastIndex(*app.ApkFilename, "."); idx >= 0 && idx < len(*app.ApkFilename)-1 {
		ext = (*app.ApkFilename)[idx+1:]
	}
	suggested := fmt.Sprintf("%s_%s.%s", app.Name, app.Version, ext)

	return rc, suggested, nil
}
