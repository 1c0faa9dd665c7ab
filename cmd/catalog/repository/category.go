package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/droidbay/catalog/cmd/catalog/models"
	"github.com/droidbay/catalog/common/docstore"
)

// CategoryRepository owns the in-memory copy of the categories collection.
// Categories are immutable after seeding; the only write path is ReplaceAll.
type CategoryRepository struct {
	store      docstore.Store
	mu         sync.RWMutex
	categories []models.Category
}

// NewCategoryRepository loads the categories collection
func NewCategoryRepository(ctx context.Context, store docstore.Store) (*CategoryRepository, error) {
	r := &CategoryRepository{store: store}

	if err := store.Load(ctx, docstore.CollectionCategories, &r.categories); err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	return r, nil
}

// All returns the full collection in insertion order
func (r *CategoryRepository) All() []models.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// ReplaceAll overwrites the whole collection (used by seeding)
func (r *CategoryRepository) ReplaceAll(ctx context.Context, categories []models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Replace(ctx, docstore.CollectionCategories, categories); err != nil {
		return fmt.Errorf("persist categories: %w", err)
	}

	r.categories = categories
	return nil
}
