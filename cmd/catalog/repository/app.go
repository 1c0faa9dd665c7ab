package repository

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/droidbay/catalog/cmd/catalog/models"
	"github.com/droidbay/catalog/common/docstore"
)

// AppRepository owns the in-memory copy of the apps collection and keeps it
// synchronized to the document store. Every mutation rebuilds the full
// collection and replaces it wholesale; the store's last-write-wins contract
// is accepted, not strengthened.
type AppRepository struct {
	store docstore.Store
	mu    sync.RWMutex
	apps  []models.App
}

// NewAppRepository loads the apps collection and returns a repository
func NewAppRepository(ctx context.Context, store docstore.Store) (*AppRepository, error) {
	r := &AppRepository{store: store}

	if err := store.Load(ctx, docstore.CollectionApps, &r.apps); err != nil {
		return nil, fmt.Errorf("load apps: %w", err)
	}

	return r, nil
}

// All returns the full collection in insertion order
func (r *AppRepository) All() []models.App {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.App, len(r.apps))
	copy(out, r.apps)
	return out
}

// Get returns an app by ID
func (r *AppRepository) Get(id string) (models.App, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, app := range r.apps {
		if app.ID == id {
			return app, true
		}
	}
	return models.App{}, false
}

// Insert assigns the next ID, appends the app and persists the collection.
// IDs are max(existing numeric ids)+1, stringified; "1" for an empty
// collection. The in-memory copy is only updated after a successful persist.
func (r *AppRepository) Insert(ctx context.Context, app models.App) (models.App, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	maxID := 0
	for _, existing := range r.apps {
		if n, err := strconv.Atoi(existing.ID); err == nil && n > maxID {
			maxID = n
		}
	}
	app.ID = strconv.Itoa(maxID + 1)

	next := make([]models.App, len(r.apps), len(r.apps)+1)
	copy(next, r.apps)
	next = append(next, app)

	if err := r.store.Replace(ctx, docstore.CollectionApps, next); err != nil {
		return models.App{}, fmt.Errorf("persist apps: %w", err)
	}

	r.apps = next
	return app, nil
}

// Update replaces an app in place and persists the collection.
// Returns found=false when the ID is unknown.
func (r *AppRepository) Update(ctx context.Context, id string, app models.App) (models.App, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return models.App{}, false, nil
	}

	app.ID = id

	next := make([]models.App, len(r.apps))
	copy(next, r.apps)
	next[idx] = app

	if err := r.store.Replace(ctx, docstore.CollectionApps, next); err != nil {
		return models.App{}, true, fmt.Errorf("persist apps: %w", err)
	}

	r.apps = next
	return app, true, nil
}

// SetArtifact records the stored APK filename for an app and persists
func (r *AppRepository) SetArtifact(ctx context.Context, id, filename string) (models.App, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return models.App{}, false, nil
	}

	next := make([]models.App, len(r.apps))
	copy(next, r.apps)
	next[idx].ApkFilename = &filename

	if err := r.store.Replace(ctx, docstore.CollectionApps, next); err != nil {
		return models.App{}, true, fmt.Errorf("persist apps: %w", err)
	}

	r.apps = next
	return next[idx], true, nil
}

// Delete removes an app from the collection and persists.
// The artifact file is left behind on purpose.
func (r *AppRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	next := make([]models.App, 0, len(r.apps)-1)
	next = append(next, r.apps[:idx]...)
	next = append(next, r.apps[idx+1:]...)

	if err := r.store.Replace(ctx, docstore.CollectionApps, next); err != nil {
		return true, fmt.Errorf("persist apps: %w", err)
	}

	r.apps = next
	return true, nil
}

// ReplaceAll overwrites the whole collection (used by seeding)
func (r *AppRepository) ReplaceAll(ctx context.Context, apps []models.App) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Replace(ctx, docstore.CollectionApps, apps); err != nil {
		return fmt.Errorf("persist apps: %w", err)
	}

	r.apps = apps
	return nil
}

// indexOf must be called with the lock held
func (r *AppRepository) indexOf(id string) int {
	for i, app := range r.apps {
		if app.ID == id {
			return i
		}
	}
	return -1
}
