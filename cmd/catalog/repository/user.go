package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/droidbay/catalog/cmd/catalog/models"
	"github.com/droidbay/catalog/common/docstore"
)

// UserRepository owns the in-memory copy of the users collection.
// The uniqueness check and the insert run under one mutex, so concurrent
// registrations inside a single process cannot create duplicate usernames.
// Nothing stops a second process sharing the store from racing, though;
// that matches the store's whole-collection contract.
type UserRepository struct {
	store docstore.Store
	mu    sync.RWMutex
	users []models.User
}

// NewUserRepository loads the users collection
func NewUserRepository(ctx context.Context, store docstore.Store) (*UserRepository, error) {
	r := &UserRepository{store: store}

	if err := store.Load(ctx, docstore.CollectionUsers, &r.users); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	return r, nil
}

// FindByUsername returns a user by exact, case-sensitive username
func (r *UserRepository) FindByUsername(username string) (models.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			return user, true
		}
	}
	return models.User{}, false
}

// Create assigns the next sequential ID and inserts the user.
// Returns created=false when the username is already taken.
func (r *UserRepository) Create(ctx context.Context, user models.User) (models.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username {
			return models.User{}, false, nil
		}
	}

	user.ID = len(r.users) + 1

	next := make([]models.User, len(r.users), len(r.users)+1)
	copy(next, r.users)
	next = append(next, user)

	if err := r.store.Replace(ctx, docstore.CollectionUsers, next); err != nil {
		return models.User{}, true, fmt.Errorf("persist users: %w", err)
	}

	r.users = next
	return user, true, nil
}
