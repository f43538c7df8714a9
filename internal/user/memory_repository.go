package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. It is meant for local
// development and tests; the mutex only protects the maps, callers still
// race on read-modify-write like with any other store.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]User),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryRepository) Create(_ context.Context, u *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[u.Email]; exists {
		return nil, ErrDuplicateEmail
	}

	now := time.Now().UTC()
	stored := *u
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID

	created := stored
	return &created, nil
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) Save(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[u.ID]
	if !ok {
		return ErrNotFound
	}

	if u.Email != current.Email {
		if _, taken := r.byEmail[u.Email]; taken {
			return ErrDuplicateEmail
		}
		delete(r.byEmail, current.Email)
		r.byEmail[u.Email] = u.ID
	}

	stored := *u
	stored.CreatedAt = current.CreatedAt
	stored.UpdatedAt = time.Now().UTC()
	r.byID[u.ID] = stored
	return nil
}
