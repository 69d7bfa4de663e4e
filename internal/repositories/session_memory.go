package repositories

import (
	"context"
	"sync"

	"repair-system/internal/entities"
)

// MemorySessionRepository backs tests and redis-less development.
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]entities.User
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: map[string]entities.User{}}
}

func (r *MemorySessionRepository) Save(ctx context.Context, user entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[user.ID] = user
	return nil
}

func (r *MemorySessionRepository) Get(ctx context.Context, userID string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.sessions[userID]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *MemorySessionRepository) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
	return nil
}
