package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mamzpy/property-management-system/services/tenant-service/internal/domain"
	"github.com/mamzpy/property-management-system/services/tenant-service/internal/service"
)

// MemoryRepo is an in-memory tenant store for tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.Tenant
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]domain.Tenant)}
}

func (r *MemoryRepo) Create(_ context.Context, t *domain.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	r.byID[t.ID] = *t
	return nil
}

func (r *MemoryRepo) ByID(_ context.Context, id string) (*domain.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &t, nil
}

func (r *MemoryRepo) ByUserAndProperty(_ context.Context, userID string, propertyID int64) (*domain.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.byID {
		if t.UserID == userID && t.PropertyID == propertyID {
			out := t
			return &out, nil
		}
	}
	return nil, service.ErrNotFound
}

func (r *MemoryRepo) List(_ context.Context) ([]domain.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Tenant, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) Update(_ context.Context, t *domain.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[t.ID]; !ok {
		return service.ErrNotFound
	}
	t.UpdatedAt = time.Now().UTC()
	r.byID[t.ID] = *t
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

var _ service.Repository = (*MemoryRepo)(nil)
