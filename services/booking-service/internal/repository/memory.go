package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mamzpy/property-management-system/services/booking-service/internal/domain"
	"github.com/mamzpy/property-management-system/services/booking-service/internal/service"
)

// MemoryRepo is an in-memory booking store for tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.Booking
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]domain.Booking)}
}

func (r *MemoryRepo) Create(_ context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	r.byID[b.ID] = *b
	return nil
}

func (r *MemoryRepo) ByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byID[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &b, nil
}

func (r *MemoryRepo) Update(_ context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[b.ID]; !ok {
		return service.ErrNotFound
	}
	b.UpdatedAt = time.Now().UTC()
	r.byID[b.ID] = *b
	return nil
}

func (r *MemoryRepo) List(_ context.Context) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Booking, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) ListPending(_ context.Context) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Booking
	for _, b := range r.byID {
		if b.Status == domain.StatusPending {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

var _ service.Repository = (*MemoryRepo)(nil)
