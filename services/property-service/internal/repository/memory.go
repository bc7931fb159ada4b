package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mamzpy/property-management-system/services/property-service/internal/domain"
	"github.com/mamzpy/property-management-system/services/property-service/internal/service"
)

// MemoryRepo is an in-memory property store for tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[int64]domain.Property
	nextID int64
	writes int
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[int64]domain.Property), nextID: 1}
}

func (r *MemoryRepo) Create(_ context.Context, p *domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	} else if p.ID >= r.nextID {
		r.nextID = p.ID + 1
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.byID[p.ID] = *p
	return nil
}

func (r *MemoryRepo) ByID(_ context.Context, id int64) (*domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &p, nil
}

func (r *MemoryRepo) List(_ context.Context) ([]domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Property, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepo) Update(_ context.Context, p *domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return service.ErrNotFound
	}
	p.UpdatedAt = time.Now().UTC()
	r.byID[p.ID] = *p
	r.writes++
	return nil
}

func (r *MemoryRepo) SetStatus(_ context.Context, id int64, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return service.ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = time.Now().UTC()
	r.byID[id] = p
	r.writes++
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

// Writes reports how many mutations ran; tests assert idempotent consumers
// perform no second write on redelivery.
func (r *MemoryRepo) Writes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writes
}

var _ service.Repository = (*MemoryRepo)(nil)
