package service

import (
	"context"
	"errors"

	"github.com/mamzpy/property-management-system/services/tenant-service/internal/domain"
)

var ErrNotFound = errors.New("tenant not found")

// Repository persists tenant records. ByUserAndProperty returns ErrNotFound
// when no record exists for the pair; it is the consumer's idempotency guard.
type Repository interface {
	Create(ctx context.Context, t *domain.Tenant) error
	ByID(ctx context.Context, id string) (*domain.Tenant, error)
	ByUserAndProperty(ctx context.Context, userID string, propertyID int64) (*domain.Tenant, error)
	List(ctx context.Context) ([]domain.Tenant, error)
	Update(ctx context.Context, t *domain.Tenant) error
	Delete(ctx context.Context, id string) error
}

type TenantSvc struct {
	repo Repository
}

func NewTenantSvc(r Repository) *TenantSvc {
	return &TenantSvc{repo: r}
}

func (s *TenantSvc) Create(ctx context.Context, in domain.Tenant) (*domain.Tenant, error) {
	if in.Status == "" {
		in.Status = domain.StatusActive
	}
	if err := s.repo.Create(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *TenantSvc) Get(ctx context.Context, id string) (*domain.Tenant, error) {
	return s.repo.ByID(ctx, id)
}

func (s *TenantSvc) List(ctx context.Context) ([]domain.Tenant, error) {
	return s.repo.List(ctx)
}

func (s *TenantSvc) Update(ctx context.Context, in domain.Tenant) (*domain.Tenant, error) {
	current, err := s.repo.ByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	current.FirstName = in.FirstName
	current.LastName = in.LastName
	current.Email = in.Email
	current.Phone = in.Phone
	current.EmergencyContact = in.EmergencyContact
	current.EmergencyPhone = in.EmergencyPhone
	if in.Status != "" {
		current.Status = in.Status
	}
	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *TenantSvc) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
