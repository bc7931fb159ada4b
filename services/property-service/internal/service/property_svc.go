package service

import (
	"context"
	"errors"

	"github.com/mamzpy/property-management-system/services/property-service/internal/domain"
)

var ErrNotFound = errors.New("property not found")

// Repository persists properties. SetStatus is an idempotent partial update
// used by the booking.approved consumer.
type Repository interface {
	Create(ctx context.Context, p *domain.Property) error
	ByID(ctx context.Context, id int64) (*domain.Property, error)
	List(ctx context.Context) ([]domain.Property, error)
	Update(ctx context.Context, p *domain.Property) error
	SetStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

type PropertySvc struct {
	repo Repository
}

func NewPropertySvc(r Repository) *PropertySvc {
	return &PropertySvc{repo: r}
}

func (s *PropertySvc) Create(ctx context.Context, in domain.Property) (*domain.Property, error) {
	if in.Status == "" {
		in.Status = domain.StatusAvailable
	}
	if err := s.repo.Create(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *PropertySvc) Get(ctx context.Context, id int64) (*domain.Property, error) {
	return s.repo.ByID(ctx, id)
}

func (s *PropertySvc) List(ctx context.Context) ([]domain.Property, error) {
	return s.repo.List(ctx)
}

func (s *PropertySvc) Update(ctx context.Context, in domain.Property) (*domain.Property, error) {
	current, err := s.repo.ByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	current.Address = in.Address
	current.City = in.City
	current.State = in.State
	current.ZipCode = in.ZipCode
	current.RentAmount = in.RentAmount
	current.Bedrooms = in.Bedrooms
	current.Bathrooms = in.Bathrooms
	current.Description = in.Description
	if in.Status != "" {
		current.Status = in.Status
	}
	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *PropertySvc) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
