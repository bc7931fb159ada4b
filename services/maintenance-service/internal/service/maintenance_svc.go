package service

import (
	"context"
	"errors"

	"github.com/mamzpy/property-management-system/services/maintenance-service/internal/domain"
)

var ErrNotFound = errors.New("maintenance request not found")

type Repository interface {
	Create(ctx context.Context, m *domain.Maintenance) error
	ByID(ctx context.Context, id string) (*domain.Maintenance, error)
	List(ctx context.Context) ([]domain.Maintenance, error)
	SetStatus(ctx context.Context, id, status string) error
}

type MaintenanceSvc struct {
	repo Repository
}

func NewMaintenanceSvc(r Repository) *MaintenanceSvc {
	return &MaintenanceSvc{repo: r}
}

func (s *MaintenanceSvc) Create(ctx context.Context, in domain.Maintenance) (*domain.Maintenance, error) {
	if in.Status == "" {
		in.Status = domain.StatusOpen
	}
	if in.Priority == "" {
		in.Priority = "low"
	}
	if err := s.repo.Create(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *MaintenanceSvc) Get(ctx context.Context, id string) (*domain.Maintenance, error) {
	return s.repo.ByID(ctx, id)
}

func (s *MaintenanceSvc) List(ctx context.Context) ([]domain.Maintenance, error) {
	return s.repo.List(ctx)
}

func (s *MaintenanceSvc) SetStatus(ctx context.Context, id, status string) (*domain.Maintenance, error) {
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.ByID(ctx, id)
}
