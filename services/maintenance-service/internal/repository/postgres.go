package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mamzpy/property-management-system/services/maintenance-service/internal/domain"
	"github.com/mamzpy/property-management-system/services/maintenance-service/internal/service"
)

type MaintenanceRepo struct{ db *gorm.DB }

func NewMaintenanceRepo(db *gorm.DB) *MaintenanceRepo {
	return &MaintenanceRepo{db: db}
}

func (r *MaintenanceRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Maintenance{})
}

func (r *MaintenanceRepo) Create(ctx context.Context, m *domain.Maintenance) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MaintenanceRepo) ByID(ctx context.Context, id string) (*domain.Maintenance, error) {
	var m domain.Maintenance
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MaintenanceRepo) List(ctx context.Context) ([]domain.Maintenance, error) {
	var out []domain.Maintenance
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *MaintenanceRepo) SetStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Maintenance{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrNotFound
	}
	return nil
}

var _ service.Repository = (*MaintenanceRepo)(nil)
