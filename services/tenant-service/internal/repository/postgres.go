package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mamzpy/property-management-system/services/tenant-service/internal/domain"
	"github.com/mamzpy/property-management-system/services/tenant-service/internal/service"
)

type TenantRepo struct{ db *gorm.DB }

func NewTenantRepo(db *gorm.DB) *TenantRepo {
	return &TenantRepo{db: db}
}

func (r *TenantRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Tenant{})
}

func (r *TenantRepo) Create(ctx context.Context, t *domain.Tenant) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TenantRepo) ByID(ctx context.Context, id string) (*domain.Tenant, error) {
	var t domain.Tenant
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TenantRepo) ByUserAndProperty(ctx context.Context, userID string, propertyID int64) (*domain.Tenant, error) {
	var t domain.Tenant
	err := r.db.WithContext(ctx).
		First(&t, "user_id = ? AND property_id = ?", userID, propertyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TenantRepo) List(ctx context.Context) ([]domain.Tenant, error) {
	var out []domain.Tenant
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *TenantRepo) Update(ctx context.Context, t *domain.Tenant) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TenantRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Tenant{}, "id = ?", id).Error
}

var _ service.Repository = (*TenantRepo)(nil)
