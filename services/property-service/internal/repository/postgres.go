package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mamzpy/property-management-system/services/property-service/internal/domain"
	"github.com/mamzpy/property-management-system/services/property-service/internal/service"
)

type PropertyRepo struct{ db *gorm.DB }

func NewPropertyRepo(db *gorm.DB) *PropertyRepo {
	return &PropertyRepo{db: db}
}

func (r *PropertyRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Property{})
}

func (r *PropertyRepo) Create(ctx context.Context, p *domain.Property) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PropertyRepo) ByID(ctx context.Context, id int64) (*domain.Property, error) {
	var p domain.Property
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PropertyRepo) List(ctx context.Context) ([]domain.Property, error) {
	var out []domain.Property
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *PropertyRepo) Update(ctx context.Context, p *domain.Property) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PropertyRepo) SetStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Property{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *PropertyRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Property{}, "id = ?", id).Error
}

var _ service.Repository = (*PropertyRepo)(nil)
