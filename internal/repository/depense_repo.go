package repository

import (
	"context"
	"time"

	"stationops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepenseRepository interface {
	Create(ctx context.Context, d *model.Depense) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Depense, error)
	List(ctx context.Context, depuis, jusqu *time.Time, categorie string) ([]model.Depense, error)
	Update(ctx context.Context, d *model.Depense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type depenseRepo struct{ db *gorm.DB }

func NewDepenseRepository(db *gorm.DB) DepenseRepository { return &depenseRepo{db: db} }

func (r *depenseRepo) Create(ctx context.Context, d *model.Depense) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *depenseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Depense, error) {
	var d model.Depense
	err := r.db.WithContext(ctx).First(&d, id).Error
	return &d, err
}

func (r *depenseRepo) List(ctx context.Context, depuis, jusqu *time.Time, categorie string) ([]model.Depense, error) {
	q := r.db.WithContext(ctx).Model(&model.Depense{})
	if depuis != nil {
		q = q.Where("date_depense >= ?", *depuis)
	}
	if jusqu != nil {
		q = q.Where("date_depense <= ?", *jusqu)
	}
	if categorie != "" {
		q = q.Where("categorie = ?", categorie)
	}
	var depenses []model.Depense
	err := q.Order("date_depense DESC").Find(&depenses).Error
	return depenses, err
}

func (r *depenseRepo) Update(ctx context.Context, d *model.Depense) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *depenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Depense{}, id).Error
}
