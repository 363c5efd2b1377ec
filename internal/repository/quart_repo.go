package repository

import (
	"context"
	"time"

	"stationops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuartRepository interface {
	Create(ctx context.Context, q *model.Quart) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Quart, error)
	FindOuvert(ctx context.Context, date time.Time, libelle string) (*model.Quart, error)
	Update(ctx context.Context, q *model.Quart) error
	List(ctx context.Context, page, limit int) ([]model.Quart, int64, error)
}

type quartRepo struct{ db *gorm.DB }

func NewQuartRepository(db *gorm.DB) QuartRepository { return &quartRepo{db: db} }

func (r *quartRepo) Create(ctx context.Context, q *model.Quart) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *quartRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Quart, error) {
	var q model.Quart
	err := r.db.WithContext(ctx).First(&q, id).Error
	return &q, err
}

func (r *quartRepo) FindOuvert(ctx context.Context, date time.Time, libelle string) (*model.Quart, error) {
	var q model.Quart
	err := r.db.WithContext(ctx).
		Where("date = ? AND libelle = ? AND statut = 'ouvert'", date.Format("2006-01-02"), libelle).
		First(&q).Error
	return &q, err
}

func (r *quartRepo) Update(ctx context.Context, q *model.Quart) error {
	return r.db.WithContext(ctx).Save(q).Error
}

func (r *quartRepo) List(ctx context.Context, page, limit int) ([]model.Quart, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Quart{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var quarts []model.Quart
	err := r.db.WithContext(ctx).
		Order("date DESC, opened_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&quarts).Error
	return quarts, total, err
}
