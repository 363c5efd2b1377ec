package repository

import (
	"context"

	"stationops/internal/model"

	"gorm.io/gorm"
)

type ActiviteRepository interface {
	Create(ctx context.Context, a *model.JournalActivite) error
	CreateTx(tx *gorm.DB, a *model.JournalActivite) error
	List(ctx context.Context, entite string, page, limit int) ([]model.JournalActivite, int64, error)
}

type activiteRepo struct{ db *gorm.DB }

func NewActiviteRepository(db *gorm.DB) ActiviteRepository { return &activiteRepo{db: db} }

func (r *activiteRepo) Create(ctx context.Context, a *model.JournalActivite) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *activiteRepo) CreateTx(tx *gorm.DB, a *model.JournalActivite) error {
	return tx.Create(a).Error
}

func (r *activiteRepo) List(ctx context.Context, entite string, page, limit int) ([]model.JournalActivite, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.JournalActivite{})
	if entite != "" {
		q = q.Where("entite = ?", entite)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var activites []model.JournalActivite
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&activites).Error
	return activites, total, err
}
