package repository

import (
	"context"

	"stationops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReclamationRepository interface {
	Create(ctx context.Context, rc *model.Reclamation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reclamation, error)
	List(ctx context.Context, statut string) ([]model.Reclamation, error)
	Update(ctx context.Context, rc *model.Reclamation) error
}

type reclamationRepo struct{ db *gorm.DB }

func NewReclamationRepository(db *gorm.DB) ReclamationRepository { return &reclamationRepo{db: db} }

func (r *reclamationRepo) Create(ctx context.Context, rc *model.Reclamation) error {
	return r.db.WithContext(ctx).Create(rc).Error
}

func (r *reclamationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Reclamation, error) {
	var rc model.Reclamation
	err := r.db.WithContext(ctx).Preload("Client").First(&rc, id).Error
	return &rc, err
}

func (r *reclamationRepo) List(ctx context.Context, statut string) ([]model.Reclamation, error) {
	q := r.db.WithContext(ctx).Preload("Client")
	if statut != "" {
		q = q.Where("statut = ?", statut)
	}
	var reclamations []model.Reclamation
	err := q.Order("created_at DESC").Find(&reclamations).Error
	return reclamations, err
}

func (r *reclamationRepo) Update(ctx context.Context, rc *model.Reclamation) error {
	return r.db.WithContext(ctx).Save(rc).Error
}
