package repository

import (
	"context"

	"stationops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReceptionRepository interface {
	CreateTx(tx *gorm.DB, r *model.BonReception) error
	CreateMouvementTx(tx *gorm.DB, m *model.MouvementStock) error
	ListByCommande(ctx context.Context, commandeID uuid.UUID) ([]model.BonReception, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.BonReception, error)
	UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error
}

type receptionRepo struct{ db *gorm.DB }

func NewReceptionRepository(db *gorm.DB) ReceptionRepository { return &receptionRepo{db: db} }

func (r *receptionRepo) CreateTx(tx *gorm.DB, br *model.BonReception) error {
	return tx.Create(br).Error
}

func (r *receptionRepo) CreateMouvementTx(tx *gorm.DB, m *model.MouvementStock) error {
	return tx.Create(m).Error
}

func (r *receptionRepo) ListByCommande(ctx context.Context, commandeID uuid.UUID) ([]model.BonReception, error) {
	var receptions []model.BonReception
	err := r.db.WithContext(ctx).Preload("Lignes").
		Where("commande_id = ?", commandeID).
		Order("date_reception ASC").
		Find(&receptions).Error
	return receptions, err
}

func (r *receptionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.BonReception, error) {
	var br model.BonReception
	err := r.db.WithContext(ctx).Preload("Lignes").First(&br, id).Error
	return &br, err
}

func (r *receptionRepo) UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).Model(&model.BonReception{}).
		Where("id = ?", id).Update("pdf_path", path).Error
}
