package repository

import (
	"context"

	"stationops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FactureRepository interface {
	Create(ctx context.Context, f *model.Facture) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Facture, error)
	List(ctx context.Context, statut string, page, limit int) ([]model.Facture, int64, error)
	UpdateStatut(ctx context.Context, id uuid.UUID, statut string) error
	UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error
	NextNumero(ctx context.Context) (string, error)
}

type factureRepo struct{ db *gorm.DB }

func NewFactureRepository(db *gorm.DB) FactureRepository { return &factureRepo{db: db} }

func (r *factureRepo) Create(ctx context.Context, f *model.Facture) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *factureRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Facture, error) {
	var f model.Facture
	err := r.db.WithContext(ctx).Preload("Lignes").Preload("Client").First(&f, id).Error
	return &f, err
}

func (r *factureRepo) List(ctx context.Context, statut string, page, limit int) ([]model.Facture, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Facture{})
	if statut != "" {
		q = q.Where("statut = ?", statut)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var factures []model.Facture
	err := q.Preload("Lignes").Preload("Client").
		Order("date_emise DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&factures).Error
	return factures, total, err
}

func (r *factureRepo) UpdateStatut(ctx context.Context, id uuid.UUID, statut string) error {
	return r.db.WithContext(ctx).Model(&model.Facture{}).
		Where("id = ?", id).Update("statut", statut).Error
}

func (r *factureRepo) UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).Model(&model.Facture{}).
		Where("id = ?", id).Update("pdf_path", path).Error
}

func (r *factureRepo) NextNumero(ctx context.Context) (string, error) {
	var n int64
	err := r.db.WithContext(ctx).Raw("SELECT nextval('seq_numero_facture')").Scan(&n).Error
	if err != nil {
		return "", err
	}
	return model.FormatNumeroFacture(n), nil
}
