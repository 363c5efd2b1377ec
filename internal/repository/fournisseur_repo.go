package repository

import (
	"context"

	"stationops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FournisseurRepository interface {
	Create(ctx context.Context, f *model.Fournisseur) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Fournisseur, error)
	List(ctx context.Context) ([]model.Fournisseur, error)
	Update(ctx context.Context, f *model.Fournisseur) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type fournisseurRepo struct{ db *gorm.DB }

func NewFournisseurRepository(db *gorm.DB) FournisseurRepository { return &fournisseurRepo{db: db} }

func (r *fournisseurRepo) Create(ctx context.Context, f *model.Fournisseur) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fournisseurRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Fournisseur, error) {
	var f model.Fournisseur
	err := r.db.WithContext(ctx).First(&f, id).Error
	return &f, err
}

func (r *fournisseurRepo) List(ctx context.Context) ([]model.Fournisseur, error) {
	var fournisseurs []model.Fournisseur
	err := r.db.WithContext(ctx).Where("actif = true").Order("raison_sociale ASC").Find(&fournisseurs).Error
	return fournisseurs, err
}

func (r *fournisseurRepo) Update(ctx context.Context, f *model.Fournisseur) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *fournisseurRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Fournisseur{}).Where("id = ?", id).Update("actif", false).Error
}
