package repository

import (
	"context"

	"stationops/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProduitRepository interface {
	Create(ctx context.Context, p *model.Produit) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produit, error)
	FindBySKU(ctx context.Context, sku string) (*model.Produit, error)
	List(ctx context.Context, categorie string) ([]model.Produit, error)
	Update(ctx context.Context, p *model.Produit) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// AjouterStockTx increments stock inside an open transaction (receiving).
	AjouterStockTx(tx *gorm.DB, id uuid.UUID, quantite decimal.Decimal) error
}

type produitRepo struct{ db *gorm.DB }

func NewProduitRepository(db *gorm.DB) ProduitRepository { return &produitRepo{db: db} }

func (r *produitRepo) Create(ctx context.Context, p *model.Produit) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produitRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Produit, error) {
	var p model.Produit
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *produitRepo) FindBySKU(ctx context.Context, sku string) (*model.Produit, error) {
	var p model.Produit
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&p).Error
	return &p, err
}

func (r *produitRepo) List(ctx context.Context, categorie string) ([]model.Produit, error) {
	q := r.db.WithContext(ctx).Where("actif = true")
	if categorie != "" {
		q = q.Where("categorie = ?", categorie)
	}
	var produits []model.Produit
	err := q.Order("nom ASC").Find(&produits).Error
	return produits, err
}

func (r *produitRepo) Update(ctx context.Context, p *model.Produit) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *produitRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Produit{}).Where("id = ?", id).Update("actif", false).Error
}

func (r *produitRepo) AjouterStockTx(tx *gorm.DB, id uuid.UUID, quantite decimal.Decimal) error {
	return tx.Model(&model.Produit{}).
		Where("id = ?", id).
		Update("stock_actuel", gorm.Expr("stock_actuel + ?", quantite)).Error
}
