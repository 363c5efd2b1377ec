package repository

import (
	"context"
	"errors"

	"stationops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrVersionConflict is returned when an optimistic-lock UPDATE matched no
// row: another operator mutated the record since it was read. Recoverable —
// the caller should reload and retry or surface a conflict to the user.
var ErrVersionConflict = errors.New("conflit de version: la ressource a été modifiée par un autre opérateur")

type CommandeRepository interface {
	Create(ctx context.Context, c *model.BonCommande) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.BonCommande, error)
	List(ctx context.Context, statut string, page, limit int) ([]model.BonCommande, int64, error)
	// UpdateStatutTx transitions the order status with an optimistic version
	// check inside an open transaction.
	UpdateStatutTx(tx *gorm.DB, id uuid.UUID, version int, statut model.StatutCommande) error
	UpdateLigneRecueTx(tx *gorm.DB, ligneID uuid.UUID, l *model.LigneCommande) error
	NextNumero(ctx context.Context) (string, error)
	DB() *gorm.DB
}

type commandeRepo struct{ db *gorm.DB }

func NewCommandeRepository(db *gorm.DB) CommandeRepository { return &commandeRepo{db: db} }

func (r *commandeRepo) Create(ctx context.Context, c *model.BonCommande) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *commandeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.BonCommande, error) {
	var c model.BonCommande
	err := r.db.WithContext(ctx).Preload("Lignes").Preload("Fournisseur").First(&c, id).Error
	return &c, err
}

func (r *commandeRepo) List(ctx context.Context, statut string, page, limit int) ([]model.BonCommande, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.BonCommande{})
	if statut != "" {
		q = q.Where("statut = ?", statut)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var commandes []model.BonCommande
	err := q.Preload("Lignes").Preload("Fournisseur").
		Order("date_commande DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&commandes).Error
	return commandes, total, err
}

func (r *commandeRepo) UpdateStatutTx(tx *gorm.DB, id uuid.UUID, version int, statut model.StatutCommande) error {
	res := tx.Model(&model.BonCommande{}).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]interface{}{"statut": statut, "version": version + 1})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *commandeRepo) UpdateLigneRecueTx(tx *gorm.DB, ligneID uuid.UUID, l *model.LigneCommande) error {
	return tx.Model(&model.LigneCommande{}).
		Where("id = ?", ligneID).
		Update("quantite_recue", l.QuantiteRecue).Error
}

// NextNumero allocates a sequential order number (BC-000001…) from a
// dedicated Postgres sequence so concurrent creations never collide.
func (r *commandeRepo) NextNumero(ctx context.Context) (string, error) {
	var n int64
	err := r.db.WithContext(ctx).Raw("SELECT nextval('seq_numero_commande')").Scan(&n).Error
	if err != nil {
		return "", err
	}
	return model.FormatNumeroCommande(n), nil
}

func (r *commandeRepo) DB() *gorm.DB { return r.db }
