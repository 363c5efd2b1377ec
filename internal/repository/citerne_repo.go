package repository

import (
	"context"

	"stationops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CiterneRepository interface {
	Create(ctx context.Context, c *model.Citerne) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Citerne, error)
	List(ctx context.Context) ([]model.Citerne, error)
	CreateReleve(ctx context.Context, r *model.ReleveCiterne) error
	FindReleveByID(ctx context.Context, id uuid.UUID) (*model.ReleveCiterne, error)
	ListRelevesByQuart(ctx context.Context, quartID uuid.UUID) ([]model.ReleveCiterne, error)
	// CloturerReleveTx freezes a reading and carries the ending index into the
	// tank's dernier_index, both guarded by the reading's version.
	CloturerReleveTx(tx *gorm.DB, r *model.ReleveCiterne) error
	DB() *gorm.DB
}

type citerneRepo struct{ db *gorm.DB }

func NewCiterneRepository(db *gorm.DB) CiterneRepository { return &citerneRepo{db: db} }

func (r *citerneRepo) Create(ctx context.Context, c *model.Citerne) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *citerneRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Citerne, error) {
	var c model.Citerne
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *citerneRepo) List(ctx context.Context) ([]model.Citerne, error) {
	var citernes []model.Citerne
	err := r.db.WithContext(ctx).Where("actif = true").Order("nom ASC").Find(&citernes).Error
	return citernes, err
}

func (r *citerneRepo) CreateReleve(ctx context.Context, rel *model.ReleveCiterne) error {
	return r.db.WithContext(ctx).Create(rel).Error
}

func (r *citerneRepo) FindReleveByID(ctx context.Context, id uuid.UUID) (*model.ReleveCiterne, error) {
	var rel model.ReleveCiterne
	err := r.db.WithContext(ctx).Preload("Citerne").First(&rel, id).Error
	return &rel, err
}

func (r *citerneRepo) ListRelevesByQuart(ctx context.Context, quartID uuid.UUID) ([]model.ReleveCiterne, error) {
	var releves []model.ReleveCiterne
	err := r.db.WithContext(ctx).Preload("Citerne").
		Where("quart_id = ?", quartID).Find(&releves).Error
	return releves, err
}

func (r *citerneRepo) CloturerReleveTx(tx *gorm.DB, rel *model.ReleveCiterne) error {
	res := tx.Model(&model.ReleveCiterne{}).
		Where("id = ? AND version = ?", rel.ID, rel.Version).
		Updates(map[string]interface{}{
			"index_debut":      rel.IndexDebut,
			"index_fin":        rel.IndexFin,
			"volume_distribue": rel.VolumeDistribue,
			"ecart_montant":    rel.EcartMontant,
			"ecart_niveau":     rel.EcartNiveau,
			"statut":           "clos",
			"closed_at":        rel.ClosedAt,
			"version":          rel.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return tx.Model(&model.Citerne{}).
		Where("id = ?", rel.CiterneID).
		Update("dernier_index", rel.IndexFin).Error
}

func (r *citerneRepo) DB() *gorm.DB { return r.db }
