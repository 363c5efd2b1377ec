package repository

import (
	"context"

	"stationops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CaisseRepository interface {
	Create(ctx context.Context, c *model.Caisse) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caisse, error)
	List(ctx context.Context) ([]model.Caisse, error)
	CreateSession(ctx context.Context, s *model.SessionCaisse) error
	FindSessionByID(ctx context.Context, id uuid.UUID) (*model.SessionCaisse, error)
	FindSessionOuvertePourCaisse(ctx context.Context, caisseID uuid.UUID) (*model.SessionCaisse, error)
	ListSessionsByQuart(ctx context.Context, quartID uuid.UUID) ([]model.SessionCaisse, error)
	UpdateSession(ctx context.Context, s *model.SessionCaisse) error
}

type caisseRepo struct{ db *gorm.DB }

func NewCaisseRepository(db *gorm.DB) CaisseRepository { return &caisseRepo{db: db} }

func (r *caisseRepo) Create(ctx context.Context, c *model.Caisse) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *caisseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caisse, error) {
	var c model.Caisse
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *caisseRepo) List(ctx context.Context) ([]model.Caisse, error) {
	var caisses []model.Caisse
	err := r.db.WithContext(ctx).Where("actif = true").Order("libelle ASC").Find(&caisses).Error
	return caisses, err
}

func (r *caisseRepo) CreateSession(ctx context.Context, s *model.SessionCaisse) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *caisseRepo) FindSessionByID(ctx context.Context, id uuid.UUID) (*model.SessionCaisse, error) {
	var s model.SessionCaisse
	err := r.db.WithContext(ctx).Preload("Caisse").First(&s, id).Error
	return &s, err
}

func (r *caisseRepo) FindSessionOuvertePourCaisse(ctx context.Context, caisseID uuid.UUID) (*model.SessionCaisse, error) {
	var s model.SessionCaisse
	err := r.db.WithContext(ctx).
		Where("caisse_id = ? AND statut = 'ouverte'", caisseID).First(&s).Error
	return &s, err
}

func (r *caisseRepo) ListSessionsByQuart(ctx context.Context, quartID uuid.UUID) ([]model.SessionCaisse, error) {
	var sessions []model.SessionCaisse
	err := r.db.WithContext(ctx).Preload("Caisse").
		Where("quart_id = ?", quartID).Find(&sessions).Error
	return sessions, err
}

func (r *caisseRepo) UpdateSession(ctx context.Context, s *model.SessionCaisse) error {
	return r.db.WithContext(ctx).Save(s).Error
}
