package service

import (
	"context"
	"errors"

	"stationops/internal/dto"
	"stationops/internal/model"
	"stationops/internal/repository"

	"github.com/google/uuid"
)

type FournisseurService interface {
	Creer(ctx context.Context, req dto.CreerFournisseurRequest) (*dto.FournisseurResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.FournisseurResponse, error)
	List(ctx context.Context) ([]dto.FournisseurResponse, error)
	Modifier(ctx context.Context, id uuid.UUID, req dto.CreerFournisseurRequest) (*dto.FournisseurResponse, error)
	Desactiver(ctx context.Context, id uuid.UUID) error
}

type fournisseurService struct {
	repo repository.FournisseurRepository
}

func NewFournisseurService(repo repository.FournisseurRepository) FournisseurService {
	return &fournisseurService{repo: repo}
}

func (s *fournisseurService) Creer(ctx context.Context, req dto.CreerFournisseurRequest) (*dto.FournisseurResponse, error) {
	fournisseur := model.Fournisseur{
		RaisonSociale:  req.RaisonSociale,
		NIU:            req.NIU,
		Telephone:      req.Telephone,
		Email:          req.Email,
		Adresse:        req.Adresse,
		ConditionsPaie: req.ConditionsPaie,
		Actif:          true,
	}
	if err := s.repo.Create(ctx, &fournisseur); err != nil {
		return nil, err
	}
	return fournisseurToResponse(&fournisseur), nil
}

func (s *fournisseurService) Get(ctx context.Context, id uuid.UUID) (*dto.FournisseurResponse, error) {
	fournisseur, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("fournisseur introuvable")
	}
	return fournisseurToResponse(fournisseur), nil
}

func (s *fournisseurService) List(ctx context.Context) ([]dto.FournisseurResponse, error) {
	fournisseurs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.FournisseurResponse, 0, len(fournisseurs))
	for i := range fournisseurs {
		resp = append(resp, *fournisseurToResponse(&fournisseurs[i]))
	}
	return resp, nil
}

func (s *fournisseurService) Modifier(ctx context.Context, id uuid.UUID, req dto.CreerFournisseurRequest) (*dto.FournisseurResponse, error) {
	fournisseur, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("fournisseur introuvable")
	}
	fournisseur.RaisonSociale = req.RaisonSociale
	fournisseur.NIU = req.NIU
	fournisseur.Telephone = req.Telephone
	fournisseur.Email = req.Email
	fournisseur.Adresse = req.Adresse
	fournisseur.ConditionsPaie = req.ConditionsPaie
	if err := s.repo.Update(ctx, fournisseur); err != nil {
		return nil, err
	}
	return fournisseurToResponse(fournisseur), nil
}

func (s *fournisseurService) Desactiver(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func fournisseurToResponse(f *model.Fournisseur) *dto.FournisseurResponse {
	return &dto.FournisseurResponse{
		ID:             f.ID.String(),
		RaisonSociale:  f.RaisonSociale,
		NIU:            f.NIU,
		Telephone:      f.Telephone,
		Email:          f.Email,
		Adresse:        f.Adresse,
		ConditionsPaie: f.ConditionsPaie,
		Actif:          f.Actif,
	}
}
