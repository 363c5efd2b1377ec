package service

import (
	"context"
	"errors"
	"time"

	"stationops/internal/dto"
	"stationops/internal/model"
	"stationops/internal/repository"

	"github.com/google/uuid"
)

type DepenseService interface {
	Creer(ctx context.Context, userID uuid.UUID, req dto.CreerDepenseRequest) (*dto.DepenseResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.DepenseResponse, error)
	List(ctx context.Context, depuis, jusqu, categorie string) ([]dto.DepenseResponse, error)
	Modifier(ctx context.Context, id uuid.UUID, req dto.CreerDepenseRequest) (*dto.DepenseResponse, error)
	Supprimer(ctx context.Context, id uuid.UUID) error
}

type depenseService struct {
	repo repository.DepenseRepository
}

func NewDepenseService(repo repository.DepenseRepository) DepenseService {
	return &depenseService{repo: repo}
}

func (s *depenseService) Creer(ctx context.Context, userID uuid.UUID, req dto.CreerDepenseRequest) (*dto.DepenseResponse, error) {
	date, err := parseDate("date_depense", req.DateDepense)
	if err != nil {
		return nil, err
	}
	depense := model.Depense{
		Libelle:     req.Libelle,
		Categorie:   req.Categorie,
		Montant:     req.Montant,
		DateDepense: date,
		Notes:       req.Notes,
		CreePar:     userID,
	}
	if err := s.repo.Create(ctx, &depense); err != nil {
		return nil, err
	}
	return depenseToResponse(&depense), nil
}

func (s *depenseService) Get(ctx context.Context, id uuid.UUID) (*dto.DepenseResponse, error) {
	depense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("dépense introuvable")
	}
	return depenseToResponse(depense), nil
}

func (s *depenseService) List(ctx context.Context, depuis, jusqu, categorie string) ([]dto.DepenseResponse, error) {
	var depuisT, jusquT *time.Time
	if depuis != "" {
		d, err := parseDate("depuis", depuis)
		if err != nil {
			return nil, err
		}
		depuisT = &d
	}
	if jusqu != "" {
		d, err := parseDate("jusqu", jusqu)
		if err != nil {
			return nil, err
		}
		jusquT = &d
	}

	depenses, err := s.repo.List(ctx, depuisT, jusquT, categorie)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.DepenseResponse, 0, len(depenses))
	for i := range depenses {
		resp = append(resp, *depenseToResponse(&depenses[i]))
	}
	return resp, nil
}

func (s *depenseService) Modifier(ctx context.Context, id uuid.UUID, req dto.CreerDepenseRequest) (*dto.DepenseResponse, error) {
	depense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("dépense introuvable")
	}
	date, err := parseDate("date_depense", req.DateDepense)
	if err != nil {
		return nil, err
	}
	depense.Libelle = req.Libelle
	depense.Categorie = req.Categorie
	depense.Montant = req.Montant
	depense.DateDepense = date
	depense.Notes = req.Notes
	if err := s.repo.Update(ctx, depense); err != nil {
		return nil, err
	}
	return depenseToResponse(depense), nil
}

func (s *depenseService) Supprimer(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func depenseToResponse(d *model.Depense) *dto.DepenseResponse {
	return &dto.DepenseResponse{
		ID:          d.ID.String(),
		Libelle:     d.Libelle,
		Categorie:   d.Categorie,
		Montant:     d.Montant,
		DateDepense: d.DateDepense.Format("2006-01-02"),
		Notes:       d.Notes,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
}
