package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stationops/internal/dto"
	"stationops/internal/model"
	"stationops/internal/repository"

	"github.com/google/uuid"
)

type ReclamationService interface {
	Creer(ctx context.Context, req dto.CreerReclamationRequest) (*dto.ReclamationResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ReclamationResponse, error)
	List(ctx context.Context, statut string) ([]dto.ReclamationResponse, error)
	Traiter(ctx context.Context, id uuid.UUID, req dto.TraiterReclamationRequest) (*dto.ReclamationResponse, error)
}

type reclamationService struct {
	repo       repository.ReclamationRepository
	clientRepo repository.ClientRepository
}

func NewReclamationService(repo repository.ReclamationRepository, clientRepo repository.ClientRepository) ReclamationService {
	return &reclamationService{repo: repo, clientRepo: clientRepo}
}

func (s *reclamationService) Creer(ctx context.Context, req dto.CreerReclamationRequest) (*dto.ReclamationResponse, error) {
	reclamation := model.Reclamation{
		Objet:       req.Objet,
		Description: req.Description,
		Statut:      "ouverte",
	}
	if req.ClientID != nil {
		cid, err := uuid.Parse(*req.ClientID)
		if err != nil {
			return nil, errors.New("client_id : identifiant invalide")
		}
		client, err := s.clientRepo.FindByID(ctx, cid)
		if err != nil {
			return nil, errors.New("client introuvable")
		}
		reclamation.ClientID = &cid
		reclamation.Client = client
	}
	if err := s.repo.Create(ctx, &reclamation); err != nil {
		return nil, err
	}
	return reclamationToResponse(&reclamation), nil
}

func (s *reclamationService) Get(ctx context.Context, id uuid.UUID) (*dto.ReclamationResponse, error) {
	reclamation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("réclamation introuvable")
	}
	return reclamationToResponse(reclamation), nil
}

func (s *reclamationService) List(ctx context.Context, statut string) ([]dto.ReclamationResponse, error) {
	reclamations, err := s.repo.List(ctx, statut)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ReclamationResponse, 0, len(reclamations))
	for i := range reclamations {
		resp = append(resp, *reclamationToResponse(&reclamations[i]))
	}
	return resp, nil
}

// Traiter advances the complaint: ouverte → en_cours → resolue, forward only.
func (s *reclamationService) Traiter(ctx context.Context, id uuid.UUID, req dto.TraiterReclamationRequest) (*dto.ReclamationResponse, error) {
	reclamation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("réclamation introuvable")
	}
	if reclamation.Statut == "resolue" {
		return nil, errors.New("la réclamation est déjà résolue")
	}
	if reclamation.Statut == "ouverte" && req.Statut == "resolue" && req.Resolution == nil {
		return nil, errors.New("resolution : une résolution est requise pour clore la réclamation")
	}
	if reclamation.Statut == "en_cours" && req.Statut == "en_cours" {
		return nil, fmt.Errorf("la réclamation est déjà au statut %q", req.Statut)
	}

	reclamation.Statut = req.Statut
	if req.Resolution != nil {
		reclamation.Resolution = req.Resolution
	}
	if err := s.repo.Update(ctx, reclamation); err != nil {
		return nil, err
	}
	return reclamationToResponse(reclamation), nil
}

func reclamationToResponse(r *model.Reclamation) *dto.ReclamationResponse {
	resp := &dto.ReclamationResponse{
		ID:          r.ID.String(),
		Objet:       r.Objet,
		Description: r.Description,
		Statut:      r.Statut,
		Resolution:  r.Resolution,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
	if r.Client != nil {
		nom := r.Client.NomAffichage()
		resp.Client = &nom
	}
	return resp
}
