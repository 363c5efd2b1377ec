package service

import (
	"context"
	"errors"

	"stationops/internal/apierror"
	"stationops/internal/dto"
	"stationops/internal/model"
	"stationops/internal/repository"

	"github.com/google/uuid"
)

type ClientService interface {
	Creer(ctx context.Context, req dto.CreerClientRequest) (*dto.ClientResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error)
	List(ctx context.Context, typeClient string) ([]dto.ClientResponse, error)
	Desactiver(ctx context.Context, id uuid.UUID) error
}

type clientService struct {
	repo repository.ClientRepository
}

func NewClientService(repo repository.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

// Creer builds the client from exactly one variant's fields. The switch is
// exhaustive on TypeClient — an unknown type is a validation error, and fields
// of the other variant are dropped, never silently stored.
func (s *clientService) Creer(ctx context.Context, req dto.CreerClientRequest) (*dto.ClientResponse, error) {
	typeClient := model.TypeClient(req.TypeClient)
	if !typeClient.Valide() {
		return nil, apierror.NewValidation(map[string]string{
			"type_client": "type de client inconnu : particulier ou professionnel attendu",
		})
	}

	client := model.Client{
		Type:      typeClient,
		Telephone: req.Telephone,
		Email:     req.Email,
		Adresse:   req.Adresse,
		Actif:     true,
	}

	fields := map[string]string{}
	switch typeClient {
	case model.ClientParticulier:
		if req.Nom == nil || *req.Nom == "" {
			fields["nom"] = "le nom est requis pour un particulier"
		}
		client.Prenom = req.Prenom
		client.Nom = req.Nom
	case model.ClientProfessionnel:
		if req.RaisonSociale == nil || *req.RaisonSociale == "" {
			fields["raison_sociale"] = "la raison sociale est requise pour un professionnel"
		}
		if req.NIU == nil || *req.NIU == "" {
			fields["niu"] = "le NIU est requis pour un professionnel"
		}
		if req.PlafondCredit != nil && req.PlafondCredit.IsNegative() {
			fields["plafond_credit"] = "le plafond de crédit doit être positif ou nul"
		}
		client.RaisonSociale = req.RaisonSociale
		client.NIU = req.NIU
		client.PlafondCredit = req.PlafondCredit
	}
	if len(fields) > 0 {
		return nil, apierror.NewValidation(fields)
	}

	if err := s.repo.Create(ctx, &client); err != nil {
		return nil, err
	}
	return clientToResponse(&client), nil
}

func (s *clientService) Get(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("client introuvable")
	}
	return clientToResponse(client), nil
}

func (s *clientService) List(ctx context.Context, typeClient string) ([]dto.ClientResponse, error) {
	clients, err := s.repo.List(ctx, typeClient)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		resp = append(resp, *clientToResponse(&clients[i]))
	}
	return resp, nil
}

func (s *clientService) Desactiver(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func clientToResponse(c *model.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:            c.ID.String(),
		TypeClient:    string(c.Type),
		NomAffichage:  c.NomAffichage(),
		Prenom:        c.Prenom,
		Nom:           c.Nom,
		RaisonSociale: c.RaisonSociale,
		NIU:           c.NIU,
		PlafondCredit: c.PlafondCredit,
		Telephone:     c.Telephone,
		Email:         c.Email,
		Adresse:       c.Adresse,
		Actif:         c.Actif,
	}
}
