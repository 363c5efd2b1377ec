package service

import (
	"context"
	"errors"
	"fmt"

	"stationops/internal/dto"
	"stationops/internal/model"
	"stationops/internal/repository"
	"stationops/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FactureService interface {
	Creer(ctx context.Context, userID uuid.UUID, req dto.CreerFactureRequest) (*dto.FactureResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.FactureResponse, error)
	List(ctx context.Context, statut string, page, limit int) ([]dto.FactureResponse, int64, error)
	// Emettre issues a draft invoice: its numbers freeze and the PDF job fires.
	Emettre(ctx context.Context, id, userID uuid.UUID) (*dto.FactureResponse, error)
	MarquerPayee(ctx context.Context, id uuid.UUID) (*dto.FactureResponse, error)
	Annuler(ctx context.Context, id uuid.UUID) (*dto.FactureResponse, error)
}

type factureService struct {
	repo         repository.FactureRepository
	clientRepo   repository.ClientRepository
	activiteRepo repository.ActiviteRepository
	dispatcher   *worker.Dispatcher
}

func NewFactureService(
	repo repository.FactureRepository,
	clientRepo repository.ClientRepository,
	activiteRepo repository.ActiviteRepository,
	dispatcher *worker.Dispatcher,
) FactureService {
	return &factureService{repo: repo, clientRepo: clientRepo, activiteRepo: activiteRepo, dispatcher: dispatcher}
}

// Creer records the invoice in draft. Amounts are HT/TTC pass-through from the
// lines — totals are summed here, no tax is computed.
func (s *factureService) Creer(ctx context.Context, userID uuid.UUID, req dto.CreerFactureRequest) (*dto.FactureResponse, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, errors.New("client_id : identifiant invalide")
	}
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, errors.New("client introuvable")
	}

	dateEmise, err := parseDate("date_emise", req.DateEmise)
	if err != nil {
		return nil, err
	}

	facture := model.Facture{
		ClientID:  clientID,
		Statut:    "brouillon",
		DateEmise: dateEmise,
	}
	if req.Echeance != nil {
		d, err := parseDate("echeance", *req.Echeance)
		if err != nil {
			return nil, err
		}
		facture.Echeance = &d
	}

	totalHT := decimal.Zero
	totalTTC := decimal.Zero
	for _, lr := range req.Lignes {
		montantHT := lr.Quantite.Mul(lr.PrixUnitHT)
		totalHT = totalHT.Add(montantHT)
		totalTTC = totalTTC.Add(lr.MontantTTC)
		facture.Lignes = append(facture.Lignes, model.LigneFacture{
			Libelle:    lr.Libelle,
			Quantite:   lr.Quantite,
			PrixUnitHT: lr.PrixUnitHT,
			MontantHT:  montantHT,
			MontantTTC: lr.MontantTTC,
		})
	}
	facture.TotalHT = totalHT
	facture.TotalTTC = totalTTC

	numero, err := s.repo.NextNumero(ctx)
	if err != nil {
		return nil, err
	}
	facture.Numero = numero

	if err := s.repo.Create(ctx, &facture); err != nil {
		return nil, err
	}
	facture.Client = client

	entiteID := facture.ID
	_ = s.activiteRepo.Create(ctx, &model.JournalActivite{
		UtilisateurID: &userID,
		Action:        "facture.creee",
		Entite:        "facture",
		EntiteID:      &entiteID,
		Detail:        fmt.Sprintf("Facture %s pour %s, TTC %s", numero, client.NomAffichage(), totalTTC.StringFixed(2)),
	})

	resp := factureToResponse(&facture)

	// Issue immediately when the caller asked for a mail-out.
	if req.EnvoyerEmail {
		return s.Emettre(ctx, facture.ID, userID)
	}
	return resp, nil
}

func (s *factureService) Get(ctx context.Context, id uuid.UUID) (*dto.FactureResponse, error) {
	facture, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("facture introuvable")
	}
	return factureToResponse(facture), nil
}

func (s *factureService) List(ctx context.Context, statut string, page, limit int) ([]dto.FactureResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	factures, total, err := s.repo.List(ctx, statut, page, limit)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.FactureResponse, 0, len(factures))
	for i := range factures {
		resp = append(resp, *factureToResponse(&factures[i]))
	}
	return resp, total, nil
}

func (s *factureService) Emettre(ctx context.Context, id, userID uuid.UUID) (*dto.FactureResponse, error) {
	facture, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("facture introuvable")
	}
	if facture.Statut != "brouillon" {
		return nil, fmt.Errorf("seule une facture en brouillon peut être émise (statut actuel : %s)", facture.Statut)
	}
	if err := s.repo.UpdateStatut(ctx, id, "emise"); err != nil {
		return nil, err
	}
	facture.Statut = "emise"

	if s.dispatcher != nil {
		payload := worker.FacturePDFPayload{FactureID: facture.ID.String()}
		if facture.Client != nil && facture.Client.Email != nil {
			payload.ClientEmail = facture.Client.Email
		}
		_ = s.dispatcher.EnqueueDocument(ctx, "facture_pdf", payload)
	}

	entiteID := facture.ID
	_ = s.activiteRepo.Create(ctx, &model.JournalActivite{
		UtilisateurID: &userID,
		Action:        "facture.emise",
		Entite:        "facture",
		EntiteID:      &entiteID,
		Detail:        fmt.Sprintf("Facture %s émise", facture.Numero),
	})

	return factureToResponse(facture), nil
}

func (s *factureService) MarquerPayee(ctx context.Context, id uuid.UUID) (*dto.FactureResponse, error) {
	facture, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("facture introuvable")
	}
	if facture.Statut != "emise" {
		return nil, fmt.Errorf("seule une facture émise peut être marquée payée (statut actuel : %s)", facture.Statut)
	}
	if err := s.repo.UpdateStatut(ctx, id, "payee"); err != nil {
		return nil, err
	}
	facture.Statut = "payee"
	return factureToResponse(facture), nil
}

func (s *factureService) Annuler(ctx context.Context, id uuid.UUID) (*dto.FactureResponse, error) {
	facture, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("facture introuvable")
	}
	if facture.Statut == "payee" {
		return nil, errors.New("une facture payée ne peut pas être annulée")
	}
	if err := s.repo.UpdateStatut(ctx, id, "annulee"); err != nil {
		return nil, err
	}
	facture.Statut = "annulee"
	return factureToResponse(facture), nil
}

func factureToResponse(f *model.Facture) *dto.FactureResponse {
	resp := &dto.FactureResponse{
		ID:        f.ID.String(),
		Numero:    f.Numero,
		ClientID:  f.ClientID.String(),
		Statut:    f.Statut,
		DateEmise: f.DateEmise.Format("2006-01-02"),
		TotalHT:   f.TotalHT,
		TotalTTC:  f.TotalTTC,
	}
	if f.Client != nil {
		resp.Client = f.Client.NomAffichage()
	}
	if f.Echeance != nil {
		d := f.Echeance.Format("2006-01-02")
		resp.Echeance = &d
	}
	for _, l := range f.Lignes {
		resp.Lignes = append(resp.Lignes, dto.LigneFactureResponse{
			Libelle:    l.Libelle,
			Quantite:   l.Quantite,
			PrixUnitHT: l.PrixUnitHT,
			MontantHT:  l.MontantHT,
			MontantTTC: l.MontantTTC,
		})
	}
	return resp
}
