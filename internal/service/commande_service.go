package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stationops/internal/apierror"
	"stationops/internal/dto"
	"stationops/internal/model"
	"stationops/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CommandeService interface {
	Creer(ctx context.Context, userID uuid.UUID, req dto.CreerCommandeRequest) (*dto.CommandeResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CommandeResponse, error)
	List(ctx context.Context, statut string, page, limit int) (*dto.CommandeListResponse, error)
	// ChangerStatut handles the manual transitions: soumis, annule, litige.
	ChangerStatut(ctx context.Context, id, userID uuid.UUID, cible model.StatutCommande) (*dto.CommandeResponse, error)
}

type commandeService struct {
	repo            repository.CommandeRepository
	fournisseurRepo repository.FournisseurRepository
	produitRepo     repository.ProduitRepository
	activiteRepo    repository.ActiviteRepository
}

func NewCommandeService(
	repo repository.CommandeRepository,
	fournisseurRepo repository.FournisseurRepository,
	produitRepo repository.ProduitRepository,
	activiteRepo repository.ActiviteRepository,
) CommandeService {
	return &commandeService{
		repo:            repo,
		fournisseurRepo: fournisseurRepo,
		produitRepo:     produitRepo,
		activiteRepo:    activiteRepo,
	}
}

// ── Creer ─────────────────────────────────────────────────────────────────────
// TotalHT is always Σ MontantLigne, computed here — never taken from the client.

func (s *commandeService) Creer(ctx context.Context, userID uuid.UUID, req dto.CreerCommandeRequest) (*dto.CommandeResponse, error) {
	fields := map[string]string{}

	fournisseurID, err := uuid.Parse(req.FournisseurID)
	if err != nil {
		fields["fournisseur_id"] = "identifiant invalide"
	} else if _, err := s.fournisseurRepo.FindByID(ctx, fournisseurID); err != nil {
		fields["fournisseur_id"] = "fournisseur introuvable"
	}

	dateCommande, err := parseDate("date_commande", req.DateCommande)
	if err != nil {
		fields["date_commande"] = "date invalide, format attendu AAAA-MM-JJ"
	}

	commande := model.BonCommande{
		FournisseurID: fournisseurID,
		DateCommande:  dateCommande,
		Notes:         req.Notes,
		Statut:        model.StatutBrouillon,
	}
	if req.DateLivraison != nil {
		d, err := parseDate("date_livraison_souhaitee", *req.DateLivraison)
		if err != nil {
			fields["date_livraison_souhaitee"] = "date invalide, format attendu AAAA-MM-JJ"
		} else {
			commande.DateLivraison = &d
		}
	}

	total := decimal.Zero
	for i, lr := range req.Lignes {
		champ := fmt.Sprintf("lignes[%d]", i)
		pid, err := uuid.Parse(lr.ProduitID)
		if err != nil {
			fields[champ] = "produit_id invalide"
			continue
		}
		produit, err := s.produitRepo.FindByID(ctx, pid)
		if err != nil {
			fields[champ] = "produit introuvable"
			continue
		}
		if !lr.Quantite.IsPositive() {
			fields[champ] = "la quantité commandée doit être strictement positive"
			continue
		}
		if !lr.PrixUnitaire.IsPositive() {
			fields[champ] = "le prix unitaire doit être strictement positif"
			continue
		}

		montant := lr.Quantite.Mul(lr.PrixUnitaire)
		total = total.Add(montant)
		ligne := model.LigneCommande{
			ProduitID:    pid,
			NomProduit:   produit.Nom,
			Unite:        produit.Unite,
			QuantiteCmd:  lr.Quantite,
			PrixUnitaire: lr.PrixUnitaire,
			MontantLigne: montant,
			NumeroLot:    lr.NumeroLot,
		}
		if lr.DatePeremption != nil {
			d, err := parseDate("date_peremption", *lr.DatePeremption)
			if err != nil {
				fields[champ] = "date_peremption invalide, format attendu AAAA-MM-JJ"
				continue
			}
			ligne.DatePeremption = &d
		}
		commande.Lignes = append(commande.Lignes, ligne)
	}
	if len(fields) > 0 {
		return nil, apierror.NewValidation(fields)
	}
	commande.TotalHT = total

	numero, err := s.repo.NextNumero(ctx)
	if err != nil {
		return nil, err
	}
	commande.Numero = numero

	if err := s.repo.Create(ctx, &commande); err != nil {
		return nil, err
	}

	entiteID := commande.ID
	_ = s.activiteRepo.Create(ctx, &model.JournalActivite{
		UtilisateurID: &userID,
		Action:        "commande.creee",
		Entite:        "bon_commande",
		EntiteID:      &entiteID,
		Detail:        fmt.Sprintf("Commande %s, %d ligne(s), total %s", numero, len(commande.Lignes), total.StringFixed(2)),
	})

	created, err := s.repo.FindByID(ctx, commande.ID)
	if err != nil {
		return nil, err
	}
	return commandeToResponse(created), nil
}

func (s *commandeService) Get(ctx context.Context, id uuid.UUID) (*dto.CommandeResponse, error) {
	commande, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("bon de commande introuvable")
	}
	return commandeToResponse(commande), nil
}

func (s *commandeService) List(ctx context.Context, statut string, page, limit int) (*dto.CommandeListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	commandes, total, err := s.repo.List(ctx, statut, page, limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CommandeResponse, 0, len(commandes))
	for i := range commandes {
		data = append(data, *commandeToResponse(&commandes[i]))
	}
	return &dto.CommandeListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

func (s *commandeService) ChangerStatut(ctx context.Context, id, userID uuid.UUID, cible model.StatutCommande) (*dto.CommandeResponse, error) {
	commande, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("bon de commande introuvable")
	}
	if !commande.Statut.PeutPasserA(cible) {
		return nil, fmt.Errorf("transition de %q vers %q non autorisée", commande.Statut, cible)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateStatutTx(tx, id, commande.Version, cible); err != nil {
			return err
		}
		entiteID := commande.ID
		return s.activiteRepo.CreateTx(tx, &model.JournalActivite{
			UtilisateurID: &userID,
			Action:        "commande." + string(cible),
			Entite:        "bon_commande",
			EntiteID:      &entiteID,
			Detail:        fmt.Sprintf("Commande %s : %s → %s", commande.Numero, commande.Statut, cible),
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return commandeToResponse(updated), nil
}

func commandeToResponse(c *model.BonCommande) *dto.CommandeResponse {
	resp := &dto.CommandeResponse{
		ID:            c.ID.String(),
		Numero:        c.Numero,
		FournisseurID: c.FournisseurID.String(),
		DateCommande:  c.DateCommande.Format("2006-01-02"),
		Notes:         c.Notes,
		Statut:        string(c.Statut),
		TotalHT:       c.TotalHT,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
	if c.Fournisseur != nil {
		resp.Fournisseur = c.Fournisseur.RaisonSociale
	}
	if c.DateLivraison != nil {
		d := c.DateLivraison.Format("2006-01-02")
		resp.DateLivraison = &d
	}
	for i := range c.Lignes {
		l := &c.Lignes[i]
		lr := dto.LigneCommandeResponse{
			ID:               l.ID.String(),
			ProduitID:        l.ProduitID.String(),
			NomProduit:       l.NomProduit,
			Unite:            l.Unite,
			Quantite:         l.QuantiteCmd,
			QuantiteRecue:    l.QuantiteRecue,
			QuantiteRestante: l.QuantiteRestante(),
			PrixUnitaire:     l.PrixUnitaire,
			MontantLigne:     l.MontantLigne,
			NumeroLot:        l.NumeroLot,
		}
		if l.DatePeremption != nil {
			d := l.DatePeremption.Format("2006-01-02")
			lr.DatePeremption = &d
		}
		resp.Lignes = append(resp.Lignes, lr)
	}
	return resp
}
