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
	"stationops/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReceptionService interface {
	Recevoir(ctx context.Context, commandeID, userID uuid.UUID, req dto.RecevoirLivraisonRequest) (*dto.RecevoirLivraisonResponse, error)
	ListByCommande(ctx context.Context, commandeID uuid.UUID) ([]dto.RecevoirLivraisonResponse, error)
}

type receptionService struct {
	commandeRepo  repository.CommandeRepository
	receptionRepo repository.ReceptionRepository
	produitRepo   repository.ProduitRepository
	activiteRepo  repository.ActiviteRepository
	dispatcher    *worker.Dispatcher
}

func NewReceptionService(
	commandeRepo repository.CommandeRepository,
	receptionRepo repository.ReceptionRepository,
	produitRepo repository.ProduitRepository,
	activiteRepo repository.ActiviteRepository,
	dispatcher *worker.Dispatcher,
) ReceptionService {
	return &receptionService{
		commandeRepo:  commandeRepo,
		receptionRepo: receptionRepo,
		produitRepo:   produitRepo,
		activiteRepo:  activiteRepo,
		dispatcher:    dispatcher,
	}
}

// DeciderStatut derives the order status from its lines after a receiving
// event. A line counts as served once its cumulative received quantity reaches
// the ordered quantity — an accepted over-receipt also closes the line.
func DeciderStatut(lignes []model.LigneCommande) model.StatutCommande {
	toutServi := true
	rienRecu := true
	for _, l := range lignes {
		if l.QuantiteRecue.IsPositive() {
			rienRecu = false
		}
		if l.QuantiteRecue.LessThan(l.QuantiteCmd) {
			toutServi = false
		}
	}
	switch {
	case toutServi:
		return model.StatutRecu
	case rienRecu:
		return model.StatutSoumis
	default:
		return model.StatutPartiellementRecu
	}
}

// ── Recevoir ──────────────────────────────────────────────────────────────────
// One receiving event against an order:
//   1. Order must be in a receivable status
//   2. Validate every line (known line, strictly positive quantity)
//   3. BEGIN TX: create reception + lines, accumulate received quantities,
//      add stock with movement records, transition order status (version check)
//   4. COMMIT, then enqueue async PDF generation
//
// Over-receipts are soft: they pass with a warning and a flag on the line.

func (s *receptionService) Recevoir(ctx context.Context, commandeID, userID uuid.UUID, req dto.RecevoirLivraisonRequest) (*dto.RecevoirLivraisonResponse, error) {
	commande, err := s.commandeRepo.FindByID(ctx, commandeID)
	if err != nil {
		return nil, errors.New("bon de commande introuvable")
	}
	if !commande.Statut.PeutRecevoir() {
		return nil, fmt.Errorf("impossible de recevoir sur une commande au statut %q", commande.Statut)
	}

	fields := map[string]string{}
	if req.NumeroBL == "" {
		fields["numero_bl"] = "le numéro de bordereau de livraison est requis"
	}
	var dateReception time.Time
	if req.DateReception == "" {
		fields["date_reception"] = "la date de réception est requise"
	} else if d, err := parseDate("date_reception", req.DateReception); err != nil {
		fields["date_reception"] = "date invalide, format attendu AAAA-MM-JJ"
	} else {
		dateReception = d
	}
	if len(req.Lignes) == 0 {
		fields["lignes"] = "Veuillez saisir au moins une ligne de réception"
	}

	// Resolve request lines against order lines before touching anything.
	lignesParID := make(map[uuid.UUID]*model.LigneCommande, len(commande.Lignes))
	for i := range commande.Lignes {
		lignesParID[commande.Lignes[i].ID] = &commande.Lignes[i]
	}

	type ligneResolue struct {
		ligne    *model.LigneCommande
		quantite decimal.Decimal
		surRecep bool
	}
	var resolues []ligneResolue
	var avertissements []string

	for i, lr := range req.Lignes {
		champ := fmt.Sprintf("lignes[%d]", i)
		id, err := uuid.Parse(lr.LigneCmdID)
		if err != nil {
			fields[champ] = "ligne_commande_id invalide"
			continue
		}
		ligne, ok := lignesParID[id]
		if !ok {
			fields[champ] = "la ligne n'appartient pas à cette commande"
			continue
		}
		if !lr.Quantite.IsPositive() {
			fields[champ] = "la quantité reçue doit être strictement positive"
			continue
		}
		reste := ligne.QuantiteRestante()
		surRecep := lr.Quantite.GreaterThan(reste)
		if surRecep {
			avertissements = append(avertissements,
				fmt.Sprintf("Sur-réception sur %s : %s reçu pour un restant de %s",
					ligne.NomProduit, lr.Quantite.String(), reste.String()))
		}
		resolues = append(resolues, ligneResolue{ligne: ligne, quantite: lr.Quantite, surRecep: surRecep})
	}

	if len(fields) > 0 {
		return nil, apierror.NewValidation(fields)
	}

	reception := model.BonReception{
		CommandeID:    commandeID,
		NumeroBL:      req.NumeroBL,
		DateReception: dateReception,
		RecuPar:       userID,
	}
	for _, r := range resolues {
		reception.Lignes = append(reception.Lignes, model.LigneReception{
			LigneCmdID:   r.ligne.ID,
			NomProduit:   r.ligne.NomProduit,
			Quantite:     r.quantite,
			SurReception: r.surRecep,
		})
	}

	txErr := runTx(ctx, s.commandeRepo.DB(), func(tx *gorm.DB) error {
		if err := s.receptionRepo.CreateTx(tx, &reception); err != nil {
			return err
		}

		for _, r := range resolues {
			r.ligne.QuantiteRecue = r.ligne.QuantiteRecue.Add(r.quantite)
			if err := s.commandeRepo.UpdateLigneRecueTx(tx, r.ligne.ID, r.ligne); err != nil {
				return err
			}

			if err := s.produitRepo.AjouterStockTx(tx, r.ligne.ProduitID, r.quantite); err != nil {
				return err
			}
			ref := reception.ID
			mov := model.MouvementStock{
				ProduitID:   r.ligne.ProduitID,
				Type:        "reception",
				Quantite:    r.quantite,
				Motif:       fmt.Sprintf("Réception %s — commande %s", req.NumeroBL, commande.Numero),
				ReferenceID: &ref,
			}
			if err := s.receptionRepo.CreateMouvementTx(tx, &mov); err != nil {
				return err
			}
		}

		nouveau := DeciderStatut(commande.Lignes)
		if nouveau != commande.Statut {
			if err := s.commandeRepo.UpdateStatutTx(tx, commande.ID, commande.Version, nouveau); err != nil {
				return err
			}
		}
		commande.Statut = nouveau

		entiteID := reception.ID
		journal := model.JournalActivite{
			UtilisateurID: &userID,
			Action:        "reception.confirmee",
			Entite:        "bon_reception",
			EntiteID:      &entiteID,
			Detail:        fmt.Sprintf("Commande %s, BL %s, %d ligne(s)", commande.Numero, req.NumeroBL, len(resolues)),
		}
		return s.activiteRepo.CreateTx(tx, &journal)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async receiving record — best effort, fire & forget.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueDocument(ctx, "reception_pdf",
			worker.ReceptionPDFPayload{ReceptionID: reception.ID.String()})
	}

	resp := &dto.RecevoirLivraisonResponse{
		ReceptionID:    reception.ID.String(),
		CommandeID:     commandeID.String(),
		NumeroBL:       req.NumeroBL,
		NouveauStatut:  string(commande.Statut),
		Avertissements: avertissements,
	}
	for _, r := range resolues {
		resp.Lignes = append(resp.Lignes, dto.LigneReceptionResponse{
			LigneCmdID:       r.ligne.ID.String(),
			NomProduit:       r.ligne.NomProduit,
			QuantiteCmd:      r.ligne.QuantiteCmd,
			QuantiteRecue:    r.quantite,
			QuantiteCumulee:  r.ligne.QuantiteRecue,
			QuantiteRestante: r.ligne.QuantiteRestante(),
			SurReception:     r.surRecep,
		})
	}
	return resp, nil
}

// ListByCommande returns the receiving history of one order, oldest first.
func (s *receptionService) ListByCommande(ctx context.Context, commandeID uuid.UUID) ([]dto.RecevoirLivraisonResponse, error) {
	receptions, err := s.receptionRepo.ListByCommande(ctx, commandeID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RecevoirLivraisonResponse, 0, len(receptions))
	for _, r := range receptions {
		item := dto.RecevoirLivraisonResponse{
			ReceptionID: r.ID.String(),
			CommandeID:  r.CommandeID.String(),
			NumeroBL:    r.NumeroBL,
		}
		for _, l := range r.Lignes {
			item.Lignes = append(item.Lignes, dto.LigneReceptionResponse{
				LigneCmdID:    l.LigneCmdID.String(),
				NomProduit:    l.NomProduit,
				QuantiteRecue: l.Quantite,
				SurReception:  l.SurReception,
			})
		}
		resp = append(resp, item)
	}
	return resp, nil
}
