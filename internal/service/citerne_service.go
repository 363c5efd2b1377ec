package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stationops/internal/dto"
	"stationops/internal/ecart"
	"stationops/internal/model"
	"stationops/internal/repository"
	"stationops/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CiterneService interface {
	Creer(ctx context.Context, req dto.CreerCiterneRequest) (*dto.CiterneResponse, error)
	List(ctx context.Context) ([]dto.CiterneResponse, error)
	// OuvrirReleve starts a reading for one tank over a quart. IndexDebut is
	// pre-filled from the tank's last frozen index; the theoretical ending
	// index comes from the forecourt controller.
	OuvrirReleve(ctx context.Context, citerneID uuid.UUID, quartID *uuid.UUID, indexFinTheorique decimal.Decimal) (*model.ReleveCiterne, error)
	GetReleve(ctx context.Context, releveID uuid.UUID) (*dto.ReleveResponse, error)
	Cloturer(ctx context.Context, releveID, userID uuid.UUID, req dto.CloturerReleveRequest) (*dto.CloturerReleveResponse, error)
}

type citerneService struct {
	repo         repository.CiterneRepository
	activiteRepo repository.ActiviteRepository
	dispatcher   *worker.Dispatcher
}

func NewCiterneService(
	repo repository.CiterneRepository,
	activiteRepo repository.ActiviteRepository,
	dispatcher *worker.Dispatcher,
) CiterneService {
	return &citerneService{repo: repo, activiteRepo: activiteRepo, dispatcher: dispatcher}
}

func (s *citerneService) Creer(ctx context.Context, req dto.CreerCiterneRequest) (*dto.CiterneResponse, error) {
	citerne := model.Citerne{
		Nom:          req.Nom,
		Carburant:    req.Carburant,
		Unite:        "litre",
		Capacite:     req.Capacite,
		DernierIndex: req.IndexInitial,
		Actif:        true,
	}
	if err := s.repo.Create(ctx, &citerne); err != nil {
		return nil, err
	}
	return citerneToResponse(&citerne), nil
}

func (s *citerneService) List(ctx context.Context) ([]dto.CiterneResponse, error) {
	citernes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CiterneResponse, 0, len(citernes))
	for i := range citernes {
		resp = append(resp, *citerneToResponse(&citernes[i]))
	}
	return resp, nil
}

func (s *citerneService) OuvrirReleve(ctx context.Context, citerneID uuid.UUID, quartID *uuid.UUID, indexFinTheorique decimal.Decimal) (*model.ReleveCiterne, error) {
	citerne, err := s.repo.FindByID(ctx, citerneID)
	if err != nil {
		return nil, errors.New("citerne introuvable")
	}
	releve := model.ReleveCiterne{
		CiterneID:         citerneID,
		QuartID:           quartID,
		IndexDebut:        citerne.DernierIndex,
		IndexFinTheorique: indexFinTheorique,
		Statut:            "en_cours",
		Version:           1,
	}
	if err := s.repo.CreateReleve(ctx, &releve); err != nil {
		return nil, err
	}
	releve.Citerne = citerne
	return &releve, nil
}

func (s *citerneService) GetReleve(ctx context.Context, releveID uuid.UUID) (*dto.ReleveResponse, error) {
	releve, err := s.repo.FindReleveByID(ctx, releveID)
	if err != nil {
		return nil, errors.New("relevé introuvable")
	}
	return releveToResponse(releve), nil
}

// ── Cloturer ──────────────────────────────────────────────────────────────────
// Reconciles one tank reading. Validation failures come back as a result with
// Valide=false and field-attributable messages — nothing is persisted and no
// error is raised, so the UI can re-prompt in place.

func (s *citerneService) Cloturer(ctx context.Context, releveID, userID uuid.UUID, req dto.CloturerReleveRequest) (*dto.CloturerReleveResponse, error) {
	releve, err := s.repo.FindReleveByID(ctx, releveID)
	if err != nil {
		return nil, errors.New("relevé introuvable")
	}
	if releve.Statut != "en_cours" {
		return nil, errors.New("le relevé est déjà clôturé")
	}

	indexDebut := releve.IndexDebut
	if req.IndexDebut != nil {
		indexDebut = *req.IndexDebut
	}

	var erreurs []string
	if req.IndexFin == nil {
		erreurs = append(erreurs, "index_fin : l'index de fin est requis")
	}
	if indexDebut.IsNegative() {
		erreurs = append(erreurs, "index_debut : l'index doit être positif ou nul")
	}
	if req.IndexFin != nil {
		if req.IndexFin.IsNegative() {
			erreurs = append(erreurs, "index_fin : l'index doit être positif ou nul")
		} else if req.IndexFin.LessThanOrEqual(indexDebut) {
			erreurs = append(erreurs, "index_fin : l'index de fin doit être supérieur à l'index de début")
		}
	}
	if len(erreurs) > 0 {
		return &dto.CloturerReleveResponse{
			ReleveID: releveID.String(),
			Valide:   false,
			Erreurs:  erreurs,
		}, nil
	}

	volume := req.IndexFin.Sub(indexDebut)
	resultat := ecart.Classer(releve.IndexFinTheorique, req.IndexFin, ecart.PolitiqueCiterne)

	now := time.Now()
	niveau := string(resultat.Niveau)
	releve.IndexDebut = indexDebut
	releve.IndexFin = req.IndexFin
	releve.VolumeDistribue = &volume
	releve.EcartMontant = &resultat.Montant
	releve.EcartNiveau = &niveau
	releve.ClosedAt = &now

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CloturerReleveTx(tx, releve); err != nil {
			return err
		}
		entiteID := releve.ID
		return s.activiteRepo.CreateTx(tx, &model.JournalActivite{
			UtilisateurID: &userID,
			Action:        "releve.clos",
			Entite:        "releve_citerne",
			EntiteID:      &entiteID,
			Detail: fmt.Sprintf("Volume %s L, écart %s (%s)",
				volume.StringFixed(2), resultat.Montant.StringFixed(2), niveau),
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	if resultat.Niveau == ecart.NiveauCritical && s.dispatcher != nil {
		libelle := ""
		if releve.Citerne != nil {
			libelle = releve.Citerne.Nom
		}
		_ = s.dispatcher.EnqueueAlerte(ctx, worker.AlertePayload{
			Entite:  "releve_citerne",
			Libelle: libelle,
			Montant: resultat.Montant.StringFixed(2),
			Niveau:  niveau,
		})
	}

	return &dto.CloturerReleveResponse{
		ReleveID:        releveID.String(),
		Valide:          true,
		VolumeDistribue: volume,
		Ecart:           dto.EcartResponse{Montant: resultat.Montant, Niveau: niveau},
	}, nil
}

func citerneToResponse(c *model.Citerne) *dto.CiterneResponse {
	return &dto.CiterneResponse{
		ID:           c.ID.String(),
		Nom:          c.Nom,
		Carburant:    c.Carburant,
		Unite:        c.Unite,
		Capacite:     c.Capacite,
		DernierIndex: c.DernierIndex,
		Actif:        c.Actif,
	}
}

func releveToResponse(r *model.ReleveCiterne) *dto.ReleveResponse {
	resp := &dto.ReleveResponse{
		ReleveID:          r.ID.String(),
		CiterneID:         r.CiterneID.String(),
		IndexDebut:        r.IndexDebut,
		IndexFin:          r.IndexFin,
		IndexFinTheorique: r.IndexFinTheorique,
		VolumeDistribue:   r.VolumeDistribue,
		Statut:            r.Statut,
	}
	if r.Citerne != nil {
		resp.Citerne = r.Citerne.Nom
		resp.Carburant = r.Citerne.Carburant
		resp.Unite = r.Citerne.Unite
	}
	if r.EcartMontant != nil && r.EcartNiveau != nil {
		resp.Ecart = &dto.EcartResponse{Montant: *r.EcartMontant, Niveau: *r.EcartNiveau}
	}
	return resp
}
