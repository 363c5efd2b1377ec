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
)

type CaisseService interface {
	Creer(ctx context.Context, req dto.CreerCaisseRequest) (*dto.CaisseResponse, error)
	List(ctx context.Context) ([]dto.CaisseResponse, error)
	// OuvrirSession starts a drawer session; the theoretical amount is snapshot
	// from the forecourt sales system by the caller.
	OuvrirSession(ctx context.Context, caisseID uuid.UUID, quartID *uuid.UUID, operateur string, montantTheorique decimal.Decimal) (*model.SessionCaisse, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*dto.SessionCaisseResponse, error)
	Cloturer(ctx context.Context, sessionID, userID uuid.UUID, req dto.CloturerSessionRequest) (*dto.CloturerSessionResponse, error)
}

type caisseService struct {
	repo         repository.CaisseRepository
	activiteRepo repository.ActiviteRepository
	dispatcher   *worker.Dispatcher
}

func NewCaisseService(
	repo repository.CaisseRepository,
	activiteRepo repository.ActiviteRepository,
	dispatcher *worker.Dispatcher,
) CaisseService {
	return &caisseService{repo: repo, activiteRepo: activiteRepo, dispatcher: dispatcher}
}

func (s *caisseService) Creer(ctx context.Context, req dto.CreerCaisseRequest) (*dto.CaisseResponse, error) {
	caisse := model.Caisse{Libelle: req.Libelle, Actif: true}
	if err := s.repo.Create(ctx, &caisse); err != nil {
		return nil, err
	}
	return &dto.CaisseResponse{ID: caisse.ID.String(), Libelle: caisse.Libelle, Actif: caisse.Actif}, nil
}

func (s *caisseService) List(ctx context.Context) ([]dto.CaisseResponse, error) {
	caisses, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CaisseResponse, 0, len(caisses))
	for _, c := range caisses {
		resp = append(resp, dto.CaisseResponse{ID: c.ID.String(), Libelle: c.Libelle, Actif: c.Actif})
	}
	return resp, nil
}

func (s *caisseService) OuvrirSession(ctx context.Context, caisseID uuid.UUID, quartID *uuid.UUID, operateur string, montantTheorique decimal.Decimal) (*model.SessionCaisse, error) {
	caisse, err := s.repo.FindByID(ctx, caisseID)
	if err != nil {
		return nil, errors.New("caisse introuvable")
	}

	// Guard: one open session per drawer (also enforced by a partial index).
	if existing, err := s.repo.FindSessionOuvertePourCaisse(ctx, caisseID); err == nil && existing != nil {
		return nil, errors.New("Une session est déjà ouverte pour cette caisse")
	}

	session := model.SessionCaisse{
		CaisseID:         caisseID,
		QuartID:          quartID,
		Operateur:        operateur,
		MontantTheorique: montantTheorique,
		Statut:           "ouverte",
		OpenedAt:         time.Now(),
	}
	if err := s.repo.CreateSession(ctx, &session); err != nil {
		return nil, err
	}
	session.Caisse = caisse
	return &session, nil
}

func (s *caisseService) GetSession(ctx context.Context, sessionID uuid.UUID) (*dto.SessionCaisseResponse, error) {
	session, err := s.repo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, errors.New("session de caisse introuvable")
	}
	return sessionToResponse(session), nil
}

// ── Cloturer ──────────────────────────────────────────────────────────────────
// The counted amount is entered once, blind — the theoretical never shows
// before the count is committed. A non-ok écart never blocks the close; it
// only prompts for a note and, when critical, alerts the manager.

func (s *caisseService) Cloturer(ctx context.Context, sessionID, userID uuid.UUID, req dto.CloturerSessionRequest) (*dto.CloturerSessionResponse, error) {
	session, err := s.repo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, errors.New("session de caisse introuvable")
	}
	if session.Statut != "ouverte" {
		return nil, errors.New("la session est déjà clôturée")
	}
	if req.MontantCompte == nil {
		return nil, errors.New("montant_compte : le montant compté est requis")
	}
	if req.MontantCompte.IsNegative() {
		return nil, errors.New("montant_compte : le montant compté doit être positif ou nul")
	}

	resultat := ecart.Classer(session.MontantTheorique, req.MontantCompte, ecart.PolitiqueCaisse)
	niveau := string(resultat.Niveau)
	now := time.Now()

	session.MontantCompte = req.MontantCompte
	session.EcartMontant = &resultat.Montant
	session.EcartNiveau = &niveau
	session.Notes = req.Notes
	session.Statut = "cloturee"
	session.ClosedAt = &now

	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, err
	}

	entiteID := session.ID
	_ = s.activiteRepo.Create(ctx, &model.JournalActivite{
		UtilisateurID: &userID,
		Action:        "session_caisse.cloturee",
		Entite:        "session_caisse",
		EntiteID:      &entiteID,
		Detail: fmt.Sprintf("Théorique %s, compté %s, écart %s (%s)",
			session.MontantTheorique.StringFixed(0), req.MontantCompte.StringFixed(0),
			resultat.Montant.StringFixed(0), niveau),
	})

	if resultat.Niveau == ecart.NiveauCritical && s.dispatcher != nil {
		libelle := session.Operateur
		if session.Caisse != nil {
			libelle = session.Caisse.Libelle
		}
		_ = s.dispatcher.EnqueueAlerte(ctx, worker.AlertePayload{
			Entite:  "session_caisse",
			Libelle: libelle,
			Montant: resultat.Montant.StringFixed(0),
			Niveau:  niveau,
		})
	}

	return &dto.CloturerSessionResponse{
		SessionID:   sessionID.String(),
		Ecart:       dto.EcartResponse{Montant: resultat.Montant, Niveau: niveau},
		NoteRequise: ecart.NoteRequise(resultat.Niveau),
		Statut:      "cloturee",
	}, nil
}

func sessionToResponse(s *model.SessionCaisse) *dto.SessionCaisseResponse {
	resp := &dto.SessionCaisseResponse{
		SessionID:        s.ID.String(),
		CaisseID:         s.CaisseID.String(),
		Operateur:        s.Operateur,
		MontantTheorique: s.MontantTheorique,
		MontantCompte:    s.MontantCompte,
		Notes:            s.Notes,
		Statut:           s.Statut,
		OpenedAt:         s.OpenedAt.Format(time.RFC3339),
	}
	if s.Caisse != nil {
		resp.Caisse = s.Caisse.Libelle
	}
	if s.EcartMontant != nil && s.EcartNiveau != nil {
		resp.Ecart = &dto.EcartResponse{Montant: *s.EcartMontant, Niveau: *s.EcartNiveau}
	}
	if s.ClosedAt != nil {
		t := s.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &t
	}
	return resp
}
