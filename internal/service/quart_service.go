package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stationops/internal/dto"
	"stationops/internal/ecart"
	"stationops/internal/infra"
	"stationops/internal/model"
	"stationops/internal/repository"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

type QuartService interface {
	Ouvrir(ctx context.Context, userID uuid.UUID, req dto.OuvrirQuartRequest) (*dto.QuartResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.QuartResponse, error)
	List(ctx context.Context, page, limit int) ([]dto.QuartResponse, int64, error)
	Summary(ctx context.Context, id uuid.UUID) (*dto.QuartSummaryResponse, error)
	Cloturer(ctx context.Context, id, userID uuid.UUID) (*dto.QuartResponse, error)
	// ExportXLSX renders the quart reconciliation report as a spreadsheet.
	ExportXLSX(ctx context.Context, id uuid.UUID) ([]byte, string, error)
}

type quartService struct {
	repo         repository.QuartRepository
	citerneRepo  repository.CiterneRepository
	caisseRepo   repository.CaisseRepository
	citernes     CiterneService
	caisses      CaisseService
	forecourt    *infra.ForecourtClient
	activiteRepo repository.ActiviteRepository
}

func NewQuartService(
	repo repository.QuartRepository,
	citerneRepo repository.CiterneRepository,
	caisseRepo repository.CaisseRepository,
	citernes CiterneService,
	caisses CaisseService,
	forecourt *infra.ForecourtClient,
	activiteRepo repository.ActiviteRepository,
) QuartService {
	return &quartService{
		repo:         repo,
		citerneRepo:  citerneRepo,
		caisseRepo:   caisseRepo,
		citernes:     citernes,
		caisses:      caisses,
		forecourt:    forecourt,
		activiteRepo: activiteRepo,
	}
}

// ── Ouvrir ────────────────────────────────────────────────────────────────────
// Opens the quart and one reading/session per selected tank/drawer, seeding
// each with the theoretical values snapshot from the forecourt controller.

func (s *quartService) Ouvrir(ctx context.Context, userID uuid.UUID, req dto.OuvrirQuartRequest) (*dto.QuartResponse, error) {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindOuvert(ctx, date, req.Libelle); err == nil && existing != nil {
		return nil, errors.New("Un quart est déjà ouvert pour cette date et ce libellé")
	}

	snapshot, err := s.forecourt.Snapshot(ctx, req.Date, req.Libelle)
	if err != nil {
		return nil, fmt.Errorf("le contrôleur de piste est injoignable : %w", err)
	}

	quart := model.Quart{Date: date, Libelle: req.Libelle, Statut: "ouvert"}
	if err := s.repo.Create(ctx, &quart); err != nil {
		return nil, err
	}

	resp := &dto.QuartResponse{
		QuartID: quart.ID.String(),
		Date:    req.Date,
		Libelle: req.Libelle,
		Statut:  "ouvert",
	}

	for _, cid := range req.CiterneIDs {
		citerneID, err := uuid.Parse(cid)
		if err != nil {
			return nil, fmt.Errorf("citerne_ids : identifiant %q invalide", cid)
		}
		theorique := snapshot.IndexesTheoriques[cid]
		releve, err := s.citernes.OuvrirReleve(ctx, citerneID, &quart.ID, theorique)
		if err != nil {
			return nil, err
		}
		resp.Releves = append(resp.Releves, *releveToResponse(releve))
	}

	for _, cid := range req.CaisseIDs {
		caisseID, err := uuid.Parse(cid)
		if err != nil {
			return nil, fmt.Errorf("caisse_ids : identifiant %q invalide", cid)
		}
		theorique := snapshot.VentesTheoriques[cid]
		session, err := s.caisses.OuvrirSession(ctx, caisseID, &quart.ID, req.Operateur, theorique)
		if err != nil {
			return nil, err
		}
		resp.Sessions = append(resp.Sessions, *sessionToResponse(session))
	}

	entiteID := quart.ID
	_ = s.activiteRepo.Create(ctx, &model.JournalActivite{
		UtilisateurID: &userID,
		Action:        "quart.ouvert",
		Entite:        "quart",
		EntiteID:      &entiteID,
		Detail: fmt.Sprintf("Quart %s du %s : %d citerne(s), %d caisse(s)",
			req.Libelle, req.Date, len(req.CiterneIDs), len(req.CaisseIDs)),
	})

	return resp, nil
}

func (s *quartService) Get(ctx context.Context, id uuid.UUID) (*dto.QuartResponse, error) {
	quart, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("quart introuvable")
	}
	return s.buildResponse(ctx, quart)
}

func (s *quartService) List(ctx context.Context, page, limit int) ([]dto.QuartResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	quarts, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.QuartResponse, 0, len(quarts))
	for i := range quarts {
		q := &quarts[i]
		resp = append(resp, dto.QuartResponse{
			QuartID: q.ID.String(),
			Date:    q.Date.Format("2006-01-02"),
			Libelle: q.Libelle,
			Statut:  q.Statut,
		})
	}
	return resp, total, nil
}

func (s *quartService) Summary(ctx context.Context, id uuid.UUID) (*dto.QuartSummaryResponse, error) {
	base, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := &dto.QuartSummaryResponse{
		QuartID:  base.QuartID,
		Date:     base.Date,
		Libelle:  base.Libelle,
		Statut:   base.Statut,
		Releves:  base.Releves,
		Sessions: base.Sessions,
	}
	for _, r := range base.Releves {
		if r.Ecart != nil {
			compterEcart(r.Ecart.Niveau, summary)
		}
	}
	for _, sess := range base.Sessions {
		if sess.Ecart != nil {
			compterEcart(sess.Ecart.Niveau, summary)
		}
	}
	return summary, nil
}

func compterEcart(niveau string, s *dto.QuartSummaryResponse) {
	switch ecart.Niveau(niveau) {
	case ecart.NiveauCritical:
		s.NbEcartsCritique++
	case ecart.NiveauWarning:
		s.NbEcartsWarning++
	}
}

// Cloturer closes the quart. Every reading and session must already be
// reconciled — a quart never closes with work in progress underneath it.
func (s *quartService) Cloturer(ctx context.Context, id, userID uuid.UUID) (*dto.QuartResponse, error) {
	quart, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("quart introuvable")
	}
	if quart.Statut != "ouvert" {
		return nil, errors.New("le quart est déjà clos")
	}

	releves, err := s.citerneRepo.ListRelevesByQuart(ctx, id)
	if err != nil {
		return nil, err
	}
	sessions, err := s.caisseRepo.ListSessionsByQuart(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, r := range releves {
		if r.Statut != "clos" {
			return nil, errors.New("Toutes les citernes doivent être clôturées avant de clore le quart")
		}
	}
	for _, sess := range sessions {
		if sess.Statut != "cloturee" {
			return nil, errors.New("Toutes les caisses doivent être clôturées avant de clore le quart")
		}
	}

	closed := time.Now()
	quart.Statut = "clos"
	quart.ClosedAt = &closed
	if err := s.repo.Update(ctx, quart); err != nil {
		return nil, err
	}

	entiteID := quart.ID
	_ = s.activiteRepo.Create(ctx, &model.JournalActivite{
		UtilisateurID: &userID,
		Action:        "quart.clos",
		Entite:        "quart",
		EntiteID:      &entiteID,
		Detail:        fmt.Sprintf("Quart %s du %s clos", quart.Libelle, quart.Date.Format("2006-01-02")),
	})

	return s.buildResponse(ctx, quart)
}

// ── ExportXLSX ────────────────────────────────────────────────────────────────
// One sheet per reconciliation set, écarts highlighted by tier.

func (s *quartService) ExportXLSX(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	summary, err := s.Summary(ctx, id)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Citernes"
	f.SetSheetName("Sheet1", sheet)
	headers := []string{"Citerne", "Carburant", "Index début", "Index fin", "Index théorique", "Volume distribué", "Écart", "Niveau"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for row, r := range summary.Releves {
		values := []interface{}{r.Citerne, r.Carburant, r.IndexDebut.String(), "", r.IndexFinTheorique.String(), "", "", ""}
		if r.IndexFin != nil {
			values[3] = r.IndexFin.String()
		}
		if r.VolumeDistribue != nil {
			values[5] = r.VolumeDistribue.String()
		}
		if r.Ecart != nil {
			values[6] = r.Ecart.Montant.String()
			values[7] = r.Ecart.Niveau
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	caisseSheet := "Caisses"
	f.NewSheet(caisseSheet)
	caisseHeaders := []string{"Caisse", "Opérateur", "Théorique", "Compté", "Écart", "Niveau", "Notes"}
	for i, h := range caisseHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(caisseSheet, cell, h)
	}
	for row, sess := range summary.Sessions {
		values := []interface{}{sess.Caisse, sess.Operateur, sess.MontantTheorique.String(), "", "", "", ""}
		if sess.MontantCompte != nil {
			values[3] = sess.MontantCompte.String()
		}
		if sess.Ecart != nil {
			values[4] = sess.Ecart.Montant.String()
			values[5] = sess.Ecart.Niveau
		}
		if sess.Notes != nil {
			values[6] = *sess.Notes
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(caisseSheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("export xlsx: %w", err)
	}
	fileName := fmt.Sprintf("quart_%s_%s.xlsx", summary.Date, summary.Libelle)
	return buf.Bytes(), fileName, nil
}

func (s *quartService) buildResponse(ctx context.Context, quart *model.Quart) (*dto.QuartResponse, error) {
	releves, err := s.citerneRepo.ListRelevesByQuart(ctx, quart.ID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.caisseRepo.ListSessionsByQuart(ctx, quart.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.QuartResponse{
		QuartID: quart.ID.String(),
		Date:    quart.Date.Format("2006-01-02"),
		Libelle: quart.Libelle,
		Statut:  quart.Statut,
	}
	for i := range releves {
		resp.Releves = append(resp.Releves, *releveToResponse(&releves[i]))
	}
	for i := range sessions {
		resp.Sessions = append(resp.Sessions, *sessionToResponse(&sessions[i]))
	}
	return resp, nil
}
