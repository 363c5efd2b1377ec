package tests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stationops/internal/dto"
	"stationops/internal/infra"
	"stationops/internal/model"
	"stationops/internal/repository"
	"stationops/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubQuartRepo is an in-memory QuartRepository.
type stubQuartRepo struct {
	quarts map[uuid.UUID]*model.Quart
}

func newStubQuartRepo() *stubQuartRepo {
	return &stubQuartRepo{quarts: make(map[uuid.UUID]*model.Quart)}
}

func (r *stubQuartRepo) Create(_ context.Context, q *model.Quart) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	r.quarts[q.ID] = q
	return nil
}

func (r *stubQuartRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Quart, error) {
	q, ok := r.quarts[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return q, nil
}

func (r *stubQuartRepo) FindOuvert(_ context.Context, date time.Time, libelle string) (*model.Quart, error) {
	for _, q := range r.quarts {
		if q.Statut == "ouvert" && q.Libelle == libelle && q.Date.Equal(date) {
			return q, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubQuartRepo) Update(_ context.Context, q *model.Quart) error {
	if _, ok := r.quarts[q.ID]; !ok {
		return errors.New("not found")
	}
	r.quarts[q.ID] = q
	return nil
}

func (r *stubQuartRepo) List(_ context.Context, _, _ int) ([]model.Quart, int64, error) {
	var out []model.Quart
	for _, q := range r.quarts {
		out = append(out, *q)
	}
	return out, int64(len(out)), nil
}

var _ repository.QuartRepository = (*stubQuartRepo)(nil)

// quartFixture wires the quart service on in-memory repos with a fake
// forecourt controller behind httptest.
type quartFixture struct {
	svc         service.QuartService
	citernes    service.CiterneService
	caisses     service.CaisseService
	quartRepo   *stubQuartRepo
	citerneRepo *stubCiterneRepo
	caisseRepo  *stubCaisseRepo
	citerneID   uuid.UUID
	caisseID    uuid.UUID
}

func newQuartFixture(t *testing.T, indexTheorique, venteTheorique string) *quartFixture {
	t.Helper()
	ctx := context.Background()

	citerneRepo := newStubCiterneRepo()
	caisseRepo := newStubCaisseRepo()
	quartRepo := newStubQuartRepo()
	activiteRepo := &stubActiviteRepo{}

	citerne := &model.Citerne{Nom: "Citerne Super", Carburant: "super", Unite: "litre",
		Capacite: qty("15000"), DernierIndex: qty("80000"), Actif: true}
	require.NoError(t, citerneRepo.Create(ctx, citerne))
	caisse := &model.Caisse{Libelle: "Caisse piste", Actif: true}
	require.NoError(t, caisseRepo.Create(ctx, caisse))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/snapshot", req.URL.Path)
		snap := infra.ForecourtSnapshot{
			IndexesTheoriques: map[string]decimal.Decimal{citerne.ID.String(): qty(indexTheorique)},
			VentesTheoriques:  map[string]decimal.Decimal{caisse.ID.String(): qty(venteTheorique)},
		}
		_ = json.NewEncoder(w).Encode(snap)
	}))
	t.Cleanup(srv.Close)

	citerneSvc := service.NewCiterneService(citerneRepo, activiteRepo, nil)
	caisseSvc := service.NewCaisseService(caisseRepo, activiteRepo, nil)
	quartSvc := service.NewQuartService(quartRepo, citerneRepo, caisseRepo, citerneSvc, caisseSvc,
		infra.NewForecourtClient(srv.URL), activiteRepo)

	return &quartFixture{
		svc:         quartSvc,
		citernes:    citerneSvc,
		caisses:     caisseSvc,
		quartRepo:   quartRepo,
		citerneRepo: citerneRepo,
		caisseRepo:  caisseRepo,
		citerneID:   citerne.ID,
		caisseID:    caisse.ID,
	}
}

func (f *quartFixture) ouvrirRequest() dto.OuvrirQuartRequest {
	return dto.OuvrirQuartRequest{
		Date:       "2026-03-15",
		Libelle:    "matin",
		CiterneIDs: []string{f.citerneID.String()},
		CaisseIDs:  []string{f.caisseID.String()},
		Operateur:  "Aminata",
	}
}

func TestOuvrirQuart(t *testing.T) {
	ctx := context.Background()
	f := newQuartFixture(t, "80450", "300000")

	resp, err := f.svc.Ouvrir(ctx, uuid.New(), f.ouvrirRequest())
	require.NoError(t, err)
	assert.Equal(t, "ouvert", resp.Statut)

	// One reading per tank, seeded with the last frozen index and the
	// theoretical ending index from the controller.
	require.Len(t, resp.Releves, 1)
	assert.True(t, qty("80000").Equal(resp.Releves[0].IndexDebut))
	assert.True(t, qty("80450").Equal(resp.Releves[0].IndexFinTheorique))
	assert.Equal(t, "en_cours", resp.Releves[0].Statut)

	// One session per drawer with the theoretical amount snapshot.
	require.Len(t, resp.Sessions, 1)
	assert.True(t, qty("300000").Equal(resp.Sessions[0].MontantTheorique))
	assert.Equal(t, "ouverte", resp.Sessions[0].Statut)
}

func TestOuvrirQuartDoublon(t *testing.T) {
	ctx := context.Background()
	f := newQuartFixture(t, "80450", "300000")

	_, err := f.svc.Ouvrir(ctx, uuid.New(), f.ouvrirRequest())
	require.NoError(t, err)

	_, err = f.svc.Ouvrir(ctx, uuid.New(), f.ouvrirRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "déjà ouvert")
}

func TestOuvrirQuartControleurInjoignable(t *testing.T) {
	ctx := context.Background()
	citerneRepo := newStubCiterneRepo()
	caisseRepo := newStubCaisseRepo()
	activiteRepo := &stubActiviteRepo{}
	quartSvc := service.NewQuartService(newStubQuartRepo(), citerneRepo, caisseRepo,
		service.NewCiterneService(citerneRepo, activiteRepo, nil),
		service.NewCaisseService(caisseRepo, activiteRepo, nil),
		infra.NewForecourtClient("http://127.0.0.1:1"), activiteRepo)

	_, err := quartSvc.Ouvrir(ctx, uuid.New(), dto.OuvrirQuartRequest{
		Date: "2026-03-15", Libelle: "soir",
		CiterneIDs: []string{uuid.NewString()},
		CaisseIDs:  []string{uuid.NewString()},
		Operateur:  "Moussa",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contrôleur de piste est injoignable")
}

func TestCloturerQuart(t *testing.T) {
	ctx := context.Background()
	f := newQuartFixture(t, "80450", "300000")
	userID := uuid.New()

	resp, err := f.svc.Ouvrir(ctx, userID, f.ouvrirRequest())
	require.NoError(t, err)
	quartID := uuid.MustParse(resp.QuartID)
	releveID := uuid.MustParse(resp.Releves[0].ReleveID)
	sessionID := uuid.MustParse(resp.Sessions[0].SessionID)

	// Closing with work in progress underneath is refused.
	_, err = f.svc.Cloturer(ctx, quartID, userID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "doivent être clôturées")

	res, err := f.citernes.Cloturer(ctx, releveID, userID, dto.CloturerReleveRequest{IndexFin: ptr("80452")})
	require.NoError(t, err)
	require.True(t, res.Valide)

	// Tank closed, drawer still open: still refused.
	_, err = f.svc.Cloturer(ctx, quartID, userID)
	require.Error(t, err)

	_, err = f.caisses.Cloturer(ctx, sessionID, userID, dto.CloturerSessionRequest{MontantCompte: ptr("298500")})
	require.NoError(t, err)

	closed, err := f.svc.Cloturer(ctx, quartID, userID)
	require.NoError(t, err)
	assert.Equal(t, "clos", closed.Statut)

	// Both écarts land in the summary counters: the tank at +2 litres is
	// critical, the drawer short 1500 FCFA is critical too.
	summary, err := f.svc.Summary(ctx, quartID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.NbEcartsCritique)
	assert.Equal(t, 0, summary.NbEcartsWarning)

	_, err = f.svc.Cloturer(ctx, quartID, userID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "déjà clos")
}

func TestExportQuartXLSX(t *testing.T) {
	ctx := context.Background()
	f := newQuartFixture(t, "80450", "300000")
	userID := uuid.New()

	resp, err := f.svc.Ouvrir(ctx, userID, f.ouvrirRequest())
	require.NoError(t, err)
	quartID := uuid.MustParse(resp.QuartID)

	data, filename, err := f.svc.ExportXLSX(ctx, quartID)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Contains(t, filename, "quart_2026-03-15")
	assert.Contains(t, filename, ".xlsx")
	// XLSX files are zip archives.
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}
