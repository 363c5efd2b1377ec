package tests

import (
	"context"
	"errors"
	"testing"

	"stationops/internal/dto"
	"stationops/internal/model"
	"stationops/internal/repository"
	"stationops/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCaisseRepo is an in-memory CaisseRepository.
type stubCaisseRepo struct {
	caisses  map[uuid.UUID]*model.Caisse
	sessions map[uuid.UUID]*model.SessionCaisse
}

func newStubCaisseRepo() *stubCaisseRepo {
	return &stubCaisseRepo{
		caisses:  make(map[uuid.UUID]*model.Caisse),
		sessions: make(map[uuid.UUID]*model.SessionCaisse),
	}
}

func (r *stubCaisseRepo) Create(_ context.Context, c *model.Caisse) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.caisses[c.ID] = c
	return nil
}

func (r *stubCaisseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caisse, error) {
	c, ok := r.caisses[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubCaisseRepo) List(_ context.Context) ([]model.Caisse, error) {
	var out []model.Caisse
	for _, c := range r.caisses {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCaisseRepo) CreateSession(_ context.Context, s *model.SessionCaisse) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *stubCaisseRepo) FindSessionByID(_ context.Context, id uuid.UUID) (*model.SessionCaisse, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *stubCaisseRepo) FindSessionOuvertePourCaisse(_ context.Context, caisseID uuid.UUID) (*model.SessionCaisse, error) {
	for _, s := range r.sessions {
		if s.CaisseID == caisseID && s.Statut == "ouverte" {
			return s, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubCaisseRepo) ListSessionsByQuart(_ context.Context, quartID uuid.UUID) ([]model.SessionCaisse, error) {
	var out []model.SessionCaisse
	for _, s := range r.sessions {
		if s.QuartID != nil && *s.QuartID == quartID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubCaisseRepo) UpdateSession(_ context.Context, s *model.SessionCaisse) error {
	if _, ok := r.sessions[s.ID]; !ok {
		return errors.New("not found")
	}
	r.sessions[s.ID] = s
	return nil
}

var _ repository.CaisseRepository = (*stubCaisseRepo)(nil)

func setupSession(t *testing.T, repo *stubCaisseRepo, theorique string) *model.SessionCaisse {
	t.Helper()
	ctx := context.Background()
	caisse := &model.Caisse{Libelle: "Caisse boutique", Actif: true}
	require.NoError(t, repo.Create(ctx, caisse))

	svc := service.NewCaisseService(repo, &stubActiviteRepo{}, nil)
	session, err := svc.OuvrirSession(ctx, caisse.ID, nil, "Aminata", qty(theorique))
	require.NoError(t, err)
	return session
}

func TestOuvrirSessionUniqueParCaisse(t *testing.T) {
	ctx := context.Background()
	repo := newStubCaisseRepo()
	session := setupSession(t, repo, "250000")
	svc := service.NewCaisseService(repo, &stubActiviteRepo{}, nil)

	_, err := svc.OuvrirSession(ctx, session.CaisseID, nil, "Moussa", qty("0"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "déjà ouverte")
}

func TestCloturerSession(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	cases := []struct {
		name        string
		theorique   string
		compte      string
		niveau      string
		noteRequise bool
	}{
		{"compte exact", "250000", "250000", "ok", false},
		{"manquant sous le seuil", "250000", "249500", "warning", true},
		{"excedent sous le seuil", "250000", "250999", "warning", true},
		{"manquant critique", "250000", "249000", "critical", true},
		{"excedent critique", "250000", "251500", "critical", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubCaisseRepo()
			session := setupSession(t, repo, tc.theorique)
			activiteRepo := &stubActiviteRepo{}
			svc := service.NewCaisseService(repo, activiteRepo, nil)

			resp, err := svc.Cloturer(ctx, session.ID, userID, dto.CloturerSessionRequest{
				MontantCompte: ptr(tc.compte),
			})
			require.NoError(t, err)
			assert.Equal(t, tc.niveau, resp.Ecart.Niveau)
			assert.Equal(t, tc.noteRequise, resp.NoteRequise)
			assert.Equal(t, "cloturee", resp.Statut)

			want := qty(tc.compte).Sub(qty(tc.theorique))
			assert.True(t, want.Equal(resp.Ecart.Montant))

			require.NotEmpty(t, activiteRepo.entries)
			assert.Equal(t, "session_caisse.cloturee", activiteRepo.entries[len(activiteRepo.entries)-1].Action)
		})
	}
}

func TestCloturerSessionRejets(t *testing.T) {
	ctx := context.Background()
	repo := newStubCaisseRepo()
	session := setupSession(t, repo, "250000")
	svc := service.NewCaisseService(repo, &stubActiviteRepo{}, nil)
	userID := uuid.New()

	t.Run("montant manquant", func(t *testing.T) {
		_, err := svc.Cloturer(ctx, session.ID, userID, dto.CloturerSessionRequest{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "montant compté est requis")
	})

	t.Run("montant negatif", func(t *testing.T) {
		_, err := svc.Cloturer(ctx, session.ID, userID, dto.CloturerSessionRequest{MontantCompte: ptr("-100")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "positif ou nul")
	})

	t.Run("deja cloturee", func(t *testing.T) {
		_, err := svc.Cloturer(ctx, session.ID, userID, dto.CloturerSessionRequest{MontantCompte: ptr("250000")})
		require.NoError(t, err)
		_, err = svc.Cloturer(ctx, session.ID, userID, dto.CloturerSessionRequest{MontantCompte: ptr("250000")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "déjà clôturée")
	})
}

// Note stays advisory: a critical écart closes fine without a note, and the
// note entered by the operator is kept on the session.
func TestCloturerSessionNoteConservee(t *testing.T) {
	ctx := context.Background()
	repo := newStubCaisseRepo()
	session := setupSession(t, repo, "100000")
	svc := service.NewCaisseService(repo, &stubActiviteRepo{}, nil)

	note := "Billet de 5000 refusé par le compteur"
	resp, err := svc.Cloturer(ctx, session.ID, uuid.New(), dto.CloturerSessionRequest{
		MontantCompte: ptr("95000"),
		Notes:         &note,
	})
	require.NoError(t, err)
	assert.Equal(t, "critical", resp.Ecart.Niveau)

	stored, err := repo.FindSessionByID(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Notes)
	assert.Equal(t, note, *stored.Notes)
}
