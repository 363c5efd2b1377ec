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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubCiterneRepo is an in-memory CiterneRepository.
type stubCiterneRepo struct {
	citernes map[uuid.UUID]*model.Citerne
	releves  map[uuid.UUID]*model.ReleveCiterne
}

func newStubCiterneRepo() *stubCiterneRepo {
	return &stubCiterneRepo{
		citernes: make(map[uuid.UUID]*model.Citerne),
		releves:  make(map[uuid.UUID]*model.ReleveCiterne),
	}
}

func (r *stubCiterneRepo) Create(_ context.Context, c *model.Citerne) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.citernes[c.ID] = c
	return nil
}

func (r *stubCiterneRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Citerne, error) {
	c, ok := r.citernes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubCiterneRepo) List(_ context.Context) ([]model.Citerne, error) {
	var out []model.Citerne
	for _, c := range r.citernes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCiterneRepo) CreateReleve(_ context.Context, rel *model.ReleveCiterne) error {
	if rel.ID == uuid.Nil {
		rel.ID = uuid.New()
	}
	r.releves[rel.ID] = rel
	return nil
}

func (r *stubCiterneRepo) FindReleveByID(_ context.Context, id uuid.UUID) (*model.ReleveCiterne, error) {
	rel, ok := r.releves[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return rel, nil
}

func (r *stubCiterneRepo) ListRelevesByQuart(_ context.Context, quartID uuid.UUID) ([]model.ReleveCiterne, error) {
	var out []model.ReleveCiterne
	for _, rel := range r.releves {
		if rel.QuartID != nil && *rel.QuartID == quartID {
			out = append(out, *rel)
		}
	}
	return out, nil
}

func (r *stubCiterneRepo) CloturerReleveTx(_ *gorm.DB, rel *model.ReleveCiterne) error {
	stored, ok := r.releves[rel.ID]
	if !ok {
		return errors.New("not found")
	}
	if stored.Version != rel.Version {
		return repository.ErrVersionConflict
	}
	rel.Statut = "clos"
	rel.Version++
	r.releves[rel.ID] = rel
	// Ending index becomes the tank's starting point for the next quart.
	if c, ok := r.citernes[rel.CiterneID]; ok && rel.IndexFin != nil {
		c.DernierIndex = *rel.IndexFin
	}
	return nil
}

func (r *stubCiterneRepo) DB() *gorm.DB { return nil }

var _ repository.CiterneRepository = (*stubCiterneRepo)(nil)

func ptr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func setupReleve(t *testing.T, repo *stubCiterneRepo, debut, theorique string) *model.ReleveCiterne {
	t.Helper()
	ctx := context.Background()
	citerne := &model.Citerne{Nom: "Citerne Gasoil 1", Carburant: "gasoil", Unite: "litre",
		Capacite: qty("20000"), DernierIndex: qty(debut), Actif: true}
	require.NoError(t, repo.Create(ctx, citerne))

	svc := service.NewCiterneService(repo, &stubActiviteRepo{}, nil)
	releve, err := svc.OuvrirReleve(ctx, citerne.ID, nil, qty(theorique))
	require.NoError(t, err)
	assert.True(t, qty(debut).Equal(releve.IndexDebut))
	return releve
}

func TestCloturerReleve(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("rapprochement exact", func(t *testing.T) {
		repo := newStubCiterneRepo()
		releve := setupReleve(t, repo, "120000", "120450")
		svc := service.NewCiterneService(repo, &stubActiviteRepo{}, nil)

		resp, err := svc.Cloturer(ctx, releve.ID, userID, dto.CloturerReleveRequest{IndexFin: ptr("120450")})
		require.NoError(t, err)
		assert.True(t, resp.Valide)
		assert.True(t, qty("450").Equal(resp.VolumeDistribue))
		assert.Equal(t, "ok", resp.Ecart.Niveau)
		assert.True(t, resp.Ecart.Montant.IsZero())

		// The tank carries the frozen ending index forward.
		citerne, err := repo.FindByID(ctx, releve.CiterneID)
		require.NoError(t, err)
		assert.True(t, qty("120450").Equal(citerne.DernierIndex))
	})

	t.Run("ecart warning sous le litre", func(t *testing.T) {
		repo := newStubCiterneRepo()
		releve := setupReleve(t, repo, "1000", "1500")
		svc := service.NewCiterneService(repo, &stubActiviteRepo{}, nil)

		resp, err := svc.Cloturer(ctx, releve.ID, userID, dto.CloturerReleveRequest{IndexFin: ptr("1500.5")})
		require.NoError(t, err)
		assert.True(t, resp.Valide)
		assert.Equal(t, "warning", resp.Ecart.Niveau)
		assert.True(t, qty("0.5").Equal(resp.Ecart.Montant))
	})

	t.Run("ecart critique au litre", func(t *testing.T) {
		repo := newStubCiterneRepo()
		releve := setupReleve(t, repo, "1000", "1500")
		svc := service.NewCiterneService(repo, &stubActiviteRepo{}, nil)

		// A shortage classifies exactly like an overage of the same size.
		resp, err := svc.Cloturer(ctx, releve.ID, userID, dto.CloturerReleveRequest{IndexFin: ptr("1499")})
		require.NoError(t, err)
		assert.Equal(t, "critical", resp.Ecart.Niveau)
		assert.True(t, qty("-1").Equal(resp.Ecart.Montant))
	})

	t.Run("index debut corrige par l operateur", func(t *testing.T) {
		repo := newStubCiterneRepo()
		releve := setupReleve(t, repo, "1000", "1500")
		svc := service.NewCiterneService(repo, &stubActiviteRepo{}, nil)

		resp, err := svc.Cloturer(ctx, releve.ID, userID, dto.CloturerReleveRequest{
			IndexDebut: ptr("1010"),
			IndexFin:   ptr("1500"),
		})
		require.NoError(t, err)
		assert.True(t, resp.Valide)
		assert.True(t, qty("490").Equal(resp.VolumeDistribue))
	})
}

func TestCloturerReleveInvalide(t *testing.T) {
	ctx := context.Background()
	repo := newStubCiterneRepo()
	releve := setupReleve(t, repo, "1000", "1500")
	svc := service.NewCiterneService(repo, &stubActiviteRepo{}, nil)
	userID := uuid.New()

	t.Run("index fin manquant", func(t *testing.T) {
		resp, err := svc.Cloturer(ctx, releve.ID, userID, dto.CloturerReleveRequest{})
		require.NoError(t, err)
		assert.False(t, resp.Valide)
		require.Len(t, resp.Erreurs, 1)
		assert.Contains(t, resp.Erreurs[0], "index_fin")
	})

	t.Run("index fin inferieur au debut", func(t *testing.T) {
		resp, err := svc.Cloturer(ctx, releve.ID, userID, dto.CloturerReleveRequest{IndexFin: ptr("900")})
		require.NoError(t, err)
		assert.False(t, resp.Valide)
		assert.Contains(t, resp.Erreurs[0], "doit être supérieur à l'index de début")
	})

	// A totalizer that did not move means nothing was dispensed; the reading
	// is rejected, not recorded as a zero-volume close.
	t.Run("index fin egal au debut", func(t *testing.T) {
		resp, err := svc.Cloturer(ctx, releve.ID, userID, dto.CloturerReleveRequest{IndexFin: ptr("1000")})
		require.NoError(t, err)
		assert.False(t, resp.Valide)
		require.Len(t, resp.Erreurs, 1)
		assert.Contains(t, resp.Erreurs[0], "doit être supérieur à l'index de début")
	})

	t.Run("index negatif", func(t *testing.T) {
		resp, err := svc.Cloturer(ctx, releve.ID, userID, dto.CloturerReleveRequest{
			IndexDebut: ptr("-5"),
			IndexFin:   ptr("-1"),
		})
		require.NoError(t, err)
		assert.False(t, resp.Valide)
		assert.Len(t, resp.Erreurs, 2)
	})

	// Nothing was persisted by the rejected attempts.
	stored, err := repo.FindReleveByID(ctx, releve.ID)
	require.NoError(t, err)
	assert.Equal(t, "en_cours", stored.Statut)
	assert.Nil(t, stored.IndexFin)

	// Once closed, a second close is refused.
	_, err = svc.Cloturer(ctx, releve.ID, userID, dto.CloturerReleveRequest{IndexFin: ptr("1500")})
	require.NoError(t, err)
	_, err = svc.Cloturer(ctx, releve.ID, userID, dto.CloturerReleveRequest{IndexFin: ptr("1600")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "déjà clôturé")
}
