package tests

import (
	"context"
	"errors"
	"testing"

	"stationops/internal/config"
	"stationops/internal/dto"
	"stationops/internal/model"
	"stationops/internal/repository"
	"stationops/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUtilisateurRepo is an in-memory UtilisateurRepository.
type stubUtilisateurRepo struct {
	users map[uuid.UUID]*model.Utilisateur
}

func newStubUtilisateurRepo() *stubUtilisateurRepo {
	return &stubUtilisateurRepo{users: make(map[uuid.UUID]*model.Utilisateur)}
}

func (r *stubUtilisateurRepo) Create(_ context.Context, u *model.Utilisateur) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUtilisateurRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Utilisateur, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUtilisateurRepo) FindByUsername(_ context.Context, username string) (*model.Utilisateur, error) {
	for _, u := range r.users {
		if u.Username == username && u.Actif {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubUtilisateurRepo) List(_ context.Context) ([]model.Utilisateur, error) {
	var out []model.Utilisateur
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUtilisateurRepo) Update(_ context.Context, u *model.Utilisateur) error {
	if _, ok := r.users[u.ID]; !ok {
		return errors.New("not found")
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUtilisateurRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("not found")
	}
	u.Actif = false
	return nil
}

func (r *stubUtilisateurRepo) Reactiver(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("not found")
	}
	u.Actif = true
	return nil
}

var _ repository.UtilisateurRepository = (*stubUtilisateurRepo)(nil)

func newAuthService(repo *stubUtilisateurRepo) service.AuthService {
	cfg := &config.Config{
		JWTSecret:          "test-secret-not-for-production",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(repo, cfg)
}

func TestLoginEtRefresh(t *testing.T) {
	ctx := context.Background()
	repo := newStubUtilisateurRepo()
	svc := newAuthService(repo)

	_, err := svc.CreerUtilisateur(ctx, dto.CreerUtilisateurRequest{
		Username: "aminata",
		Nom:      "Aminata Diallo",
		Password: "motdepasse123",
		Role:     "superviseur",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "aminata", Password: "motdepasse123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "superviseur", resp.User.Role)

	refreshed, err := svc.Refresh(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)
}

func TestLoginRejets(t *testing.T) {
	ctx := context.Background()
	repo := newStubUtilisateurRepo()
	svc := newAuthService(repo)

	resp, err := svc.CreerUtilisateur(ctx, dto.CreerUtilisateurRequest{
		Username: "moussa",
		Nom:      "Moussa Traoré",
		Password: "motdepasse123",
		Role:     "pompiste",
	})
	require.NoError(t, err)

	t.Run("mauvais mot de passe", func(t *testing.T) {
		_, err := svc.Login(ctx, dto.LoginRequest{Username: "moussa", Password: "faux"})
		require.Error(t, err)
		assert.Equal(t, "identifiants invalides", err.Error())
	})

	t.Run("utilisateur inconnu", func(t *testing.T) {
		_, err := svc.Login(ctx, dto.LoginRequest{Username: "personne", Password: "x"})
		require.Error(t, err)
		assert.Equal(t, "identifiants invalides", err.Error())
	})

	t.Run("utilisateur desactive", func(t *testing.T) {
		id := uuid.MustParse(resp.ID)
		require.NoError(t, svc.DesactiverUtilisateur(ctx, id))
		_, err := svc.Login(ctx, dto.LoginRequest{Username: "moussa", Password: "motdepasse123"})
		require.Error(t, err)
	})

	t.Run("refresh token corrompu", func(t *testing.T) {
		_, err := svc.Refresh(ctx, "pas.un.jwt")
		require.Error(t, err)
		assert.Equal(t, "refresh token invalide ou expiré", err.Error())
	})
}
