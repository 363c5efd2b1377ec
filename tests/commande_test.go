package tests

import (
	"context"
	"errors"
	"testing"

	"stationops/internal/apierror"
	"stationops/internal/dto"
	"stationops/internal/model"
	"stationops/internal/repository"
	"stationops/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFournisseurRepo is an in-memory FournisseurRepository.
type stubFournisseurRepo struct {
	fournisseurs map[uuid.UUID]*model.Fournisseur
}

func newStubFournisseurRepo() *stubFournisseurRepo {
	return &stubFournisseurRepo{fournisseurs: make(map[uuid.UUID]*model.Fournisseur)}
}

func (r *stubFournisseurRepo) Create(_ context.Context, f *model.Fournisseur) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	r.fournisseurs[f.ID] = f
	return nil
}

func (r *stubFournisseurRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Fournisseur, error) {
	f, ok := r.fournisseurs[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return f, nil
}

func (r *stubFournisseurRepo) List(_ context.Context) ([]model.Fournisseur, error) { return nil, nil }
func (r *stubFournisseurRepo) Update(_ context.Context, _ *model.Fournisseur) error { return nil }
func (r *stubFournisseurRepo) SoftDelete(_ context.Context, _ uuid.UUID) error      { return nil }

var _ repository.FournisseurRepository = (*stubFournisseurRepo)(nil)

func newCommandeFixture(t *testing.T) (service.CommandeService, *stubCommandeRepo, *model.Fournisseur, *model.Produit) {
	t.Helper()
	ctx := context.Background()
	commandeRepo := newStubCommandeRepo()
	fournisseurRepo := newStubFournisseurRepo()
	produitRepo := newStubProduitRepo()

	fournisseur := &model.Fournisseur{RaisonSociale: "Total Distribution"}
	require.NoError(t, fournisseurRepo.Create(ctx, fournisseur))
	produit := &model.Produit{Nom: "Gasoil", SKU: "GAS-001", Unite: "litre"}
	require.NoError(t, produitRepo.Create(ctx, produit))

	svc := service.NewCommandeService(commandeRepo, fournisseurRepo, produitRepo, &stubActiviteRepo{})
	return svc, commandeRepo, fournisseur, produit
}

func TestCreerCommande(t *testing.T) {
	ctx := context.Background()
	svc, _, fournisseur, produit := newCommandeFixture(t)

	resp, err := svc.Creer(ctx, uuid.New(), dto.CreerCommandeRequest{
		FournisseurID: fournisseur.ID.String(),
		DateCommande:  "2026-03-10",
		Lignes: []dto.LigneCommandeRequest{
			{ProduitID: produit.ID.String(), Quantite: qty("10000"), PrixUnitaire: qty("650")},
			{ProduitID: produit.ID.String(), Quantite: qty("500"), PrixUnitaire: qty("700")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "brouillon", resp.Statut)
	assert.Equal(t, "BC-000001", resp.Numero)
	// TotalHT = 10000×650 + 500×700, computed server-side.
	assert.True(t, qty("6850000").Equal(resp.TotalHT))
	require.Len(t, resp.Lignes, 2)
	assert.True(t, qty("6500000").Equal(resp.Lignes[0].MontantLigne))
}

func TestCreerCommandeValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, fournisseur, produit := newCommandeFixture(t)

	_, err := svc.Creer(ctx, uuid.New(), dto.CreerCommandeRequest{
		FournisseurID: uuid.NewString(), // unknown supplier
		DateCommande:  "10/03/2026",    // wrong format
		Lignes: []dto.LigneCommandeRequest{
			{ProduitID: produit.ID.String(), Quantite: qty("0"), PrixUnitaire: qty("650")},
			{ProduitID: "pas-un-uuid", Quantite: qty("1"), PrixUnitaire: qty("650")},
		},
	})
	var ve *apierror.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "fournisseur introuvable", ve.Fields["fournisseur_id"])
	assert.Contains(t, ve.Fields["date_commande"], "AAAA-MM-JJ")
	assert.Contains(t, ve.Fields["lignes[0]"], "strictement positive")
	assert.Equal(t, "produit_id invalide", ve.Fields["lignes[1]"])

	_ = fournisseur
}

func TestChangerStatut(t *testing.T) {
	ctx := context.Background()
	svc, commandeRepo, fournisseur, produit := newCommandeFixture(t)
	userID := uuid.New()

	creer := func(t *testing.T) uuid.UUID {
		resp, err := svc.Creer(ctx, userID, dto.CreerCommandeRequest{
			FournisseurID: fournisseur.ID.String(),
			DateCommande:  "2026-03-10",
			Lignes: []dto.LigneCommandeRequest{
				{ProduitID: produit.ID.String(), Quantite: qty("10"), PrixUnitaire: qty("650")},
			},
		})
		require.NoError(t, err)
		return uuid.MustParse(resp.ID)
	}

	t.Run("brouillon vers soumis puis litige", func(t *testing.T) {
		id := creer(t)
		resp, err := svc.ChangerStatut(ctx, id, userID, model.StatutSoumis)
		require.NoError(t, err)
		assert.Equal(t, "soumis", resp.Statut)

		resp, err = svc.ChangerStatut(ctx, id, userID, model.StatutLitige)
		require.NoError(t, err)
		assert.Equal(t, "litige", resp.Statut)

		// litige is terminal for manual transitions.
		_, err = svc.ChangerStatut(ctx, id, userID, model.StatutSoumis)
		require.Error(t, err)
	})

	t.Run("brouillon annulable, pas disputable", func(t *testing.T) {
		id := creer(t)
		_, err := svc.ChangerStatut(ctx, id, userID, model.StatutLitige)
		require.Error(t, err)

		resp, err := svc.ChangerStatut(ctx, id, userID, model.StatutAnnule)
		require.NoError(t, err)
		assert.Equal(t, "annule", resp.Statut)
	})

	t.Run("jamais de saut direct vers recu", func(t *testing.T) {
		id := creer(t)
		_, err := svc.ChangerStatut(ctx, id, userID, model.StatutRecu)
		require.Error(t, err)

		commande, err := commandeRepo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.StatutBrouillon, commande.Statut)
	})
}
