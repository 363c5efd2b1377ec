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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubCommandeRepo is an in-memory CommandeRepository for testing.
type stubCommandeRepo struct {
	commandes map[uuid.UUID]*model.BonCommande
	numeroSeq int64
	// statutUpdates records every version-guarded status transition.
	statutUpdates []model.StatutCommande
	conflictOnVersion int
}

func newStubCommandeRepo() *stubCommandeRepo {
	return &stubCommandeRepo{commandes: make(map[uuid.UUID]*model.BonCommande)}
}

func (r *stubCommandeRepo) Create(_ context.Context, c *model.BonCommande) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for i := range c.Lignes {
		if c.Lignes[i].ID == uuid.Nil {
			c.Lignes[i].ID = uuid.New()
		}
	}
	r.commandes[c.ID] = c
	return nil
}

func (r *stubCommandeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.BonCommande, error) {
	c, ok := r.commandes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubCommandeRepo) List(_ context.Context, statut string, _, _ int) ([]model.BonCommande, int64, error) {
	var out []model.BonCommande
	for _, c := range r.commandes {
		if statut == "" || string(c.Statut) == statut {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubCommandeRepo) UpdateStatutTx(_ *gorm.DB, id uuid.UUID, version int, statut model.StatutCommande) error {
	c, ok := r.commandes[id]
	if !ok {
		return errors.New("not found")
	}
	if r.conflictOnVersion != 0 && version == r.conflictOnVersion {
		return repository.ErrVersionConflict
	}
	if c.Version != version {
		return repository.ErrVersionConflict
	}
	c.Statut = statut
	c.Version++
	r.statutUpdates = append(r.statutUpdates, statut)
	return nil
}

func (r *stubCommandeRepo) UpdateLigneRecueTx(_ *gorm.DB, ligneID uuid.UUID, l *model.LigneCommande) error {
	for _, c := range r.commandes {
		for i := range c.Lignes {
			if c.Lignes[i].ID == ligneID {
				c.Lignes[i].QuantiteRecue = l.QuantiteRecue
				return nil
			}
		}
	}
	return errors.New("ligne not found")
}

func (r *stubCommandeRepo) NextNumero(_ context.Context) (string, error) {
	r.numeroSeq++
	return model.FormatNumeroCommande(r.numeroSeq), nil
}

func (r *stubCommandeRepo) DB() *gorm.DB { return nil }

var _ repository.CommandeRepository = (*stubCommandeRepo)(nil)

// stubReceptionRepo captures created receptions and stock movements.
type stubReceptionRepo struct {
	receptions []*model.BonReception
	mouvements []*model.MouvementStock
}

func (r *stubReceptionRepo) CreateTx(_ *gorm.DB, br *model.BonReception) error {
	if br.ID == uuid.Nil {
		br.ID = uuid.New()
	}
	r.receptions = append(r.receptions, br)
	return nil
}

func (r *stubReceptionRepo) CreateMouvementTx(_ *gorm.DB, m *model.MouvementStock) error {
	r.mouvements = append(r.mouvements, m)
	return nil
}

func (r *stubReceptionRepo) ListByCommande(_ context.Context, commandeID uuid.UUID) ([]model.BonReception, error) {
	var out []model.BonReception
	for _, br := range r.receptions {
		if br.CommandeID == commandeID {
			out = append(out, *br)
		}
	}
	return out, nil
}

func (r *stubReceptionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.BonReception, error) {
	for _, br := range r.receptions {
		if br.ID == id {
			return br, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubReceptionRepo) UpdatePDFPath(_ context.Context, _ uuid.UUID, _ string) error { return nil }

var _ repository.ReceptionRepository = (*stubReceptionRepo)(nil)

// stubProduitRepo tracks stock per product.
type stubProduitRepo struct {
	produits map[uuid.UUID]*model.Produit
	stock    map[uuid.UUID]decimal.Decimal
}

func newStubProduitRepo() *stubProduitRepo {
	return &stubProduitRepo{
		produits: make(map[uuid.UUID]*model.Produit),
		stock:    make(map[uuid.UUID]decimal.Decimal),
	}
}

func (r *stubProduitRepo) Create(_ context.Context, p *model.Produit) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.produits[p.ID] = p
	return nil
}

func (r *stubProduitRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Produit, error) {
	p, ok := r.produits[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProduitRepo) FindBySKU(_ context.Context, sku string) (*model.Produit, error) {
	for _, p := range r.produits {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubProduitRepo) List(_ context.Context, _ string) ([]model.Produit, error) {
	return nil, nil
}

func (r *stubProduitRepo) Update(_ context.Context, _ *model.Produit) error   { return nil }
func (r *stubProduitRepo) SoftDelete(_ context.Context, _ uuid.UUID) error    { return nil }

func (r *stubProduitRepo) AjouterStockTx(_ *gorm.DB, id uuid.UUID, quantite decimal.Decimal) error {
	r.stock[id] = r.stock[id].Add(quantite)
	return nil
}

var _ repository.ProduitRepository = (*stubProduitRepo)(nil)

// stubActiviteRepo captures journal rows.
type stubActiviteRepo struct {
	entries []*model.JournalActivite
}

func (r *stubActiviteRepo) Create(_ context.Context, a *model.JournalActivite) error {
	r.entries = append(r.entries, a)
	return nil
}

func (r *stubActiviteRepo) CreateTx(_ *gorm.DB, a *model.JournalActivite) error {
	r.entries = append(r.entries, a)
	return nil
}

func (r *stubActiviteRepo) List(_ context.Context, _ string, _, _ int) ([]model.JournalActivite, int64, error) {
	var out []model.JournalActivite
	for _, e := range r.entries {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

var _ repository.ActiviteRepository = (*stubActiviteRepo)(nil)

// ── Fixtures ──────────────────────────────────────────────────────────────────

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setupCommande(t *testing.T, repo *stubCommandeRepo, quantites ...string) *model.BonCommande {
	t.Helper()
	commande := &model.BonCommande{
		Numero:        "BC-000001",
		FournisseurID: uuid.New(),
		Statut:        model.StatutSoumis,
		Version:       1,
	}
	for i, q := range quantites {
		commande.Lignes = append(commande.Lignes, model.LigneCommande{
			ProduitID:    uuid.New(),
			NomProduit:   []string{"Gasoil", "Super", "Huile moteur"}[i%3],
			QuantiteCmd:  qty(q),
			PrixUnitaire: qty("650"),
		})
	}
	require.NoError(t, repo.Create(context.Background(), commande))
	return commande
}

func newReceptionService(commandeRepo *stubCommandeRepo) (service.ReceptionService, *stubReceptionRepo, *stubProduitRepo, *stubActiviteRepo) {
	receptionRepo := &stubReceptionRepo{}
	produitRepo := newStubProduitRepo()
	activiteRepo := &stubActiviteRepo{}
	svc := service.NewReceptionService(commandeRepo, receptionRepo, produitRepo, activiteRepo, nil)
	return svc, receptionRepo, produitRepo, activiteRepo
}

// ── DeciderStatut ─────────────────────────────────────────────────────────────

func TestDeciderStatut(t *testing.T) {
	ligne := func(cmd, recue string) model.LigneCommande {
		return model.LigneCommande{QuantiteCmd: qty(cmd), QuantiteRecue: qty(recue)}
	}

	cases := []struct {
		name   string
		lignes []model.LigneCommande
		want   model.StatutCommande
	}{
		{"rien reçu", []model.LigneCommande{ligne("10", "0"), ligne("5", "0")}, model.StatutSoumis},
		{"partiellement reçu", []model.LigneCommande{ligne("10", "4"), ligne("5", "0")}, model.StatutPartiellementRecu},
		{"une ligne servie, une en attente", []model.LigneCommande{ligne("10", "10"), ligne("5", "0")}, model.StatutPartiellementRecu},
		{"tout servi exactement", []model.LigneCommande{ligne("10", "10"), ligne("5", "5")}, model.StatutRecu},
		{"sur-réception ferme la ligne", []model.LigneCommande{ligne("10", "12"), ligne("5", "5")}, model.StatutRecu},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, service.DeciderStatut(tc.lignes))
		})
	}
}

// ── Recevoir ──────────────────────────────────────────────────────────────────

func TestRecevoirPartielPuisComplet(t *testing.T) {
	ctx := context.Background()
	commandeRepo := newStubCommandeRepo()
	commande := setupCommande(t, commandeRepo, "10", "5")
	svc, receptionRepo, produitRepo, activiteRepo := newReceptionService(commandeRepo)
	userID := uuid.New()

	// First delivery: 4 of 10 on line 0.
	resp, err := svc.Recevoir(ctx, commande.ID, userID, dto.RecevoirLivraisonRequest{
		NumeroBL:      "BL-1001",
		DateReception: "2026-03-01",
		Lignes: []dto.LigneReceptionRequest{
			{LigneCmdID: commande.Lignes[0].ID.String(), Quantite: qty("4")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "partiellement_recu", resp.NouveauStatut)
	require.Len(t, resp.Lignes, 1)
	assert.True(t, qty("4").Equal(resp.Lignes[0].QuantiteCumulee))
	assert.True(t, qty("6").Equal(resp.Lignes[0].QuantiteRestante))
	assert.False(t, resp.Lignes[0].SurReception)
	assert.Empty(t, resp.Avertissements)

	// Stock moved, movement journaled, audit row written.
	assert.True(t, qty("4").Equal(produitRepo.stock[commande.Lignes[0].ProduitID]))
	require.Len(t, receptionRepo.mouvements, 1)
	assert.Equal(t, "reception", receptionRepo.mouvements[0].Type)
	require.NotEmpty(t, activiteRepo.entries)
	assert.Equal(t, "reception.confirmee", activiteRepo.entries[len(activiteRepo.entries)-1].Action)

	// Second delivery completes both lines.
	resp, err = svc.Recevoir(ctx, commande.ID, userID, dto.RecevoirLivraisonRequest{
		NumeroBL:      "BL-1002",
		DateReception: "2026-03-02",
		Lignes: []dto.LigneReceptionRequest{
			{LigneCmdID: commande.Lignes[0].ID.String(), Quantite: qty("6")},
			{LigneCmdID: commande.Lignes[1].ID.String(), Quantite: qty("5")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "recu", resp.NouveauStatut)
	assert.Len(t, receptionRepo.receptions, 2)

	// Version bumped by each status transition.
	assert.Equal(t, []model.StatutCommande{model.StatutPartiellementRecu, model.StatutRecu}, commandeRepo.statutUpdates)
}

func TestRecevoirSurReception(t *testing.T) {
	ctx := context.Background()
	commandeRepo := newStubCommandeRepo()
	commande := setupCommande(t, commandeRepo, "10")
	svc, receptionRepo, _, _ := newReceptionService(commandeRepo)

	resp, err := svc.Recevoir(ctx, commande.ID, uuid.New(), dto.RecevoirLivraisonRequest{
		NumeroBL:      "BL-2001",
		DateReception: "2026-03-05",
		Lignes: []dto.LigneReceptionRequest{
			{LigneCmdID: commande.Lignes[0].ID.String(), Quantite: qty("12")},
		},
	})
	require.NoError(t, err)

	// Over-receipt goes through with a warning, the line flag set, and the
	// order considered fully served.
	assert.Equal(t, "recu", resp.NouveauStatut)
	require.Len(t, resp.Avertissements, 1)
	assert.Contains(t, resp.Avertissements[0], "Sur-réception")
	require.Len(t, receptionRepo.receptions, 1)
	assert.True(t, receptionRepo.receptions[0].Lignes[0].SurReception)

	// Remaining quantity clamps at zero after the over-receipt.
	assert.True(t, resp.Lignes[0].QuantiteRestante.IsZero())
}

func TestRecevoirValidation(t *testing.T) {
	ctx := context.Background()
	commandeRepo := newStubCommandeRepo()
	commande := setupCommande(t, commandeRepo, "10")
	svc, receptionRepo, _, _ := newReceptionService(commandeRepo)

	t.Run("statut non recevable", func(t *testing.T) {
		brouillon := setupCommande(t, commandeRepo, "10")
		brouillon.Statut = model.StatutBrouillon
		_, err := svc.Recevoir(ctx, brouillon.ID, uuid.New(), dto.RecevoirLivraisonRequest{
			NumeroBL: "BL-X",
			Lignes:   []dto.LigneReceptionRequest{{LigneCmdID: brouillon.Lignes[0].ID.String(), Quantite: qty("1")}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "brouillon")
	})

	t.Run("numero BL manquant et aucune ligne", func(t *testing.T) {
		_, err := svc.Recevoir(ctx, commande.ID, uuid.New(), dto.RecevoirLivraisonRequest{})
		require.Error(t, err)
		var ve *apierror.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "numero_bl")
		assert.Equal(t, "Veuillez saisir au moins une ligne de réception", ve.Fields["lignes"])
	})

	t.Run("ligne etrangere", func(t *testing.T) {
		_, err := svc.Recevoir(ctx, commande.ID, uuid.New(), dto.RecevoirLivraisonRequest{
			NumeroBL:      "BL-3001",
			DateReception: "2026-03-05",
			Lignes:        []dto.LigneReceptionRequest{{LigneCmdID: uuid.NewString(), Quantite: qty("1")}},
		})
		var ve *apierror.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "la ligne n'appartient pas à cette commande", ve.Fields["lignes[0]"])
	})

	t.Run("quantite nulle", func(t *testing.T) {
		_, err := svc.Recevoir(ctx, commande.ID, uuid.New(), dto.RecevoirLivraisonRequest{
			NumeroBL:      "BL-3002",
			DateReception: "2026-03-05",
			Lignes:        []dto.LigneReceptionRequest{{LigneCmdID: commande.Lignes[0].ID.String(), Quantite: decimal.Zero}},
		})
		var ve *apierror.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "la quantité reçue doit être strictement positive", ve.Fields["lignes[0]"])
	})

	t.Run("date manquante", func(t *testing.T) {
		_, err := svc.Recevoir(ctx, commande.ID, uuid.New(), dto.RecevoirLivraisonRequest{
			NumeroBL: "BL-3004",
			Lignes:   []dto.LigneReceptionRequest{{LigneCmdID: commande.Lignes[0].ID.String(), Quantite: qty("1")}},
		})
		var ve *apierror.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "la date de réception est requise", ve.Fields["date_reception"])
	})

	t.Run("date invalide", func(t *testing.T) {
		_, err := svc.Recevoir(ctx, commande.ID, uuid.New(), dto.RecevoirLivraisonRequest{
			NumeroBL:      "BL-3003",
			DateReception: "01/03/2026",
			Lignes:        []dto.LigneReceptionRequest{{LigneCmdID: commande.Lignes[0].ID.String(), Quantite: qty("1")}},
		})
		var ve *apierror.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields["date_reception"], "AAAA-MM-JJ")
	})

	// A rejected event persists nothing.
	assert.Empty(t, receptionRepo.receptions)
	assert.True(t, commande.Lignes[0].QuantiteRecue.IsZero())
}

func TestRecevoirConflitVersion(t *testing.T) {
	ctx := context.Background()
	commandeRepo := newStubCommandeRepo()
	commande := setupCommande(t, commandeRepo, "10")
	commandeRepo.conflictOnVersion = commande.Version
	svc, _, _, _ := newReceptionService(commandeRepo)

	_, err := svc.Recevoir(ctx, commande.ID, uuid.New(), dto.RecevoirLivraisonRequest{
		NumeroBL:      "BL-4001",
		DateReception: "2026-03-05",
		Lignes:        []dto.LigneReceptionRequest{{LigneCmdID: commande.Lignes[0].ID.String(), Quantite: qty("10")}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrVersionConflict)
}

func TestQuantiteRestanteClamp(t *testing.T) {
	l := model.LigneCommande{QuantiteCmd: qty("10"), QuantiteRecue: qty("12")}
	assert.True(t, l.QuantiteRestante().IsZero())

	l = model.LigneCommande{QuantiteCmd: qty("10"), QuantiteRecue: qty("7.5")}
	assert.True(t, qty("2.5").Equal(l.QuantiteRestante()))
}
