package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LigneCommandeRequest struct {
	ProduitID      string          `json:"produit_id" validate:"required,uuid"`
	Quantite       decimal.Decimal `json:"quantite"   validate:"required,gt=0"`
	PrixUnitaire   decimal.Decimal `json:"prix_unitaire" validate:"required,gt=0"`
	NumeroLot      *string         `json:"numero_lot"`
	DatePeremption *string         `json:"date_peremption"` // "2006-01-02"
}

type CreerCommandeRequest struct {
	FournisseurID string                 `json:"fournisseur_id" validate:"required,uuid"`
	DateCommande  string                 `json:"date_commande"  validate:"required"`
	DateLivraison *string                `json:"date_livraison_souhaitee"`
	Notes         *string                `json:"notes"`
	Lignes        []LigneCommandeRequest `json:"lignes" validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LigneCommandeResponse struct {
	ID               string          `json:"id"`
	ProduitID        string          `json:"produit_id"`
	NomProduit       string          `json:"produit"`
	Unite            string          `json:"unite"`
	Quantite         decimal.Decimal `json:"quantite"`
	QuantiteRecue    decimal.Decimal `json:"quantite_recue"`
	QuantiteRestante decimal.Decimal `json:"quantite_restante"`
	PrixUnitaire     decimal.Decimal `json:"prix_unitaire"`
	MontantLigne     decimal.Decimal `json:"montant_ligne"`
	NumeroLot        *string         `json:"numero_lot,omitempty"`
	DatePeremption   *string         `json:"date_peremption,omitempty"`
}

type CommandeResponse struct {
	ID            string                  `json:"id"`
	Numero        string                  `json:"numero"`
	Fournisseur   string                  `json:"fournisseur"`
	FournisseurID string                  `json:"fournisseur_id"`
	DateCommande  string                  `json:"date_commande"`
	DateLivraison *string                 `json:"date_livraison_souhaitee,omitempty"`
	Notes         *string                 `json:"notes,omitempty"`
	Statut        string                  `json:"statut"`
	TotalHT       decimal.Decimal         `json:"total_ht"`
	Lignes        []LigneCommandeResponse `json:"lignes"`
	CreatedAt     string                  `json:"created_at"`
}

type CommandeListResponse struct {
	Data  []CommandeResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
