package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreerProduitRequest struct {
	SKU           string          `json:"sku"       validate:"required,min=2"`
	Nom           string          `json:"nom"       validate:"required,min=2"`
	Description   *string         `json:"description"`
	Categorie     string          `json:"categorie" validate:"required,oneof=carburant lubrifiant boutique"`
	Unite         string          `json:"unite"     validate:"required"`
	PrixHT        decimal.Decimal `json:"prix_ht"   validate:"required,gt=0"`
	PrixTTC       decimal.Decimal `json:"prix_ttc"  validate:"required,gt=0"`
	StockMinimum  decimal.Decimal `json:"stock_minimum" validate:"min=0"`
	FournisseurID *string         `json:"fournisseur_id" validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProduitResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Nom          string          `json:"nom"`
	Description  *string         `json:"description,omitempty"`
	Categorie    string          `json:"categorie"`
	Unite        string          `json:"unite"`
	PrixHT       decimal.Decimal `json:"prix_ht"`
	PrixTTC      decimal.Decimal `json:"prix_ttc"`
	StockActuel  decimal.Decimal `json:"stock_actuel"`
	StockMinimum decimal.Decimal `json:"stock_minimum"`
	Actif        bool            `json:"actif"`
}

// ConsultePrixResponse is the cached fuel/product price lookup payload.
type ConsultePrixResponse struct {
	Nom       string          `json:"nom"`
	Categorie string          `json:"categorie"`
	Unite     string          `json:"unite"`
	PrixTTC   decimal.Decimal `json:"prix_ttc"`
}
