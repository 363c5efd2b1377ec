package dto

import "github.com/shopspring/decimal"

type CreerDepenseRequest struct {
	Libelle     string          `json:"libelle"      validate:"required,min=3"`
	Categorie   string          `json:"categorie"    validate:"required,oneof=maintenance salaires electricite autre"`
	Montant     decimal.Decimal `json:"montant"      validate:"required,gt=0"`
	DateDepense string          `json:"date_depense" validate:"required"`
	Notes       *string         `json:"notes"`
}

type DepenseResponse struct {
	ID          string          `json:"id"`
	Libelle     string          `json:"libelle"`
	Categorie   string          `json:"categorie"`
	Montant     decimal.Decimal `json:"montant"`
	DateDepense string          `json:"date_depense"`
	Notes       *string         `json:"notes,omitempty"`
	CreatedAt   string          `json:"created_at"`
}
