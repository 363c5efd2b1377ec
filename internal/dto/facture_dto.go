package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LigneFactureRequest struct {
	Libelle    string          `json:"libelle"      validate:"required"`
	Quantite   decimal.Decimal `json:"quantite"     validate:"required,gt=0"`
	PrixUnitHT decimal.Decimal `json:"prix_unit_ht" validate:"required,gt=0"`
	MontantTTC decimal.Decimal `json:"montant_ttc"  validate:"required,gt=0"`
}

type CreerFactureRequest struct {
	ClientID  string                `json:"client_id" validate:"required,uuid"`
	DateEmise string                `json:"date_emise" validate:"required"`
	Echeance  *string               `json:"echeance"`
	Lignes    []LigneFactureRequest `json:"lignes" validate:"required,min=1,dive"`
	// EnvoyerEmail triggers async PDF + mail to the client on issue.
	EnvoyerEmail bool `json:"envoyer_email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LigneFactureResponse struct {
	Libelle    string          `json:"libelle"`
	Quantite   decimal.Decimal `json:"quantite"`
	PrixUnitHT decimal.Decimal `json:"prix_unit_ht"`
	MontantHT  decimal.Decimal `json:"montant_ht"`
	MontantTTC decimal.Decimal `json:"montant_ttc"`
}

type FactureResponse struct {
	ID        string                 `json:"id"`
	Numero    string                 `json:"numero"`
	Client    string                 `json:"client"`
	ClientID  string                 `json:"client_id"`
	Statut    string                 `json:"statut"`
	DateEmise string                 `json:"date_emise"`
	Echeance  *string                `json:"echeance,omitempty"`
	TotalHT   decimal.Decimal        `json:"total_ht"`
	TotalTTC  decimal.Decimal        `json:"total_ttc"`
	Lignes    []LigneFactureResponse `json:"lignes"`
}
