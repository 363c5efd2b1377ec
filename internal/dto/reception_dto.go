package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// LigneReceptionRequest maps one order line to the quantity received now.
type LigneReceptionRequest struct {
	LigneCmdID string          `json:"ligne_commande_id" validate:"required,uuid"`
	Quantite   decimal.Decimal `json:"quantite_recue"    validate:"min=0"`
}

type RecevoirLivraisonRequest struct {
	NumeroBL      string                  `json:"numero_bl"`
	DateReception string                  `json:"date_reception"` // "2006-01-02"
	Lignes        []LigneReceptionRequest `json:"lignes" validate:"required,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LigneReceptionResponse struct {
	LigneCmdID       string          `json:"ligne_commande_id"`
	NomProduit       string          `json:"produit"`
	QuantiteCmd      decimal.Decimal `json:"quantite_commandee"`
	QuantiteRecue    decimal.Decimal `json:"quantite_recue"` // this event
	QuantiteCumulee  decimal.Decimal `json:"quantite_cumulee"`
	QuantiteRestante decimal.Decimal `json:"quantite_restante"` // after this event
	SurReception     bool            `json:"sur_reception"`
}

type RecevoirLivraisonResponse struct {
	ReceptionID   string                   `json:"reception_id"`
	CommandeID    string                   `json:"commande_id"`
	NumeroBL      string                   `json:"numero_bl"`
	NouveauStatut string                   `json:"nouveau_statut"`
	Lignes        []LigneReceptionResponse `json:"lignes"`
	// Avertissements carry over-receipt warnings — the event went through.
	Avertissements []string `json:"avertissements,omitempty"`
}
