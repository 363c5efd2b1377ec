package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreerCaisseRequest struct {
	Libelle string `json:"libelle" validate:"required,min=2"`
}

type OuvrirSessionRequest struct {
	CaisseID  string `json:"caisse_id" validate:"required,uuid"`
	Operateur string `json:"operateur" validate:"required,min=2"`
}

// CloturerSessionRequest: the counted amount is entered once by the closing
// operator. Notes are advisory — prompted on any non-ok écart, never required.
type CloturerSessionRequest struct {
	MontantCompte *decimal.Decimal `json:"montant_compte"`
	Notes         *string          `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SessionCaisseResponse struct {
	SessionID        string           `json:"session_id"`
	CaisseID         string           `json:"caisse_id"`
	Caisse           string           `json:"caisse"`
	Operateur        string           `json:"operateur"`
	MontantTheorique decimal.Decimal  `json:"montant_theorique"`
	MontantCompte    *decimal.Decimal `json:"montant_compte,omitempty"`
	Ecart            *EcartResponse   `json:"ecart,omitempty"`
	Notes            *string          `json:"notes,omitempty"`
	Statut           string           `json:"statut"`
	OpenedAt         string           `json:"opened_at"`
	ClosedAt         *string          `json:"closed_at,omitempty"`
}

type CloturerSessionResponse struct {
	SessionID string        `json:"session_id"`
	Ecart     EcartResponse `json:"ecart"`
	// NoteRequise prompts the UI for an explanation on any non-ok écart.
	NoteRequise bool   `json:"note_requise"`
	Statut      string `json:"statut"`
}

type CaisseResponse struct {
	ID      string `json:"id"`
	Libelle string `json:"libelle"`
	Actif   bool   `json:"actif"`
}
