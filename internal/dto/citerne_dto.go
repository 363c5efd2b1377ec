package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreerCiterneRequest struct {
	Nom       string          `json:"nom"       validate:"required,min=2"`
	Carburant string          `json:"carburant" validate:"required,oneof=gasoil super petrole"`
	Capacite  decimal.Decimal `json:"capacite"  validate:"required,gt=0"`
	// IndexInitial seeds DernierIndex for a tank entering the system mid-life.
	IndexInitial decimal.Decimal `json:"index_initial" validate:"min=0"`
}

// CloturerReleveRequest carries the operator-entered indexes at shift close.
// Pointers distinguish "not entered" from zero; the service validates
// positivity and ordering with field-attributable messages.
type CloturerReleveRequest struct {
	IndexDebut *decimal.Decimal `json:"index_debut"`
	IndexFin   *decimal.Decimal `json:"index_fin"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EcartResponse struct {
	Montant decimal.Decimal `json:"montant"`
	Niveau  string          `json:"niveau"` // none | ok | warning | critical
}

type ReleveResponse struct {
	ReleveID          string           `json:"releve_id"`
	CiterneID         string           `json:"citerne_id"`
	Citerne           string           `json:"citerne"`
	Carburant         string           `json:"carburant"`
	Unite             string           `json:"unite"`
	IndexDebut        decimal.Decimal  `json:"index_debut"`
	IndexFin          *decimal.Decimal `json:"index_fin,omitempty"`
	IndexFinTheorique decimal.Decimal  `json:"index_fin_theorique"`
	VolumeDistribue   *decimal.Decimal `json:"volume_distribue,omitempty"`
	Ecart             *EcartResponse   `json:"ecart,omitempty"`
	Statut            string           `json:"statut"`
}

// CloturerReleveResponse is the reconciliation result. When Valide is false
// the errors name the offending field and nothing was persisted.
type CloturerReleveResponse struct {
	ReleveID        string          `json:"releve_id"`
	Valide          bool            `json:"valide"`
	Erreurs         []string        `json:"erreurs,omitempty"`
	VolumeDistribue decimal.Decimal `json:"volume_distribue"`
	Ecart           EcartResponse   `json:"ecart"`
}

type CiterneResponse struct {
	ID           string          `json:"id"`
	Nom          string          `json:"nom"`
	Carburant    string          `json:"carburant"`
	Unite        string          `json:"unite"`
	Capacite     decimal.Decimal `json:"capacite"`
	DernierIndex decimal.Decimal `json:"dernier_index"`
	Actif        bool            `json:"actif"`
}
