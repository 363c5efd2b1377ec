package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CreerClientRequest carries both variants; the service's exhaustive switch on
// TypeClient validates that only the matching variant's fields are set.
type CreerClientRequest struct {
	TypeClient string `json:"type_client" validate:"required,oneof=particulier professionnel"`

	// particulier
	Prenom *string `json:"prenom"`
	Nom    *string `json:"nom"`

	// professionnel
	RaisonSociale *string          `json:"raison_sociale"`
	NIU           *string          `json:"niu"`
	PlafondCredit *decimal.Decimal `json:"plafond_credit"`

	Telephone *string `json:"telephone"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Adresse   *string `json:"adresse"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClientResponse struct {
	ID            string           `json:"id"`
	TypeClient    string           `json:"type_client"`
	NomAffichage  string           `json:"nom_affichage"`
	Prenom        *string          `json:"prenom,omitempty"`
	Nom           *string          `json:"nom,omitempty"`
	RaisonSociale *string          `json:"raison_sociale,omitempty"`
	NIU           *string          `json:"niu,omitempty"`
	PlafondCredit *decimal.Decimal `json:"plafond_credit,omitempty"`
	Telephone     *string          `json:"telephone,omitempty"`
	Email         *string          `json:"email,omitempty"`
	Adresse       *string          `json:"adresse,omitempty"`
	Actif         bool             `json:"actif"`
}
