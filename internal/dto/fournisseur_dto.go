package dto

type CreerFournisseurRequest struct {
	RaisonSociale  string  `json:"raison_sociale" validate:"required,min=2"`
	NIU            string  `json:"niu"            validate:"required"`
	Telephone      *string `json:"telephone"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Adresse        *string `json:"adresse"`
	ConditionsPaie *string `json:"conditions_paiement"`
}

type FournisseurResponse struct {
	ID             string  `json:"id"`
	RaisonSociale  string  `json:"raison_sociale"`
	NIU            string  `json:"niu"`
	Telephone      *string `json:"telephone,omitempty"`
	Email          *string `json:"email,omitempty"`
	Adresse        *string `json:"adresse,omitempty"`
	ConditionsPaie *string `json:"conditions_paiement,omitempty"`
	Actif          bool    `json:"actif"`
}
