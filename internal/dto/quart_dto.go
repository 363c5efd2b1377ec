package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OuvrirQuartRequest struct {
	Date    string `json:"date"    validate:"required"` // "2006-01-02"
	Libelle string `json:"libelle" validate:"required,oneof=matin soir nuit"`
	// Citernes and caisses to reconcile over this quart.
	CiterneIDs []string `json:"citerne_ids" validate:"required,min=1,dive,uuid"`
	CaisseIDs  []string `json:"caisse_ids"  validate:"required,min=1,dive,uuid"`
	Operateur  string   `json:"operateur"   validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type QuartResponse struct {
	QuartID  string                  `json:"quart_id"`
	Date     string                  `json:"date"`
	Libelle  string                  `json:"libelle"`
	Statut   string                  `json:"statut"`
	Releves  []ReleveResponse        `json:"releves"`
	Sessions []SessionCaisseResponse `json:"sessions"`
}

// QuartSummaryResponse aggregates both reconciliation sets for reporting.
type QuartSummaryResponse struct {
	QuartID          string                  `json:"quart_id"`
	Date             string                  `json:"date"`
	Libelle          string                  `json:"libelle"`
	Statut           string                  `json:"statut"`
	Releves          []ReleveResponse        `json:"releves"`
	Sessions         []SessionCaisseResponse `json:"sessions"`
	NbEcartsCritique int                     `json:"nb_ecarts_critiques"`
	NbEcartsWarning  int                     `json:"nb_ecarts_warning"`
}
