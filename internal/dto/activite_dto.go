package dto

type ActiviteResponse struct {
	ID        string  `json:"id"`
	Action    string  `json:"action"`
	Entite    string  `json:"entite"`
	EntiteID  *string `json:"entite_id,omitempty"`
	Detail    string  `json:"detail,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type ActiviteListResponse struct {
	Data  []ActiviteResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
