package dto

type CreerReclamationRequest struct {
	ClientID    *string `json:"client_id" validate:"omitempty,uuid"`
	Objet       string  `json:"objet"       validate:"required,min=3"`
	Description string  `json:"description" validate:"required,min=3"`
}

type TraiterReclamationRequest struct {
	Statut     string  `json:"statut" validate:"required,oneof=en_cours resolue"`
	Resolution *string `json:"resolution"`
}

type ReclamationResponse struct {
	ID          string  `json:"id"`
	Client      *string `json:"client,omitempty"`
	Objet       string  `json:"objet"`
	Description string  `json:"description"`
	Statut      string  `json:"statut"`
	Resolution  *string `json:"resolution,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
