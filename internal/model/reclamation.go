package model

import (
	"time"

	"github.com/google/uuid"
)

// Reclamation is a customer complaint.
// Statut: "ouverte" | "en_cours" | "resolue".
type Reclamation struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID    *uuid.UUID `gorm:"type:uuid;index"`
	Objet       string     `gorm:"not null"`
	Description string     `gorm:"not null"`
	Statut      string     `gorm:"type:varchar(20);not null;default:'ouverte'"`
	Resolution  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Client *Client `gorm:"foreignKey:ClientID"`
}

func (Reclamation) TableName() string { return "reclamations" }
