package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TypeClient discriminates the two client shapes. Fields that belong to the
// other variant are always nil — the service layer enforces this with an
// exhaustive switch at the DTO boundary, never partial updates.
type TypeClient string

const (
	ClientParticulier   TypeClient = "particulier"
	ClientProfessionnel TypeClient = "professionnel"
)

func (t TypeClient) Valide() bool {
	return t == ClientParticulier || t == ClientProfessionnel
}

// Client is a station customer — either an individual (particulier) or a
// business account (professionnel) with credit terms.
type Client struct {
	ID   uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type TypeClient `gorm:"type:varchar(20);not null;index"`

	// particulier
	Prenom *string
	Nom    *string

	// professionnel
	RaisonSociale *string
	NIU           *string          `gorm:"column:niu"`
	PlafondCredit *decimal.Decimal `gorm:"type:decimal(14,2)"`

	Telephone *string
	Email     *string
	Adresse   *string
	Actif     bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Client) TableName() string { return "clients" }

// NomAffichage returns the display name for either variant.
func (c *Client) NomAffichage() string {
	switch c.Type {
	case ClientProfessionnel:
		if c.RaisonSociale != nil {
			return *c.RaisonSociale
		}
	case ClientParticulier:
		nom, prenom := "", ""
		if c.Nom != nil {
			nom = *c.Nom
		}
		if c.Prenom != nil {
			prenom = *c.Prenom
		}
		if prenom != "" {
			return prenom + " " + nom
		}
		return nom
	}
	return ""
}
