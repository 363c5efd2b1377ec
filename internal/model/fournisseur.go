package model

import (
	"time"

	"github.com/google/uuid"
)

// Fournisseur represents a supplier with commercial data.
type Fournisseur struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RaisonSociale  string    `gorm:"not null"`
	NIU            string    `gorm:"column:niu;uniqueIndex;not null"` // tax identifier
	Telephone      *string
	Email          *string
	Adresse        *string
	ConditionsPaie *string
	Actif          bool `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Produits  []Produit     `gorm:"foreignKey:FournisseurID"`
	Commandes []BonCommande `gorm:"foreignKey:FournisseurID"`
}

func (Fournisseur) TableName() string { return "fournisseurs" }
