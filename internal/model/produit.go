package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Produit covers both fuels (sold by the litre from citernes) and boutique
// items. Prices are HT/TTC pass-through — no tax computation in this system.
type Produit struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU           string    `gorm:"uniqueIndex;not null"`
	Nom           string    `gorm:"index;not null"`
	Description   *string
	Categorie     string          `gorm:"not null"` // "carburant" | "lubrifiant" | "boutique"
	Unite         string          `gorm:"not null;default:'unite'"`
	PrixHT        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrixTTC       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StockActuel   decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	StockMinimum  decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	FournisseurID *uuid.UUID      `gorm:"type:uuid;index"`
	Actif         bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Fournisseur *Fournisseur `gorm:"foreignKey:FournisseurID"`
}

func (Produit) TableName() string { return "produits" }
