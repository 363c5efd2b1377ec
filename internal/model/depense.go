package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Depense is an operating expense of the station.
type Depense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Libelle     string          `gorm:"not null"`
	Categorie   string          `gorm:"not null"` // "maintenance" | "salaires" | "electricite" | "autre"
	Montant     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	DateDepense time.Time       `gorm:"not null;index"`
	Notes       *string
	CreePar     uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Depense) TableName() string { return "depenses" }
