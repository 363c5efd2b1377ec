package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Citerne is one underground fuel tank feeding a set of pumps.
// DernierIndex carries the last frozen ending index across shifts.
type Citerne struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nom          string          `gorm:"not null"`
	Carburant    string          `gorm:"not null"` // "gasoil" | "super" | "petrole"
	Unite        string          `gorm:"not null;default:'litre'"`
	Capacite     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DernierIndex decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Actif        bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Citerne) TableName() string { return "citernes" }

// ReleveCiterne holds the index readings of one tank over one quart.
// Statut: "en_cours" | "clos". Once clos the values are frozen and the
// ending index becomes the tank's DernierIndex for the next quart.
type ReleveCiterne struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CiterneID uuid.UUID  `gorm:"type:uuid;not null;index"`
	QuartID   *uuid.UUID `gorm:"type:uuid;index"`
	// IndexDebut is pre-filled from the tank's DernierIndex at shift open,
	// then confirmed (or corrected) by the operator at close.
	IndexDebut decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	IndexFin   *decimal.Decimal `gorm:"type:decimal(14,2)"`
	// IndexFinTheorique is computed by the forecourt controller from the
	// pump totalizers; snapshot at shift open.
	IndexFinTheorique decimal.Decimal  `gorm:"type:decimal(14,2);not null"`
	VolumeDistribue   *decimal.Decimal `gorm:"type:decimal(12,2)"`
	EcartMontant      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	EcartNiveau       *string          `gorm:"type:varchar(10)"`
	Statut            string           `gorm:"type:varchar(10);not null;default:'en_cours'"`
	Version           int              `gorm:"not null;default:1"`
	CreatedAt         time.Time
	ClosedAt          *time.Time

	Citerne *Citerne `gorm:"foreignKey:CiterneID"`
}

func (ReleveCiterne) TableName() string { return "releves_citerne" }
