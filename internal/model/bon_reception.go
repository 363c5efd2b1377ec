package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BonReception records one receiving event against a bon de commande.
// Receptions are immutable — a correction is a new reception, never an edit.
type BonReception struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CommandeID    uuid.UUID `gorm:"type:uuid;not null;index"`
	NumeroBL      string    `gorm:"not null"` // delivery note number from the carrier
	DateReception time.Time `gorm:"not null"`
	RecuPar       uuid.UUID `gorm:"type:uuid;not null"`
	PDFPath       *string
	CreatedAt     time.Time

	Lignes []LigneReception `gorm:"foreignKey:ReceptionID"`
}

func (BonReception) TableName() string { return "bons_reception" }

// LigneReception snapshots the quantity received on one order line during one
// event. SurReception marks a soft over-receipt the operator chose to accept.
type LigneReception struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReceptionID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	LigneCmdID   uuid.UUID       `gorm:"type:uuid;not null"`
	NomProduit   string          `gorm:"not null"`
	Quantite     decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	SurReception bool            `gorm:"not null;default:false"`
	CreatedAt    time.Time
}

func (LigneReception) TableName() string { return "lignes_reception" }

// MouvementStock registers every stock change on a product.
// Quantite: positive = entrée, negative = sortie. Movements are NEVER
// modified or deleted — corrections create inverse entries.
type MouvementStock struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProduitID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        string          `gorm:"not null"` // "reception" | "ajustement" | "vente" | "perte"
	Quantite    decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	Motif       string
	ReferenceID *uuid.UUID `gorm:"type:uuid"` // reception or invoice if applicable
	CreatedAt   time.Time

	Produit *Produit `gorm:"foreignKey:ProduitID"`
}

func (MouvementStock) TableName() string { return "mouvements_stock" }
