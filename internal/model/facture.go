package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Facture is a client invoice. Amounts are HT/TTC pass-through from the
// lines — this system performs no tax computation of its own.
// Statut: "brouillon" | "emise" | "payee" | "annulee".
type Facture struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero    string    `gorm:"uniqueIndex;not null"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Statut    string    `gorm:"type:varchar(20);not null;default:'brouillon'"`
	DateEmise time.Time `gorm:"not null"`
	Echeance  *time.Time
	TotalHT   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalTTC  decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	PDFPath   *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Client *Client        `gorm:"foreignKey:ClientID"`
	Lignes []LigneFacture `gorm:"foreignKey:FactureID"`
}

func (Facture) TableName() string { return "factures" }

// FormatNumeroFacture renders a sequence value as a display invoice number.
func FormatNumeroFacture(n int64) string { return fmt.Sprintf("FA-%06d", n) }

type LigneFacture struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FactureID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Libelle    string          `gorm:"not null"`
	Quantite   decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	PrixUnitHT decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MontantHT  decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	MontantTTC decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt  time.Time
}

func (LigneFacture) TableName() string { return "lignes_facture" }
