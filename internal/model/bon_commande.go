package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatutCommande is the workflow status of a bon de commande.
type StatutCommande string

const (
	StatutBrouillon         StatutCommande = "brouillon"
	StatutSoumis            StatutCommande = "soumis"
	StatutPartiellementRecu StatutCommande = "partiellement_recu"
	StatutRecu              StatutCommande = "recu"
	StatutAnnule            StatutCommande = "annule"
	StatutLitige            StatutCommande = "litige"
)

// PeutRecevoir reports whether goods can be received in this status.
func (s StatutCommande) PeutRecevoir() bool {
	return s == StatutSoumis || s == StatutPartiellementRecu
}

// PeutPasserA validates a manual transition (submit / cancel / dispute).
// Receiving transitions are decided by the reception service, not here.
func (s StatutCommande) PeutPasserA(cible StatutCommande) bool {
	switch s {
	case StatutBrouillon:
		return cible == StatutSoumis || cible == StatutAnnule
	case StatutSoumis, StatutPartiellementRecu:
		return cible == StatutAnnule || cible == StatutLitige
	}
	// recu, annule and litige are terminal for manual transitions
	return false
}

// BonCommande is a supplier order received incrementally over one or more
// deliveries. TotalHT always equals the sum of its line amounts.
type BonCommande struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero         string    `gorm:"uniqueIndex;not null"`
	FournisseurID  uuid.UUID `gorm:"type:uuid;not null;index"`
	DateCommande   time.Time `gorm:"not null"`
	DateLivraison  *time.Time
	Notes          *string
	Statut         StatutCommande  `gorm:"type:varchar(30);not null;default:'brouillon'"`
	TotalHT        decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	// Version guards against two operators receiving the same order at once
	// (optimistic lock — checked in the UPDATE, bumped on every write).
	Version   int `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Fournisseur *Fournisseur    `gorm:"foreignKey:FournisseurID"`
	Lignes      []LigneCommande `gorm:"foreignKey:CommandeID"`
}

func (BonCommande) TableName() string { return "bons_commande" }

// FormatNumeroCommande renders a sequence value as a display order number.
func FormatNumeroCommande(n int64) string { return fmt.Sprintf("BC-%06d", n) }

// LigneCommande is one ordered product line. QuantiteRecue accumulates across
// partial deliveries; the line is immutable once the order reaches "recu".
type LigneCommande struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CommandeID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProduitID     uuid.UUID       `gorm:"type:uuid;not null"`
	NomProduit    string          `gorm:"not null"`
	Unite         string          `gorm:"not null;default:'unite'"`
	QuantiteCmd   decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	QuantiteRecue decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	PrixUnitaire  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MontantLigne  decimal.Decimal `gorm:"type:decimal(14,2);not null"` // QuantiteCmd × PrixUnitaire
	NumeroLot     *string
	DatePeremption *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (LigneCommande) TableName() string { return "lignes_commande" }

// QuantiteRestante is the quantity still to receive, clamped at zero so an
// over-receipt on a prior delivery can never produce a negative remainder.
func (l *LigneCommande) QuantiteRestante() decimal.Decimal {
	reste := l.QuantiteCmd.Sub(l.QuantiteRecue)
	if reste.IsNegative() {
		return decimal.Zero
	}
	return reste
}
