package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caisse is a physical cash drawer at the station shop or a pump island.
type Caisse struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Libelle   string    `gorm:"not null"`
	Actif     bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Caisse) TableName() string { return "caisses" }

// SessionCaisse is one drawer over one quart.
// Statut: "ouverte" | "cloturee". MontantTheorique is snapshot from the
// forecourt sales system when the session opens; MontantCompte is entered
// once by the closing operator. A negative écart is valid — it is a shortage.
type SessionCaisse struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CaisseID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	QuartID          *uuid.UUID      `gorm:"type:uuid;index"`
	Operateur        string          `gorm:"not null"`
	MontantTheorique decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	MontantCompte    *decimal.Decimal `gorm:"type:decimal(14,2)"`
	EcartMontant     *decimal.Decimal `gorm:"type:decimal(14,2)"`
	EcartNiveau      *string          `gorm:"type:varchar(10)"`
	Notes            *string
	Statut           string `gorm:"type:varchar(10);not null;default:'ouverte'"`
	OpenedAt         time.Time
	ClosedAt         *time.Time

	Caisse *Caisse `gorm:"foreignKey:CaisseID"`
}

func (SessionCaisse) TableName() string { return "sessions_caisse" }
