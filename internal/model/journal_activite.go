package model

import (
	"time"

	"github.com/google/uuid"
)

// JournalActivite is an immutable audit row written by mutating services
// (reception confirmed, quart closed, facture issued…). Never updated.
type JournalActivite struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UtilisateurID *uuid.UUID `gorm:"type:uuid;index"`
	Action        string     `gorm:"not null"` // e.g. "reception.confirmee", "quart.clos"
	Entite        string     `gorm:"not null"`
	EntiteID      *uuid.UUID `gorm:"type:uuid"`
	Detail        string
	CreatedAt     time.Time `gorm:"index"`
}

func (JournalActivite) TableName() string { return "journal_activites" }
