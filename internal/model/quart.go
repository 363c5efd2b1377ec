package model

import (
	"time"

	"github.com/google/uuid"
)

// Quart is a fixed work period against which cash sessions and tank readings
// are reconciled. Libelle: "matin" | "soir" | "nuit".
// Statut: "ouvert" | "clos".
type Quart struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date      time.Time `gorm:"type:date;not null;index:idx_quart_date_libelle,unique"`
	Libelle   string    `gorm:"type:varchar(10);not null;index:idx_quart_date_libelle,unique"`
	Statut    string    `gorm:"type:varchar(10);not null;default:'ouvert'"`
	OpenedAt  time.Time
	ClosedAt  *time.Time

	Releves  []ReleveCiterne `gorm:"foreignKey:QuartID"`
	Sessions []SessionCaisse `gorm:"foreignKey:QuartID"`
}

func (Quart) TableName() string { return "quarts" }
