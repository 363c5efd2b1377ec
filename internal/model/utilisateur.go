package model

import (
	"time"

	"github.com/google/uuid"
)

// Utilisateur stores system users with role-based access.
// Role: "pompiste" | "superviseur" | "gerant"
type Utilisateur struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nom          string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(20);not null"`
	Actif        bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Utilisateur) TableName() string { return "utilisateurs" }
