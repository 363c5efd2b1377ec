package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// parseDate is the single point where user-entered dates cross into time.Time.
// Format is always "2006-01-02"; the field name makes the error attributable.
func parseDate(champ, valeur string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", valeur)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: date invalide, format attendu AAAA-MM-JJ", champ)
	}
	return t, nil
}
