package infra

import (
	"fmt"

	"stationops/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (sequences, partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates the schema. Also used by integration tests against a
// throwaway container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Utilisateur{},
		&model.Fournisseur{},
		&model.Produit{},
		&model.MouvementStock{},
		&model.BonCommande{},
		&model.LigneCommande{},
		&model.BonReception{},
		&model.LigneReception{},
		&model.Citerne{},
		&model.ReleveCiterne{},
		&model.Caisse{},
		&model.SessionCaisse{},
		&model.Quart{},
		&model.Client{},
		&model.Depense{},
		&model.Facture{},
		&model.LigneFacture{},
		&model.Reclamation{},
		&model.JournalActivite{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Safe to re-run on an already-patched database.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Display numbers (BC-000001, FA-000001) come from dedicated sequences
		// so concurrent creations never collide.
		{"create seq_numero_commande",
			`CREATE SEQUENCE IF NOT EXISTS seq_numero_commande START 1`},
		{"create seq_numero_facture",
			`CREATE SEQUENCE IF NOT EXISTS seq_numero_facture START 1`},

		// One open session per drawer at a time.
		{"unique open session per caisse", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_session_ouverte_par_caisse') THEN
    CREATE UNIQUE INDEX idx_session_ouverte_par_caisse
        ON sessions_caisse (caisse_id)
        WHERE statut = 'ouverte';
  END IF;
END $$`},

		// One in-progress reading per tank at a time.
		{"unique open releve per citerne", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_releve_en_cours_par_citerne') THEN
    CREATE UNIQUE INDEX idx_releve_en_cours_par_citerne
        ON releves_citerne (citerne_id)
        WHERE statut = 'en_cours';
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
