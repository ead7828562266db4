package db

import (
	"fmt"

	"gorm.io/gorm"
)

// Statements must stay valid on both postgres and sqlite.
var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		collection VARCHAR(64) NOT NULL,
		id VARCHAR(64) NOT NULL,
		seq BIGINT NOT NULL,
		data TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (collection, id)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_documents_collection_seq ON documents (collection, seq);`,
}

// Migrate creates the documents table used by the gorm store.
func Migrate(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
