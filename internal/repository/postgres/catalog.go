package postgres

import (
	"database/sql"
)

// CatalogRepo implements repository.CatalogRepository
type CatalogRepo struct {
	db *sql.DB
}

// NewCatalogRepo creates a new catalog repository
func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// GetReference returns the remote reference stored for code
func (r *CatalogRepo) GetReference(code string) (string, bool, error) {
	var ref string
	query := `SELECT reference FROM catalog_entries WHERE code = $1`
	err := r.db.QueryRow(query, code).Scan(&ref)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return ref, true, nil
}

// AddEntry stores or replaces the reference for code
func (r *CatalogRepo) AddEntry(code, ref string) error {
	query := `
		INSERT INTO catalog_entries (code, reference)
		VALUES ($1, $2)
		ON CONFLICT (code)
		DO UPDATE SET reference = EXCLUDED.reference
	`
	_, err := r.db.Exec(query, code, ref)
	return err
}
