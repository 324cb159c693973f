package postgres

import (
	"database/sql"
)

// UserRepo implements repository.UserRepository and repository.PreferenceRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// EnsureUserExists creates user if not exists, refreshing a non-empty handle
func (r *UserRepo) EnsureUserExists(userID int64, handle string) error {
	query := `
		INSERT INTO users (user_id, handle)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET handle = EXCLUDED.handle
		WHERE EXCLUDED.handle <> ''
	`
	_, err := r.db.Exec(query, userID, handle)
	return err
}

// CountUsers returns the number of registered users
func (r *UserRepo) CountUsers() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

// GetLanguage returns user's language, ok=false when unset
func (r *UserRepo) GetLanguage(userID int64) (string, bool, error) {
	var lang sql.NullString
	query := `SELECT language FROM users WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&lang)

	if err == sql.ErrNoRows {
		// User doesn't exist yet
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return lang.String, lang.Valid && lang.String != "", nil
}

// SetLanguage stores user's language
func (r *UserRepo) SetLanguage(userID int64, lang string) error {
	query := `
		INSERT INTO users (user_id, language)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET language = EXCLUDED.language
	`
	_, err := r.db.Exec(query, userID, lang)
	return err
}
