package repository

import (
	"kodbot/internal/domain"
)

// UserRepository defines user registry operations
type UserRepository interface {
	EnsureUserExists(userID int64, handle string) error
	CountUsers() (int, error)
}

// PreferenceRepository defines language preference operations
type PreferenceRepository interface {
	// GetLanguage returns ok=false when the user has no stored preference
	GetLanguage(userID int64) (lang string, ok bool, err error)
	SetLanguage(userID int64, lang string) error
}

// StatsRepository defines usage counter operations
type StatsRepository interface {
	Increment(code string) (int, error)
	GetCount(code string) (int, error)
	TopCodes(limit int) ([]domain.UsageStat, error)
}

// CatalogRepository defines code to remote reference operations
type CatalogRepository interface {
	// GetReference returns ok=false for unknown codes
	GetReference(code string) (ref string, ok bool, err error)
	AddEntry(code, ref string) error
}

// AssetStore defines the local video namespace
type AssetStore interface {
	// Find returns the path of the asset for code, ok=false when absent
	Find(code string) (path string, ok bool)
}
