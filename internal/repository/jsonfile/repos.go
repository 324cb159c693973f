package jsonfile

import (
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"kodbot/internal/domain"
)

// File names inside the data directory. UsersFile keeps the legacy
// {"<user id>": "<lang>"} layout, the registry lives next to it.
const (
	UsersFile    = "users.json"
	RegistryFile = "registry.json"
	StatsFile    = "stats.json"
	LinksFile    = "links.json"
)

// userRecord is the registry.json value, keyed by user id
type userRecord struct {
	Handle    string    `json:"handle,omitempty"`
	FirstSeen time.Time `json:"first_seen"`
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// UserRepo implements repository.UserRepository
type UserRepo struct {
	doc *Document[map[string]userRecord]
}

// NewUserRepo creates a user registry in dir
func NewUserRepo(dir string) *UserRepo {
	return &UserRepo{doc: NewDocument[map[string]userRecord](filepath.Join(dir, RegistryFile))}
}

// EnsureUserExists registers the user, refreshing a changed handle
func (r *UserRepo) EnsureUserExists(userID int64, handle string) error {
	return r.doc.Update(func(users *map[string]userRecord) error {
		if *users == nil {
			*users = make(map[string]userRecord)
		}
		rec, exists := (*users)[key(userID)]
		if !exists {
			rec.FirstSeen = time.Now().UTC()
		}
		if handle != "" {
			rec.Handle = handle
		}
		(*users)[key(userID)] = rec
		return nil
	})
}

// CountUsers returns the number of registered users
func (r *UserRepo) CountUsers() (int, error) {
	users, err := r.doc.Load()
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

// PreferenceRepo implements repository.PreferenceRepository
type PreferenceRepo struct {
	doc *Document[map[string]string]
}

// NewPreferenceRepo creates a language store in dir
func NewPreferenceRepo(dir string) *PreferenceRepo {
	return &PreferenceRepo{doc: NewDocument[map[string]string](filepath.Join(dir, UsersFile))}
}

// GetLanguage returns the stored language tag
func (r *PreferenceRepo) GetLanguage(userID int64) (string, bool, error) {
	langs, err := r.doc.Load()
	if err != nil {
		return "", false, err
	}
	lang, ok := langs[key(userID)]
	return lang, ok, nil
}

// SetLanguage stores the language tag
func (r *PreferenceRepo) SetLanguage(userID int64, lang string) error {
	return r.doc.Update(func(langs *map[string]string) error {
		if *langs == nil {
			*langs = make(map[string]string)
		}
		(*langs)[key(userID)] = lang
		return nil
	})
}

// StatsRepo implements repository.StatsRepository
type StatsRepo struct {
	doc *Document[map[string]int]
}

// NewStatsRepo creates a usage counter store in dir
func NewStatsRepo(dir string) *StatsRepo {
	return &StatsRepo{doc: NewDocument[map[string]int](filepath.Join(dir, StatsFile))}
}

// Increment adds one to the counter of code and returns the new value
func (r *StatsRepo) Increment(code string) (int, error) {
	var count int
	err := r.doc.Update(func(stats *map[string]int) error {
		if *stats == nil {
			*stats = make(map[string]int)
		}
		(*stats)[code]++
		count = (*stats)[code]
		return nil
	})
	return count, err
}

// GetCount returns the counter of code, zero when never delivered
func (r *StatsRepo) GetCount(code string) (int, error) {
	stats, err := r.doc.Load()
	if err != nil {
		return 0, err
	}
	return stats[code], nil
}

// TopCodes returns the most requested codes, ties ordered by code
func (r *StatsRepo) TopCodes(limit int) ([]domain.UsageStat, error) {
	stats, err := r.doc.Load()
	if err != nil {
		return nil, err
	}

	result := make([]domain.UsageStat, 0, len(stats))
	for code, count := range stats {
		result = append(result, domain.UsageStat{Code: code, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Code < result[j].Code
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// CatalogRepo implements repository.CatalogRepository
type CatalogRepo struct {
	doc *Document[map[string]string]
}

// NewCatalogRepo creates a code catalog in dir
func NewCatalogRepo(dir string) *CatalogRepo {
	return &CatalogRepo{doc: NewDocument[map[string]string](filepath.Join(dir, LinksFile))}
}

// GetReference returns the remote reference stored for code
func (r *CatalogRepo) GetReference(code string) (string, bool, error) {
	links, err := r.doc.Load()
	if err != nil {
		return "", false, err
	}
	ref, ok := links[code]
	return ref, ok, nil
}

// AddEntry stores or replaces the reference for code
func (r *CatalogRepo) AddEntry(code, ref string) error {
	return r.doc.Update(func(links *map[string]string) error {
		if *links == nil {
			*links = make(map[string]string)
		}
		(*links)[code] = ref
		return nil
	})
}
