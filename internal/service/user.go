package service

import (
	"fmt"

	"kodbot/internal/i18n"
	"kodbot/internal/repository"

	"go.uber.org/zap"
)

// UserService handles user registry, language preference and the admin identity
type UserService struct {
	userRepo repository.UserRepository
	prefRepo repository.PreferenceRepository
	texts    *i18n.Provider
	adminID  int64
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repository.UserRepository,
	prefRepo repository.PreferenceRepository,
	texts *i18n.Provider,
	adminID int64,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		prefRepo: prefRepo,
		texts:    texts,
		adminID:  adminID,
		logger:   logger,
	}
}

// IsAdmin checks the static administrator identity
func (s *UserService) IsAdmin(userID int64) bool {
	return userID == s.adminID
}

// AdminID returns the administrator user id
func (s *UserService) AdminID() int64 {
	return s.adminID
}

// EnsureUser creates user record if doesn't exist
func (s *UserService) EnsureUser(userID int64, handle string) error {
	return s.userRepo.EnsureUserExists(userID, handle)
}

// CountUsers returns the number of registered users
func (s *UserService) CountUsers() (int, error) {
	return s.userRepo.CountUsers()
}

// Language returns user's language tag. Unknown users, unsupported stored
// tags and storage errors all yield the default tag.
func (s *UserService) Language(userID int64) string {
	lang, ok, err := s.prefRepo.GetLanguage(userID)
	if err != nil {
		s.logger.Warn("Failed to read language, using default",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return s.texts.Default()
	}
	if !ok || !s.texts.IsSupported(lang) {
		return s.texts.Default()
	}
	return lang
}

// SetLanguage stores user's language tag
func (s *UserService) SetLanguage(userID int64, lang string) error {
	if !s.texts.IsSupported(lang) {
		return fmt.Errorf("%w: %q", i18n.ErrUnsupportedLanguage, lang)
	}
	return s.prefRepo.SetLanguage(userID, lang)
}
