package service

import (
	"fmt"
	"testing"

	"kodbot/internal/i18n"
	"kodbot/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func newUserService(t *testing.T) (*UserService, *testutil.MockUserRepository, *testutil.MockPreferenceRepository) {
	userRepo := new(testutil.MockUserRepository)
	prefRepo := new(testutil.MockPreferenceRepository)
	s := NewUserService(userRepo, prefRepo, testutil.NewTestTexts(t), 1000, testutil.NewTestLogger())
	return s, userRepo, prefRepo
}

func TestUserService_IsAdmin(t *testing.T) {
	s, _, _ := newUserService(t)

	assert.True(t, s.IsAdmin(1000))
	assert.False(t, s.IsAdmin(42))
	assert.Equal(t, int64(1000), s.AdminID())
}

func TestUserService_Language(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		ok       bool
		err      error
		expected string
	}{
		{
			name:     "never seen user gets default",
			ok:       false,
			expected: "uz",
		},
		{
			name:     "stored language",
			stored:   "en",
			ok:       true,
			expected: "en",
		},
		{
			name:     "unsupported stored tag",
			stored:   "de",
			ok:       true,
			expected: "uz",
		},
		{
			name:     "storage error",
			err:      fmt.Errorf("disk error"),
			expected: "uz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, prefRepo := newUserService(t)
			prefRepo.On("GetLanguage", int64(42)).Return(tt.stored, tt.ok, tt.err)

			assert.Equal(t, tt.expected, s.Language(42))
			prefRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_SetLanguage(t *testing.T) {
	s, _, prefRepo := newUserService(t)
	prefRepo.On("SetLanguage", int64(42), "en").Return(nil)

	assert.NoError(t, s.SetLanguage(42, "en"))
	prefRepo.AssertExpectations(t)
}

func TestUserService_SetLanguageUnsupported(t *testing.T) {
	s, _, prefRepo := newUserService(t)

	err := s.SetLanguage(42, "de")

	assert.ErrorIs(t, err, i18n.ErrUnsupportedLanguage)
	prefRepo.AssertNotCalled(t, "SetLanguage")
}

func TestUserService_EnsureUser(t *testing.T) {
	s, userRepo, _ := newUserService(t)
	userRepo.On("EnsureUserExists", int64(42), "alice").Return(nil)
	userRepo.On("CountUsers").Return(1, nil)

	assert.NoError(t, s.EnsureUser(42, "alice"))
	count, err := s.CountUsers()
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	userRepo.AssertExpectations(t)
}
