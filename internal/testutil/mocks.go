package testutil

import (
	"context"

	"kodbot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EnsureUserExists(userID int64, handle string) error {
	args := m.Called(userID, handle)
	return args.Error(0)
}

func (m *MockUserRepository) CountUsers() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

// MockPreferenceRepository is a mock for PreferenceRepository
type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) GetLanguage(userID int64) (string, bool, error) {
	args := m.Called(userID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockPreferenceRepository) SetLanguage(userID int64, lang string) error {
	args := m.Called(userID, lang)
	return args.Error(0)
}

// MockStatsRepository is a mock for StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Increment(code string) (int, error) {
	args := m.Called(code)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) GetCount(code string) (int, error) {
	args := m.Called(code)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) TopCodes(limit int) ([]domain.UsageStat, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UsageStat), args.Error(1)
}

// MockCatalogRepository is a mock for CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetReference(code string) (string, bool, error) {
	args := m.Called(code)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCatalogRepository) AddEntry(code, ref string) error {
	args := m.Called(code, ref)
	return args.Error(0)
}

// MockAssetStore is a mock for AssetStore
type MockAssetStore struct {
	mock.Mock
}

func (m *MockAssetStore) Find(code string) (string, bool) {
	args := m.Called(code)
	return args.String(0), args.Bool(1)
}

// MockReferenceResolver is a mock for the remote content host client
type MockReferenceResolver struct {
	mock.Mock
}

func (m *MockReferenceResolver) Resolve(ctx context.Context, ref string) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}

// MockMembershipChecker is a mock for the messaging API membership queries
type MockMembershipChecker struct {
	mock.Mock
}

func (m *MockMembershipChecker) MemberStatus(channel string, userID int64) (string, error) {
	args := m.Called(channel, userID)
	return args.String(0), args.Error(1)
}

func (m *MockMembershipChecker) ChannelUsername(channel string) (string, error) {
	args := m.Called(channel)
	return args.String(0), args.Error(1)
}

// MockMessenger is a mock for the dispatcher's outbound messaging
type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) SendText(chatID int64, text string, kb *domain.Keyboard) (int, error) {
	args := m.Called(chatID, text, kb)
	return args.Int(0), args.Error(1)
}

func (m *MockMessenger) EditText(chatID int64, messageID int, text string, kb *domain.Keyboard) error {
	args := m.Called(chatID, messageID, text, kb)
	return args.Error(0)
}

func (m *MockMessenger) Delete(chatID int64, messageID int) error {
	args := m.Called(chatID, messageID)
	return args.Error(0)
}

func (m *MockMessenger) SendVideo(chatID int64, p domain.Playable) error {
	args := m.Called(chatID, p)
	return args.Error(0)
}

func (m *MockMessenger) NotifyUploading(chatID int64) error {
	args := m.Called(chatID)
	return args.Error(0)
}

// MockPreferences is a mock for the dispatcher's language lookups
type MockPreferences struct {
	mock.Mock
}

func (m *MockPreferences) Language(userID int64) string {
	args := m.Called(userID)
	return args.String(0)
}

func (m *MockPreferences) SetLanguage(userID int64, lang string) error {
	args := m.Called(userID, lang)
	return args.Error(0)
}

// MockGate is a mock for the subscription gate
type MockGate struct {
	mock.Mock
}

func (m *MockGate) IsSubscribed(userID int64) domain.SubscriptionStatus {
	args := m.Called(userID)
	return args.Get(0).(domain.SubscriptionStatus)
}

func (m *MockGate) InviteTargets() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

// MockCatalog is a mock for code resolution
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Resolve(ctx context.Context, code string) domain.Resolution {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.Resolution)
}

// MockUsageRecorder is a mock for delivery counting
type MockUsageRecorder struct {
	mock.Mock
}

func (m *MockUsageRecorder) RecordDelivery(code string) error {
	args := m.Called(code)
	return args.Error(0)
}
