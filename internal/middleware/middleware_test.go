package middleware

import (
	"fmt"
	"testing"

	"kodbot/internal/service"
	"kodbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

func newContext(t *testing.T, sender *tele.User, chatType tele.ChatType) tele.Context {
	t.Helper()
	bot, err := tele.NewBot(tele.Settings{Token: "test-token", Offline: true})
	require.NoError(t, err)

	return bot.NewContext(tele.Update{
		Message: &tele.Message{
			Sender: sender,
			Chat:   &tele.Chat{ID: sender.ID, Type: chatType},
			Text:   "/stats",
		},
	})
}

func newUserService(t *testing.T, repo *testutil.MockUserRepository) *service.UserService {
	return service.NewUserService(repo, new(testutil.MockPreferenceRepository),
		testutil.NewTestTexts(t), 1000, testutil.NewTestLogger())
}

func TestRecover(t *testing.T) {
	h := Recover(testutil.NewTestLogger())(func(c tele.Context) error {
		panic("boom")
	})

	assert.NotPanics(t, func() {
		assert.NoError(t, h(nil))
	})
}

func TestRecover_PassesError(t *testing.T) {
	h := Recover(testutil.NewTestLogger())(func(c tele.Context) error {
		return fmt.Errorf("plain error")
	})

	assert.EqualError(t, h(nil), "plain error")
}

func TestPrivateOnly(t *testing.T) {
	tests := []struct {
		name     string
		sender   *tele.User
		chatType tele.ChatType
		called   bool
	}{
		{name: "private user", sender: &tele.User{ID: 1}, chatType: tele.ChatPrivate, called: true},
		{name: "group chat", sender: &tele.User{ID: 1}, chatType: tele.ChatGroup, called: false},
		{name: "bot sender", sender: &tele.User{ID: 1, IsBot: true}, chatType: tele.ChatPrivate, called: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := PrivateOnly()(func(c tele.Context) error {
				called = true
				return nil
			})

			assert.NoError(t, h(newContext(t, tt.sender, tt.chatType)))
			assert.Equal(t, tt.called, called)
		})
	}
}

func TestRegisterUser(t *testing.T) {
	repo := new(testutil.MockUserRepository)
	repo.On("EnsureUserExists", int64(42), "alice").Return(fmt.Errorf("disk full"))

	called := false
	h := RegisterUser(newUserService(t, repo), testutil.NewTestLogger())(func(c tele.Context) error {
		called = true
		return nil
	})

	assert.NoError(t, h(newContext(t, &tele.User{ID: 42, Username: "alice"}, tele.ChatPrivate)))
	assert.True(t, called, "registry failure must not block the handler")
	repo.AssertExpectations(t)
}

func TestAdminOnly(t *testing.T) {
	tests := []struct {
		name   string
		userID int64
		called bool
	}{
		{name: "admin", userID: 1000, called: true},
		{name: "regular user", userID: 42, called: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := AdminOnly(newUserService(t, new(testutil.MockUserRepository)), testutil.NewTestLogger())(
				func(c tele.Context) error {
					called = true
					return nil
				})

			assert.NoError(t, h(newContext(t, &tele.User{ID: tt.userID}, tele.ChatPrivate)))
			assert.Equal(t, tt.called, called)
		})
	}
}
