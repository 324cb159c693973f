package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateData_Normalized(t *testing.T) {
	tests := []struct {
		name     string
		input    StateData
		expected ConversationState
	}{
		{
			name:     "zero value",
			input:    StateData{},
			expected: StateNormal,
		},
		{
			name:     "awaiting feedback kept",
			input:    StateData{State: StateAwaitingFeedback, MessageID: 3},
			expected: StateAwaitingFeedback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.input.Normalized()
			assert.Equal(t, tt.expected, result.State)
			assert.Equal(t, tt.input.MessageID, result.MessageID)
		})
	}
}

func TestCodeEntry_Constructors(t *testing.T) {
	local := LocalAsset("101", "static/videos/101.mp4")
	assert.Equal(t, EntryLocal, local.Kind)
	assert.Equal(t, "static/videos/101.mp4", local.Path)
	assert.Empty(t, local.Reference)

	remote := RemoteReference("202", "https://host/s/abc")
	assert.Equal(t, EntryRemote, remote.Kind)
	assert.Equal(t, "https://host/s/abc", remote.Reference)
	assert.Empty(t, remote.Path)
}

func TestResolution(t *testing.T) {
	nf := NotFound("x")
	assert.False(t, nf.Found)
	assert.Equal(t, "x", nf.Code)

	f := Found("y", Playable{URL: "https://cdn/y.mp4"})
	assert.True(t, f.Found)
	assert.False(t, f.Playable.IsLocal())
	assert.True(t, Playable{Path: "a.mp4"}.IsLocal())
}

func TestKeyboard_Row(t *testing.T) {
	kb := &Keyboard{}
	kb.Row(Button{Text: "a", Data: "a"}, Button{Text: "b", Data: "b"}).
		Row(Button{Text: "c", URL: "https://t.me/c"})

	assert.Len(t, kb.Rows, 2)
	assert.Len(t, kb.Rows[0], 2)
	assert.Equal(t, "https://t.me/c", kb.Rows[1][0].URL)
}
