// Package telegram adapts telebot to the dispatcher and the subscription gate.
package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"kodbot/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// chatTTL bounds how long a resolved channel is reused
const chatTTL = 10 * time.Minute

// Messenger implements dispatcher.Messenger and service.MembershipChecker
type Messenger struct {
	bot   *tele.Bot
	chats *chatCache
}

// NewMessenger wraps bot
func NewMessenger(bot *tele.Bot) *Messenger {
	return &Messenger{bot: bot, chats: newChatCache()}
}

// SendText sends a text message and returns its id
func (m *Messenger) SendText(chatID int64, text string, kb *domain.Keyboard) (int, error) {
	msg, err := m.bot.Send(tele.ChatID(chatID), text, options(kb)...)
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// EditText replaces the text and keyboard of a sent message
func (m *Messenger) EditText(chatID int64, messageID int, text string, kb *domain.Keyboard) error {
	_, err := m.bot.Edit(stored(chatID, messageID), text, options(kb)...)
	return mapError(err)
}

// Delete removes a sent message
func (m *Messenger) Delete(chatID int64, messageID int) error {
	return m.bot.Delete(stored(chatID, messageID))
}

// SendVideo uploads a local file or lets Telegram fetch a URL
func (m *Messenger) SendVideo(chatID int64, p domain.Playable) error {
	var file tele.File
	switch {
	case p.Path != "":
		file = tele.FromDisk(p.Path)
	case p.URL != "":
		file = tele.FromURL(p.URL)
	default:
		return fmt.Errorf("empty playable")
	}

	_, err := m.bot.Send(tele.ChatID(chatID), &tele.Video{File: file, Streaming: true})
	return err
}

// NotifyUploading shows the "sending video" chat action
func (m *Messenger) NotifyUploading(chatID int64) error {
	return m.bot.Notify(tele.ChatID(chatID), tele.UploadingVideo)
}

// MemberStatus returns the membership status of userID in channel
func (m *Messenger) MemberStatus(channel string, userID int64) (string, error) {
	chat, err := m.chat(channel)
	if err != nil {
		return "", err
	}

	member, err := m.bot.ChatMemberOf(chat, &tele.User{ID: userID})
	if err != nil {
		return "", fmt.Errorf("failed to get member of %s: %w", channel, err)
	}
	return string(member.Role), nil
}

// ChannelUsername returns the public username of channel, empty for private channels
func (m *Messenger) ChannelUsername(channel string) (string, error) {
	chat, err := m.chat(channel)
	if err != nil {
		return "", err
	}
	return chat.Username, nil
}

func (m *Messenger) chat(channel string) (*tele.Chat, error) {
	if chat, ok := m.chats.Get(channel); ok {
		return chat, nil
	}

	chat, err := m.bot.ChatByUsername(channel)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat %s: %w", channel, err)
	}
	m.chats.Put(channel, chat, chatTTL)
	return chat, nil
}

func stored(chatID int64, messageID int) *tele.StoredMessage {
	return &tele.StoredMessage{ChatID: chatID, MessageID: strconv.Itoa(messageID)}
}

// mapError turns telebot's "not modified" into the domain error
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "message is not modified") {
		return domain.ErrMessageNotModified
	}
	return err
}

func options(kb *domain.Keyboard) []interface{} {
	if markup := Markup(kb); markup != nil {
		return []interface{}{markup}
	}
	return nil
}

// Markup converts a keyboard into inline reply markup. Buttons carry raw
// callback data without a telebot unique prefix.
func Markup(kb *domain.Keyboard) *tele.ReplyMarkup {
	if kb == nil || len(kb.Rows) == 0 {
		return nil
	}

	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(kb.Rows))
	for _, r := range kb.Rows {
		row := make(tele.Row, 0, len(r))
		for _, b := range r {
			if b.URL != "" {
				row = append(row, markup.URL(b.Text, b.URL))
				continue
			}
			row = append(row, tele.Btn{Text: b.Text, Data: b.Data})
		}
		rows = append(rows, row)
	}
	markup.Inline(rows...)
	return markup
}
