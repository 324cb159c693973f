package handler

import (
	"strings"
	"unicode"

	"kodbot/internal/dispatcher"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// callbackKey picks the routing key of a callback: Unique for telebot
// buttons, raw data otherwise
func callbackKey(cb *tele.Callback) string {
	if cb.Unique != "" {
		return cleanCallbackData(cb.Unique)
	}
	return cleanCallbackData(cb.Data)
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := callbackKey(callback)
	userID := c.Sender().ID
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.Int64("user_id", userID),
	)

	// Acknowledge first so the client stops the spinner even if the answer fails
	if err := c.Respond(); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}

	switch data {
	case dispatcher.CallbackStart:
		return h.dispatcher.ShowWelcome(userID, true)
	case dispatcher.CallbackLanguage:
		return h.dispatcher.ShowLanguageMenu(userID, true)
	case dispatcher.CallbackHelp:
		return h.dispatcher.ShowHelp(userID, true)
	case dispatcher.CallbackAdmin:
		return h.dispatcher.ShowAdminContact(userID, true)
	case dispatcher.CallbackCode:
		return h.dispatcher.PromptCode(userID, true)
	case dispatcher.CallbackPrivacy:
		return h.dispatcher.ShowPrivacy(userID, true)
	case dispatcher.CallbackFeedback:
		return h.dispatcher.HandleFeedbackIntent(userID)
	}

	if lang, ok := dispatcher.ParseLanguageCallback(data); ok {
		return h.dispatcher.ChangeLanguage(userID, lang, true)
	}

	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return nil
}
