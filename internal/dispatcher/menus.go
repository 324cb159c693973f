package dispatcher

import (
	"strings"

	"kodbot/internal/domain"
	"kodbot/internal/i18n"

	"go.uber.org/zap"
)

// Callback data of the inline buttons
const (
	CallbackStart      = "start"
	CallbackLanguage   = "language"
	CallbackHelp       = "help"
	CallbackAdmin      = "admin"
	CallbackCode       = "code"
	CallbackFeedback   = "feedback"
	CallbackPrivacy    = "privacy"
	CallbackLangPrefix = "lang_"
)

// ShowWelcome sends the welcome text with the main keyboard and cancels a pending feedback session
func (d *Dispatcher) ShowWelcome(userID int64, inPlace bool) error {
	unlock := d.states.Lock(userID)
	defer unlock()

	current := d.states.Get(userID)
	current.State = domain.StateNormal
	d.states.Set(userID, current)

	s := d.locale(userID)
	return d.presenter.Present(userID, s.Welcome, domain.Presentation{
		Keyboard: mainKeyboard(s),
		InPlace:  inPlace,
	})
}

// ShowLanguageMenu sends the language picker
func (d *Dispatcher) ShowLanguageMenu(userID int64, inPlace bool) error {
	return d.show(userID, inPlace, func(s *i18n.Strings) (string, *domain.Keyboard) {
		return s.ChooseLanguage, d.languageKeyboard()
	})
}

// ChangeLanguage stores the chosen language and confirms it in that language
func (d *Dispatcher) ChangeLanguage(userID int64, lang string, inPlace bool) error {
	unlock := d.states.Lock(userID)
	defer unlock()

	if err := d.prefs.SetLanguage(userID, lang); err != nil {
		d.logger.Warn("Failed to change language",
			zap.Int64("user_id", userID),
			zap.String("language", lang),
			zap.Error(err),
		)
		s := d.locale(userID)
		return d.presenter.Present(userID, s.ChooseLanguage, domain.Presentation{
			Keyboard: d.languageKeyboard(),
			InPlace:  inPlace,
		})
	}

	d.logger.Info("Language changed", zap.Int64("user_id", userID), zap.String("language", lang))

	s := d.texts.Get(lang)
	return d.presenter.Present(userID, s.LanguageChanged, domain.Presentation{
		Keyboard: mainKeyboard(s),
		InPlace:  inPlace,
	})
}

// ShowHelp sends the help text
func (d *Dispatcher) ShowHelp(userID int64, inPlace bool) error {
	return d.show(userID, inPlace, func(s *i18n.Strings) (string, *domain.Keyboard) {
		return s.HelpText, backKeyboard(s)
	})
}

// ShowPrivacy sends the privacy text
func (d *Dispatcher) ShowPrivacy(userID int64, inPlace bool) error {
	return d.show(userID, inPlace, func(s *i18n.Strings) (string, *domain.Keyboard) {
		return s.PrivacyText, backKeyboard(s)
	})
}

// ShowAdminContact sends the admin contact link
func (d *Dispatcher) ShowAdminContact(userID int64, inPlace bool) error {
	return d.show(userID, inPlace, func(s *i18n.Strings) (string, *domain.Keyboard) {
		kb := &domain.Keyboard{}
		kb.Row(domain.Button{Text: s.AdminLink, URL: d.cfg.AdminURL})
		kb.Row(domain.Button{Text: s.Start, Data: CallbackStart})
		return s.AdminContact, kb
	})
}

// PromptCode asks for a video code
func (d *Dispatcher) PromptCode(userID int64, inPlace bool) error {
	return d.show(userID, inPlace, func(s *i18n.Strings) (string, *domain.Keyboard) {
		return s.EnterCode, nil
	})
}

func (d *Dispatcher) show(userID int64, inPlace bool, build func(s *i18n.Strings) (string, *domain.Keyboard)) error {
	unlock := d.states.Lock(userID)
	defer unlock()

	text, kb := build(d.locale(userID))
	return d.presenter.Present(userID, text, domain.Presentation{Keyboard: kb, InPlace: inPlace})
}

// ParseLanguageCallback extracts the tag from "lang_<tag>" data
func ParseLanguageCallback(data string) (string, bool) {
	if !strings.HasPrefix(data, CallbackLangPrefix) {
		return "", false
	}
	tag := strings.TrimPrefix(data, CallbackLangPrefix)
	return tag, tag != ""
}

func mainKeyboard(s *i18n.Strings) *domain.Keyboard {
	kb := &domain.Keyboard{}
	kb.Row(
		domain.Button{Text: s.Start, Data: CallbackStart},
		domain.Button{Text: s.Language, Data: CallbackLanguage},
	).Row(
		domain.Button{Text: s.Help, Data: CallbackHelp},
		domain.Button{Text: s.Admin, Data: CallbackAdmin},
	).Row(
		domain.Button{Text: s.Code, Data: CallbackCode},
	).Row(
		domain.Button{Text: s.Feedback, Data: CallbackFeedback},
		domain.Button{Text: s.Privacy, Data: CallbackPrivacy},
	)
	return kb
}

func backKeyboard(s *i18n.Strings) *domain.Keyboard {
	kb := &domain.Keyboard{}
	kb.Row(domain.Button{Text: s.Start, Data: CallbackStart})
	return kb
}

func (d *Dispatcher) languageKeyboard() *domain.Keyboard {
	row := make([]domain.Button, 0, len(d.texts.Supported()))
	for _, tag := range d.texts.Supported() {
		row = append(row, domain.Button{Text: d.texts.Get(tag).Name, Data: CallbackLangPrefix + tag})
	}
	kb := &domain.Keyboard{}
	kb.Row(row...)
	return kb
}

// subscriptionKeyboard has one button per resolvable channel
func subscriptionKeyboard(s *i18n.Strings, links []string) *domain.Keyboard {
	if len(links) == 0 {
		return nil
	}
	kb := &domain.Keyboard{}
	for _, link := range links {
		kb.Row(domain.Button{Text: s.Subscribe, URL: link})
	}
	return kb
}
