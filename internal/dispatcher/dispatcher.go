// Package dispatcher decides how every inbound message is answered.
//
// Priority for free text is fixed: a pending feedback session consumes the
// message, then the subscription gate, then code resolution, then the
// "not found" reply. Each call produces one response cycle and holds the
// user's state lock for its whole duration.
package dispatcher

import (
	"context"
	"fmt"
	"math/rand"

	"kodbot/internal/domain"
	"kodbot/internal/i18n"
	"kodbot/internal/state"

	"go.uber.org/zap"
)

// Messenger sends, edits and deletes bot messages in a private chat
type Messenger interface {
	SendText(chatID int64, text string, kb *domain.Keyboard) (int, error)
	EditText(chatID int64, messageID int, text string, kb *domain.Keyboard) error
	Delete(chatID int64, messageID int) error
	SendVideo(chatID int64, p domain.Playable) error
	NotifyUploading(chatID int64) error
}

// Preferences reads and writes user's language
type Preferences interface {
	Language(userID int64) string
	SetLanguage(userID int64, lang string) error
}

// Gate is the channel subscription check
type Gate interface {
	IsSubscribed(userID int64) domain.SubscriptionStatus
	InviteTargets() []string
}

// Catalog resolves codes
type Catalog interface {
	Resolve(ctx context.Context, code string) domain.Resolution
}

// UsageRecorder counts successful deliveries
type UsageRecorder interface {
	RecordDelivery(code string) error
}

// Config holds dispatcher settings
type Config struct {
	AdminID  int64
	AdminURL string
}

// Dispatcher routes inbound events to exactly one response
type Dispatcher struct {
	messenger Messenger
	prefs     Preferences
	gate      Gate
	catalog   Catalog
	usage     UsageRecorder
	states    state.Store
	texts     *i18n.Provider
	presenter *Presenter
	cfg       Config
	logger    *zap.Logger

	// pick returns an index in [0, n)
	pick func(n int) int
}

// New creates a dispatcher
func New(
	messenger Messenger,
	prefs Preferences,
	gate Gate,
	catalog Catalog,
	usage UsageRecorder,
	states state.Store,
	texts *i18n.Provider,
	cfg Config,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		messenger: messenger,
		prefs:     prefs,
		gate:      gate,
		catalog:   catalog,
		usage:     usage,
		states:    states,
		texts:     texts,
		presenter: NewPresenter(messenger, states, logger),
		cfg:       cfg,
		logger:    logger,
		pick:      rand.Intn,
	}
}

// HandleInboundText answers one free-text message
func (d *Dispatcher) HandleInboundText(ctx context.Context, userID int64, handle, text string) error {
	unlock := d.states.Lock(userID)
	defer unlock()

	current := d.states.Get(userID)
	if current.State == domain.StateAwaitingFeedback {
		return d.consumeFeedback(userID, handle, text, current)
	}

	s := d.locale(userID)

	if d.gate.IsSubscribed(userID) != domain.Subscribed {
		d.logger.Debug("User not subscribed", zap.Int64("user_id", userID))
		return d.presenter.Present(userID, s.SubscribeFirst, domain.Presentation{
			Keyboard: subscriptionKeyboard(s, d.gate.InviteTargets()),
		})
	}

	res := d.catalog.Resolve(ctx, text)
	if !res.Found {
		return d.presenter.Present(userID, s.VideoNotFound, domain.Presentation{})
	}

	return d.deliver(userID, res, s)
}

// HandleFeedbackIntent starts or restarts a feedback session
func (d *Dispatcher) HandleFeedbackIntent(userID int64) error {
	unlock := d.states.Lock(userID)
	defer unlock()

	current := d.states.Get(userID)
	current.State = domain.StateAwaitingFeedback
	d.states.Set(userID, current)

	d.logger.Info("Feedback session started", zap.Int64("user_id", userID))
	return d.presenter.Present(userID, d.locale(userID).FeedbackPrompt, domain.Presentation{})
}

// consumeFeedback forwards text to the admin and acknowledges it.
// The state returns to normal even if forwarding fails.
func (d *Dispatcher) consumeFeedback(userID int64, handle, text string, current domain.StateData) error {
	next := current
	next.State = domain.StateNormal
	if !d.states.CompareAndSwap(userID, current, next) {
		d.logger.Warn("Feedback state changed concurrently", zap.Int64("user_id", userID))
		d.states.Set(userID, next)
	}

	if _, err := d.messenger.SendText(d.cfg.AdminID, formatFeedback(userID, handle, text), nil); err != nil {
		d.logger.Warn("Failed to forward feedback",
			zap.Int64("user_id", userID),
			zap.Int64("admin_id", d.cfg.AdminID),
			zap.Error(err),
		)
	} else {
		d.logger.Info("Feedback forwarded", zap.Int64("user_id", userID))
	}

	return d.presenter.Present(userID, d.locale(userID).FeedbackThanks, domain.Presentation{})
}

// deliver sends the video, counts it and follows up with a joke
func (d *Dispatcher) deliver(userID int64, res domain.Resolution, s *i18n.Strings) error {
	if err := d.messenger.NotifyUploading(userID); err != nil {
		d.logger.Debug("Failed to send chat action", zap.Int64("user_id", userID), zap.Error(err))
	}

	if err := d.messenger.SendVideo(userID, res.Playable); err != nil {
		d.logger.Warn("Failed to send video",
			zap.Int64("user_id", userID),
			zap.String("code", res.Code),
			zap.Bool("local", res.Playable.IsLocal()),
			zap.Error(err),
		)
		return d.presenter.Present(userID, s.VideoNotFound, domain.Presentation{})
	}

	// Counter failures are logged by the recorder and never reach the user
	_ = d.usage.RecordDelivery(res.Code)

	d.logger.Info("Video delivered",
		zap.Int64("user_id", userID),
		zap.String("code", res.Code),
		zap.Bool("local", res.Playable.IsLocal()),
	)

	if len(s.Jokes) == 0 {
		return nil
	}
	return d.presenter.Present(userID, s.Jokes[d.pick(len(s.Jokes))], domain.Presentation{})
}

func (d *Dispatcher) locale(userID int64) *i18n.Strings {
	return d.texts.Get(d.prefs.Language(userID))
}

func formatFeedback(userID int64, handle, text string) string {
	who := "-"
	if handle != "" {
		who = "@" + handle
	}
	return fmt.Sprintf("📝 Feedback\n🆔 %d\n👤 %s\n\n%s", userID, who, text)
}
