package dispatcher

import (
	"errors"

	"kodbot/internal/domain"
	"kodbot/internal/state"

	"go.uber.org/zap"
)

// Presenter keeps at most one visible bot message per user by editing or
// replacing the previous one. Edit and delete failures never block the send.
type Presenter struct {
	messenger Messenger
	states    state.Store
	logger    *zap.Logger
}

// NewPresenter creates a presenter
func NewPresenter(messenger Messenger, states state.Store, logger *zap.Logger) *Presenter {
	return &Presenter{
		messenger: messenger,
		states:    states,
		logger:    logger,
	}
}

// Present shows text to userID and records the resulting message id
func (p *Presenter) Present(userID int64, text string, opts domain.Presentation) error {
	prev := p.states.Get(userID).MessageID

	if prev != 0 {
		if opts.InPlace {
			err := p.messenger.EditText(userID, prev, text, opts.Keyboard)
			if err == nil || errors.Is(err, domain.ErrMessageNotModified) {
				return nil
			}
			p.logger.Debug("Failed to edit message, sending new",
				zap.Int64("user_id", userID),
				zap.Int("message_id", prev),
				zap.Error(err),
			)
		}

		if err := p.messenger.Delete(userID, prev); err != nil {
			p.logger.Debug("Failed to delete previous message",
				zap.Int64("user_id", userID),
				zap.Int("message_id", prev),
				zap.Error(err),
			)
		}
	}

	id, err := p.messenger.SendText(userID, text, opts.Keyboard)
	p.record(userID, id, err)
	if err != nil {
		p.logger.Warn("Failed to send message", zap.Int64("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

// record stores the new message id; a failed send leaves nothing to replace
func (p *Presenter) record(userID int64, id int, err error) {
	current := p.states.Get(userID)
	if err != nil {
		id = 0
	}
	current.MessageID = id
	p.states.Set(userID, current)
}
