package service

import (
	"strings"

	"kodbot/internal/domain"

	"go.uber.org/zap"
)

// Member statuses that mean the user is not in the channel
const (
	StatusLeft   = "left"
	StatusKicked = "kicked"
)

// MembershipChecker queries the messaging API
type MembershipChecker interface {
	MemberStatus(channel string, userID int64) (string, error)
	ChannelUsername(channel string) (string, error)
}

// SubscriptionService checks membership in the required channels
type SubscriptionService struct {
	checker  MembershipChecker
	channels []string
	logger   *zap.Logger
}

// NewSubscriptionService creates a new subscription gate. Blank channels are dropped.
func NewSubscriptionService(checker MembershipChecker, channels []string, logger *zap.Logger) *SubscriptionService {
	cleaned := make([]string, 0, len(channels))
	for _, ch := range channels {
		if ch = strings.TrimSpace(ch); ch != "" {
			cleaned = append(cleaned, ch)
		}
	}
	return &SubscriptionService{
		checker:  checker,
		channels: cleaned,
		logger:   logger,
	}
}

// Channels returns the required channels
func (s *SubscriptionService) Channels() []string {
	return append([]string(nil), s.channels...)
}

// IsSubscribed reports whether userID is a member of every required channel.
// An API error on any channel fails closed.
func (s *SubscriptionService) IsSubscribed(userID int64) domain.SubscriptionStatus {
	for _, ch := range s.channels {
		status, err := s.checker.MemberStatus(ch, userID)
		if err != nil {
			s.logger.Warn("Failed to check channel membership",
				zap.String("channel", ch),
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return domain.NotSubscribed
		}
		if status == StatusLeft || status == StatusKicked {
			return domain.NotSubscribed
		}
	}
	return domain.Subscribed
}

// InviteTargets returns invite links for the required channels,
// skipping channels whose username cannot be resolved
func (s *SubscriptionService) InviteTargets() []string {
	links := make([]string, 0, len(s.channels))
	for _, ch := range s.channels {
		username, err := s.checker.ChannelUsername(ch)
		if err != nil {
			s.logger.Warn("Failed to resolve channel username", zap.String("channel", ch), zap.Error(err))
			continue
		}
		if username = strings.TrimPrefix(strings.TrimSpace(username), "@"); username == "" {
			continue
		}
		links = append(links, "https://t.me/"+username)
	}
	return links
}
