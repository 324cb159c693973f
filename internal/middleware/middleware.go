package middleware

import (
	"runtime/debug"

	"kodbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Recover stops a panicking handler from taking the bot down
func Recover(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Panic in handler",
						zap.Any("panic", r),
						zap.ByteString("stack", debug.Stack()),
					)
					err = nil
				}
			}()
			return next(c)
		}
	}
}

// PrivateOnly drops updates that do not come from a user in a private chat
func PrivateOnly() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil || c.Sender().IsBot {
				return nil
			}
			if chat := c.Chat(); chat != nil && chat.Type != tele.ChatPrivate {
				return nil
			}
			return next(c)
		}
	}
}

// RegisterUser records every sender in the user registry
func RegisterUser(userService *service.UserService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()

			// Registry failures never block the answer
			if err := userService.EnsureUser(sender.ID, sender.Username); err != nil {
				logger.Error("Failed to ensure user exists in middleware",
					zap.Int64("user_id", sender.ID),
					zap.Error(err),
				)
			}

			return next(c)
		}
	}
}

// AdminOnly lets only the static administrator through
func AdminOnly(userService *service.UserService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if !userService.IsAdmin(c.Sender().ID) {
				logger.Warn("Admin command from non-admin",
					zap.Int64("user_id", c.Sender().ID),
					zap.String("text", c.Text()),
				)
				return nil
			}
			return next(c)
		}
	}
}
