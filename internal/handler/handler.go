package handler

import (
	"context"

	"kodbot/internal/middleware"
	"kodbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Dispatcher is what the handlers drive
type Dispatcher interface {
	HandleInboundText(ctx context.Context, userID int64, handle, text string) error
	HandleFeedbackIntent(userID int64) error
	ShowWelcome(userID int64, inPlace bool) error
	ShowLanguageMenu(userID int64, inPlace bool) error
	ChangeLanguage(userID int64, lang string, inPlace bool) error
	ShowHelp(userID int64, inPlace bool) error
	ShowPrivacy(userID int64, inPlace bool) error
	ShowAdminContact(userID int64, inPlace bool) error
	PromptCode(userID int64, inPlace bool) error
}

// Handler manages all bot interactions
type Handler struct {
	bot            *tele.Bot
	dispatcher     Dispatcher
	userService    *service.UserService
	statsService   *service.StatsService
	catalogService *service.CatalogService
	logger         *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	d Dispatcher,
	userService *service.UserService,
	statsService *service.StatsService,
	catalogService *service.CatalogService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:            bot,
		dispatcher:     d,
		userService:    userService,
		statsService:   statsService,
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Use(
		middleware.Recover(h.logger),
		middleware.PrivateOnly(),
		middleware.RegisterUser(h.userService, h.logger),
	)

	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/til", h.handleLanguage)
	h.bot.Handle("/lang", h.handleLanguage)
	h.bot.Handle("/help", h.handleHelp)
	h.bot.Handle("/privacy", h.handlePrivacy)
	h.bot.Handle("/code", h.handleCode)
	h.bot.Handle("/feedback", h.handleFeedback)
	h.bot.Handle("/taklif", h.handleFeedback)

	// Admin commands
	admin := h.bot.Group()
	admin.Use(middleware.AdminOnly(h.userService, h.logger))
	admin.Handle("/stats", h.handleStats)
	admin.Handle("/addcode", h.handleAddCode)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// handleText routes free text through the dispatcher
func (h *Handler) handleText(c tele.Context) error {
	sender := c.Sender()
	return h.dispatcher.HandleInboundText(context.Background(), sender.ID, sender.Username, c.Text())
}

func (h *Handler) handleStart(c tele.Context) error {
	h.logger.Info("User started bot",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("username", c.Sender().Username),
	)
	return h.dispatcher.ShowWelcome(c.Sender().ID, false)
}

func (h *Handler) handleLanguage(c tele.Context) error {
	return h.dispatcher.ShowLanguageMenu(c.Sender().ID, false)
}

func (h *Handler) handleHelp(c tele.Context) error {
	return h.dispatcher.ShowHelp(c.Sender().ID, false)
}

func (h *Handler) handlePrivacy(c tele.Context) error {
	return h.dispatcher.ShowPrivacy(c.Sender().ID, false)
}

func (h *Handler) handleCode(c tele.Context) error {
	return h.dispatcher.PromptCode(c.Sender().ID, false)
}

func (h *Handler) handleFeedback(c tele.Context) error {
	return h.dispatcher.HandleFeedbackIntent(c.Sender().ID)
}
