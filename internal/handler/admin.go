package handler

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const topLimit = 10

// handleStats shows usage counters to the admin
func (h *Handler) handleStats(c tele.Context) error {
	text, err := h.statsReport()
	if err != nil {
		h.logger.Error("Failed to build stats report", zap.Error(err))
		return c.Send("Failed to load stats")
	}
	return c.Send(text)
}

func (h *Handler) statsReport() (string, error) {
	users, err := h.userService.CountUsers()
	if err != nil {
		return "", err
	}
	top, err := h.statsService.Top(topLimit)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👥 Users: %d\n", users)
	if len(top) == 0 {
		b.WriteString("📊 No deliveries yet")
		return b.String(), nil
	}
	b.WriteString("📊 Top codes:\n")
	for i, s := range top {
		fmt.Fprintf(&b, "%d. %s: %d\n", i+1, s.Code, s.Count)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// handleAddCode appends a remote catalog entry: /addcode <code> <reference>
func (h *Handler) handleAddCode(c tele.Context) error {
	args := c.Args()
	if len(args) != 2 {
		return c.Send("Usage: /addcode <code> <reference>")
	}

	code, ref := args[0], args[1]
	if err := h.catalogService.AddEntry(code, ref); err != nil {
		h.logger.Error("Failed to add catalog entry", zap.String("code", code), zap.Error(err))
		return c.Send("Failed to add code")
	}

	h.logger.Info("Catalog entry added", zap.String("code", code), zap.Int64("admin_id", c.Sender().ID))
	return c.Send(fmt.Sprintf("✅ Code %s added", code))
}
