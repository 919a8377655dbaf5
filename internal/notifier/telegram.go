// Package notifier posts alerts about suspicious device content to Telegram chats.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/RanaNomiRana/backend-afa/internal/config"
	"github.com/RanaNomiRana/backend-afa/internal/models"
)

// Sender is the subset of the Telegram bot API the notifier uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram sends suspicious-ingestion summaries to a fixed set of chats.
type Telegram struct {
	sender  Sender
	chatIDs []int64
	logger  *zap.Logger
}

// NewTelegram returns nil when the notifier is disabled or has no token.
func NewTelegram(cfg *config.Config, logger *zap.Logger) (*Telegram, error) {
	if !cfg.Notifier.Enabled || cfg.Notifier.TelegramBotToken == "" {
		logger.Info("Telegram notifier is disabled (notifier.enabled=false or token is empty)")
		return nil, nil
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Notifier.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram notifier authorized", zap.String("username", botAPI.Self.UserName))
	return NewTelegramWithSender(botAPI, cfg.Notifier.ChatIDs, logger), nil
}

func NewTelegramWithSender(sender Sender, chatIDs []int64, logger *zap.Logger) *Telegram {
	return &Telegram{sender: sender, chatIDs: chatIDs, logger: logger}
}

// NotifySuspicious posts one summary per configured chat. Every chat is attempted.
func (t *Telegram) NotifySuspicious(ctx context.Context, deviceName string, stats models.MessageStats) error {
	if t == nil {
		return nil
	}

	text := FormatSummary(deviceName, stats)
	var errs []error
	for _, chatID := range t.chatIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg := tgbotapi.NewMessage(chatID, text)
		if _, err := t.sender.Send(msg); err != nil {
			t.logger.Error("Failed to send Telegram alert", zap.Int64("chat_id", chatID), zap.Error(err))
			errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
			continue
		}
		t.logger.Debug("Telegram alert sent", zap.Int64("chat_id", chatID))
	}
	return errors.Join(errs...)
}

// FormatSummary renders the alert text for one ingestion.
func FormatSummary(deviceName string, stats models.MessageStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ Suspicious messages on %s\n", deviceName)
	fmt.Fprintf(&b, "%d of %d messages flagged\n", stats.SuspiciousMessages, stats.TotalMessages)

	lines := []struct {
		name  string
		count int
	}{
		{"fraud", stats.Fraud},
		{"criminal", stats.Criminal},
		{"cyberbullying", stats.Cyberbullying},
		{"threat", stats.Threat},
		{"negative sentiment", stats.NegativeSentiment},
	}
	for _, l := range lines {
		if l.count > 0 {
			fmt.Fprintf(&b, "• %s: %d\n", l.name, l.count)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
