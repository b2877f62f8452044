package telegram

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// botAPI is the part of tgbotapi.BotAPI the notifier uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier posts saved reports to a Telegram chat.
type Notifier struct {
	api    botAPI
	chatID int64
	logger *zap.Logger
}

// NewNotifier authorizes the bot token and targets chatID.
func NewNotifier(token string, chatID int64, logger *zap.Logger) (*Notifier, error) {
	return newNotifier(token, tgbotapi.APIEndpoint, chatID, logger)
}

func newNotifier(token, endpoint string, chatID int64, logger *zap.Logger) (*Notifier, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	logger.Debug("telegram bot authorized", zap.String("account", bot.Self.UserName))

	return &Notifier{api: bot, chatID: chatID, logger: logger.Named("telegram")}, nil
}

// NotifyReport sends the report file as a document captioned with subject.
// When the file is gone only the caption and report text are posted.
func (n *Notifier) NotifyReport(subject, report, filePath string) error {
	var msg tgbotapi.Chattable
	if _, err := os.Stat(filePath); err == nil {
		doc := tgbotapi.NewDocument(n.chatID, tgbotapi.FilePath(filePath))
		doc.Caption = subject
		msg = doc
	} else {
		n.logger.Debug("report file unavailable, sending text", zap.String("path", filePath), zap.Error(err))
		msg = tgbotapi.NewMessage(n.chatID, subject+"\n\n"+report)
	}

	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram notification: %w", err)
	}
	return nil
}
