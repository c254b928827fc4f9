package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts booking alerts to the salon's admin chat.
type Telegram struct {
	bot    TelegramSender
	chatID int64
}

func NewTelegram(bot TelegramSender, chatID int64) *Telegram {
	return &Telegram{bot: bot, chatID: chatID}
}

// NewTelegramFromToken connects to the Bot API. It calls getMe, so it needs
// network access.
func NewTelegramFromToken(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return NewTelegram(bot, chatID), nil
}

func (t *Telegram) Alert(ctx context.Context, n Notice) error {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	text := fmt.Sprintf(
		"✅ Cita confirmada\n%s (%s)\n%s\n%s %s\nCódigo: %s",
		n.ClientName, n.ClientPhone, n.Service, n.Date, n.Time, n.BookingID,
	)
	_, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text))
	return err
}
