package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// Notifier runs every channel for a confirmed booking. Failures are logged and
// never reach the caller.
type Notifier struct {
	whatsapp *WhatsApp
	telegram *Telegram
	log      zerolog.Logger
}

func NewNotifier(whatsapp *WhatsApp, telegram *Telegram, log zerolog.Logger) *Notifier {
	return &Notifier{whatsapp: whatsapp, telegram: telegram, log: log}
}

func (n *Notifier) BookingConfirmed(ctx context.Context, notice Notice) Links {
	var links Links
	if n.whatsapp != nil {
		l, err := n.whatsapp.Links(ctx, notice)
		if err != nil {
			n.log.Warn().Err(err).Str("booking_id", notice.BookingID).Msg("whatsapp links failed")
		}
		links = l
	}

	if err := n.telegram.Alert(ctx, notice); err != nil {
		n.log.Warn().Err(err).Str("booking_id", notice.BookingID).Msg("telegram alert failed")
	}
	return links
}
