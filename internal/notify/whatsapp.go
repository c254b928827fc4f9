package notify

import (
	"context"
	"net/url"
	"strings"

	"github.com/BruksfildServices01/nail-salon/internal/models"
)

// Notice carries what a confirmation message needs about a booking.
type Notice struct {
	BookingID   string
	ClientName  string
	ClientPhone string
	Service     string
	Date        string
	Time        string
}

// Links are the two pre-filled WhatsApp chats opened after a confirmation.
type Links struct {
	Client string `json:"client,omitempty"`
	Admin  string `json:"admin,omitempty"`
}

type WhatsAppSettingsSource interface {
	GetWhatsAppSettings(ctx context.Context) (*models.WhatsAppSettings, error)
}

type WhatsApp struct {
	settings WhatsAppSettingsSource
}

func NewWhatsApp(settings WhatsAppSettingsSource) *WhatsApp {
	return &WhatsApp{settings: settings}
}

func (w *WhatsApp) Links(ctx context.Context, n Notice) (Links, error) {
	s, err := w.settings.GetWhatsAppSettings(ctx)
	if err != nil {
		return Links{}, err
	}
	if !s.Enabled {
		return Links{}, nil
	}

	return Links{
		Client: DeepLink(n.ClientPhone, Render(s.ClientTemplate, n)),
		Admin:  DeepLink(s.AdminPhone, Render(s.AdminTemplate, n)),
	}, nil
}

// Render fills {name} {service} {date} {time} {id} in tpl.
func Render(tpl string, n Notice) string {
	return strings.NewReplacer(
		"{name}", n.ClientName,
		"{service}", n.Service,
		"{date}", n.Date,
		"{time}", n.Time,
		"{id}", n.BookingID,
	).Replace(tpl)
}

// DeepLink builds a wa.me chat link. Ten-digit numbers get the +1 prefix
// used in Puerto Rico. An empty phone yields "".
func DeepLink(phone, text string) string {
	digits := Digits(phone)
	if digits == "" {
		return ""
	}
	if len(digits) == 10 {
		digits = "1" + digits
	}
	return "https://wa.me/" + digits + "?" + url.Values{"text": {text}}.Encode()
}

func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
