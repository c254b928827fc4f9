package booking

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/nail-salon/internal/domain/schedule"
	"github.com/BruksfildServices01/nail-salon/internal/httperr"
	"github.com/BruksfildServices01/nail-salon/internal/models"
	"github.com/BruksfildServices01/nail-salon/internal/notify"
	"github.com/BruksfildServices01/nail-salon/internal/validators"
)

type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, date, hm string) (bool, error)
}

type DepositSource interface {
	DepositCents(ctx context.Context) int64
}

type Notifier interface {
	BookingConfirmed(ctx context.Context, n notify.Notice) notify.Links
}

type CreateInput struct {
	Date        string
	Time        string
	Service     string
	ClientName  string
	ClientEmail string
	ClientPhone string
}

func (in *CreateInput) normalize() {
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Service = strings.TrimSpace(in.Service)
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientEmail = strings.ToLower(strings.TrimSpace(in.ClientEmail))
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)
}

func (in CreateInput) validate() error {
	switch {
	case in.ClientName == "":
		return httperr.Validation("client_name_required")
	case in.ClientPhone == "":
		return httperr.Validation("client_phone_required")
	case !validators.IsPhone(in.ClientPhone):
		return httperr.Validation("invalid_phone")
	case in.ClientEmail != "" && !validators.IsEmail(in.ClientEmail):
		return httperr.Validation("invalid_email")
	case in.Service == "":
		return httperr.Validation("service_required")
	case !schedule.IsDate(in.Date):
		return httperr.Validation("invalid_date")
	case !schedule.IsSlotTime(in.Time):
		return httperr.Validation("invalid_time")
	}
	return nil
}

// ConfirmResult is a confirmed booking plus the WhatsApp links to open.
type ConfirmResult struct {
	Booking *models.Booking `json:"booking"`
	Links   notify.Links    `json:"links"`
}

func noticeFor(b *models.Booking) notify.Notice {
	return notify.Notice{
		BookingID:   b.ID,
		ClientName:  b.ClientName,
		ClientPhone: b.ClientPhone,
		Service:     b.Service,
		Date:        b.Date,
		Time:        b.Time,
	}
}
