package audit_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/nail-salon/internal/audit"
	"github.com/BruksfildServices01/nail-salon/internal/db/dbtest"
	"github.com/BruksfildServices01/nail-salon/internal/models"
)

func TestDispatcherWritesAndDrainsOnClose(t *testing.T) {
	db := dbtest.New(t)
	d := audit.NewDispatcher(audit.New(db), zerolog.Nop())

	adminID := uint(7)
	d.Dispatch(audit.Event{
		AdminID:  &adminID,
		Action:   "booking_confirmed",
		Entity:   "booking",
		EntityID: "abc",
		Metadata: map[string]string{"method": "ath"},
	})
	d.Dispatch(audit.Event{Action: "booking_cancelled", Entity: "booking", EntityID: "def"})
	d.Close()

	var rows []models.AuditLog
	require.NoError(t, db.Order("id ASC").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "booking_confirmed", rows[0].Action)
	assert.Equal(t, uint(7), *rows[0].AdminID)
	assert.Equal(t, models.AuditActorAdmin, rows[0].Actor)
	assert.JSONEq(t, `{"method":"ath"}`, string(rows[0].Metadata))
	assert.Nil(t, rows[1].AdminID)
	assert.Equal(t, models.AuditActorSystem, rows[1].Actor)
	assert.Empty(t, rows[1].Metadata)
}

func TestDispatchAfterCloseIsIgnored(t *testing.T) {
	db := dbtest.New(t)
	d := audit.NewDispatcher(audit.New(db), zerolog.Nop())
	d.Close()
	d.Close()

	assert.NotPanics(t, func() {
		d.Dispatch(audit.Event{Action: "late"})
	})

	var n int64
	db.Model(&models.AuditLog{}).Count(&n)
	assert.Zero(t, n)
}

func TestNilDispatcher(t *testing.T) {
	var d *audit.Dispatcher
	assert.NotPanics(t, func() { d.Dispatch(audit.Event{Action: "x"}) })
}
