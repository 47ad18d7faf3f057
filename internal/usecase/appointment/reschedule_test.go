package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/dcastillo-dev/barberbook/internal/domain/appointment"
	"github.com/dcastillo-dev/barberbook/internal/httperr"
	"github.com/dcastillo-dev/barberbook/internal/models"
)

func TestRescheduleAppointment(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, f.client.ID, f.barber.ID, mondayDate, "10:00")

	moved, err := f.rescheduleUC().Execute(context.Background(), RescheduleAppointmentInput{
		ActorID:       f.client.ID,
		AppointmentID: ap.ID,
		Date:          "2030-01-14", // next Monday
		Hour:          "14:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "2030-01-14", moved.Date)
	assert.Equal(t, "14:00", moved.Hour)
	assert.Equal(t, string(domain.StatusReschedulled), moved.State)

	events := f.sink.Events()
	require.Len(t, events, 2)
	assert.Equal(t, models.NotifyAppointmentRescheduled, events[1].Type)
	assert.Equal(t, mondayDate, events[1].PrevDate)
	assert.Equal(t, "10:00", events[1].PrevHour)

	// the old slot is free again
	f.book(t, f.client2.ID, f.barber.ID, mondayDate, "10:00")
}

func TestRescheduleByNonParticipant(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, f.client.ID, f.barber.ID, mondayDate, "10:00")

	_, err := f.rescheduleUC().Execute(context.Background(), RescheduleAppointmentInput{
		ActorID:       f.client2.ID,
		AppointmentID: ap.ID,
		Date:          "2030-01-14",
		Hour:          "14:00",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))
}

func TestRescheduleCancelledAppointment(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, f.client.ID, f.barber.ID, mondayDate, "10:00")

	_, err := f.cancelUC().Execute(context.Background(), f.client.ID, ap.ID)
	require.NoError(t, err)

	_, err = f.rescheduleUC().Execute(context.Background(), RescheduleAppointmentInput{
		ActorID:       f.client.ID,
		AppointmentID: ap.ID,
		Date:          "2030-01-14",
		Hour:          "14:00",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
}

func TestRescheduleMissingAppointment(t *testing.T) {
	f := newFixture(t)

	_, err := f.rescheduleUC().Execute(context.Background(), RescheduleAppointmentInput{
		ActorID:       f.client.ID,
		AppointmentID: 9999,
		Date:          "2030-01-14",
		Hour:          "14:00",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

// A failed reschedule must roll back completely: the appointment keeps its
// original slot and state, and no event fires.
func TestRescheduleIntoBreakRollsBack(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, f.client.ID, f.barber.ID, mondayDate, "10:00")
	eventsBefore := len(f.sink.Events())

	override := models.DateOverride{
		BarberID:  f.barber.ID,
		Date:      "2030-01-14",
		IsWorkDay: true,
		Breaks: []models.Break{
			{StartTime: "14:00", EndTime: "15:00", Reason: "lunch"},
		},
	}
	require.NoError(t, f.db.Create(&override).Error)

	_, err := f.rescheduleUC().Execute(context.Background(), RescheduleAppointmentInput{
		ActorID:       f.client.ID,
		AppointmentID: ap.ID,
		Date:          "2030-01-14",
		Hour:          "14:00",
	})
	require.True(t, httperr.IsBusiness(err, httperr.CodeDuringBreak))

	var stored models.Appointment
	require.NoError(t, f.db.First(&stored, ap.ID).Error)
	assert.Equal(t, mondayDate, stored.Date)
	assert.Equal(t, "10:00", stored.Hour)
	assert.Equal(t, string(domain.StatusScheduled), stored.State)
	assert.Len(t, f.sink.Events(), eventsBefore)
}

func TestRescheduleDoesNotConflictWithItself(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, f.client.ID, f.barber.ID, mondayDate, "10:00")

	// moving 15 minutes forward overlaps the appointment's own old interval
	moved, err := f.rescheduleUC().Execute(context.Background(), RescheduleAppointmentInput{
		ActorID:       f.barber.ID,
		AppointmentID: ap.ID,
		Date:          mondayDate,
		Hour:          "10:15",
	})
	require.NoError(t, err)
	assert.Equal(t, "10:15", moved.Hour)
}

func TestRescheduleIntoAnotherAppointment(t *testing.T) {
	f := newFixture(t)
	f.book(t, f.client.ID, f.barber.ID, mondayDate, "10:00")
	ap := f.book(t, f.client2.ID, f.barber.ID, mondayDate, "11:00")

	_, err := f.rescheduleUC().Execute(context.Background(), RescheduleAppointmentInput{
		ActorID:       f.client2.ID,
		AppointmentID: ap.ID,
		Date:          mondayDate,
		Hour:          "10:00",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotTaken))
}
