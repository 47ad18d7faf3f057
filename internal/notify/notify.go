package notify

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/dcastillo-dev/barberbook/internal/models"
)

// Event is a fire-and-forget notification request emitted after a booking
// commit. Delivery failures never affect the committed booking.
type Event struct {
	Type          string
	AppointmentID uint
	PrevDate      string
	PrevHour      string
}

// Sink accepts notification events. The booking use cases depend on this
// rather than the concrete dispatcher.
type Sink interface {
	Dispatch(ev Event)
}

type Dispatcher struct {
	db    *gorm.DB
	log   zerolog.Logger
	queue chan Event
}

func NewDispatcher(db *gorm.DB, logger zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		db:    db,
		log:   logger,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.deliver(ev); err != nil {
			d.log.Error().
				Err(err).
				Str("type", ev.Type).
				Uint("appointment_id", ev.AppointmentID).
				Msg("notification delivery failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// full queue: drop rather than block a request
		d.log.Warn().
			Str("type", ev.Type).
			Uint("appointment_id", ev.AppointmentID).
			Msg("notification queue full, dropping event")
	}
}

func (d *Dispatcher) deliver(ev Event) error {
	var ap models.Appointment
	if err := d.db.
		Preload("Participants.User").
		Preload("Services.Service").
		First(&ap, ev.AppointmentID).Error; err != nil {
		return err
	}

	message := d.message(ev, &ap)

	rows := make([]models.Notification, 0, len(ap.Participants))
	for _, p := range ap.Participants {
		rows = append(rows, models.Notification{
			UserID:        p.UserID,
			AppointmentID: ap.ID,
			Type:          ev.Type,
			Message:       message,
		})
	}
	if err := d.db.Create(&rows).Error; err != nil {
		return err
	}

	// Email delivery stands in as a log line; the booking outcome never
	// depends on it.
	for _, p := range ap.Participants {
		d.log.Info().
			Str("type", ev.Type).
			Str("to", p.User.Email).
			Uint("appointment_id", ap.ID).
			Str("date", ap.Date).
			Str("hour", ap.Hour).
			Msg("notification email queued")
	}
	return nil
}

func (d *Dispatcher) message(ev Event, ap *models.Appointment) string {
	switch ev.Type {
	case models.NotifyAppointmentRescheduled:
		return fmt.Sprintf("Appointment moved from %s %s to %s %s",
			ev.PrevDate, ev.PrevHour, ap.Date, ap.Hour)
	case models.NotifyAppointmentCancelled:
		return fmt.Sprintf("Appointment on %s at %s was cancelled", ap.Date, ap.Hour)
	default:
		return fmt.Sprintf("New appointment scheduled for %s at %s", ap.Date, ap.Hour)
	}
}

// ServiceNames is a convenience for notification payloads and listings.
func ServiceNames(ap *models.Appointment) []string {
	names := make([]string, 0, len(ap.Services))
	for i := range ap.Services {
		names = append(names, ap.Services[i].Service.Name)
	}
	return names
}

var _ Sink = (*Dispatcher)(nil)
