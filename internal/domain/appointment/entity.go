package appointment

import (
	"github.com/dcastillo-dev/barberbook/internal/models"
)

// Role discriminates the two participant rows every appointment owns.
type Role string

const (
	RoleClient Role = "client"
	RoleBarber Role = "barber"
)

// participant returns the row for the given role. Every appointment has
// exactly one per role for its whole lifetime.
func participant(ap *models.Appointment, role Role) *models.AppointmentParticipant {
	for i := range ap.Participants {
		if ap.Participants[i].Role == string(role) {
			return &ap.Participants[i]
		}
	}
	return nil
}

func ClientParticipant(ap *models.Appointment) *models.AppointmentParticipant {
	return participant(ap, RoleClient)
}

func BarberParticipant(ap *models.Appointment) *models.AppointmentParticipant {
	return participant(ap, RoleBarber)
}

func IsParticipant(ap *models.Appointment, userID uint) bool {
	for i := range ap.Participants {
		if ap.Participants[i].UserID == userID {
			return true
		}
	}
	return false
}

// TotalDurationMin is the sum of the linked services' durations.
func TotalDurationMin(ap *models.Appointment) int {
	total := 0
	for i := range ap.Services {
		total += ap.Services[i].Service.DurationMin
	}
	return total
}

func TotalPrice(ap *models.Appointment) float64 {
	total := 0.0
	for i := range ap.Services {
		total += ap.Services[i].Service.Price
	}
	return total
}

// ===============================
// Domain Actions
// ===============================

func Reschedule(ap *models.Appointment, date, hour string) error {
	if err := CanReschedule(Status(ap.State)); err != nil {
		return err
	}
	ap.Date = date
	ap.Hour = hour
	ap.State = string(StatusReschedulled)
	return nil
}

func Cancel(ap *models.Appointment) error {
	if err := CanCancel(Status(ap.State)); err != nil {
		return err
	}
	ap.State = string(StatusCancelled)
	return nil
}

func Complete(ap *models.Appointment) error {
	if err := CanComplete(Status(ap.State)); err != nil {
		return err
	}
	ap.State = string(StatusCompleted)
	return nil
}
