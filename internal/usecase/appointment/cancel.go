package appointment

import (
	"context"

	"github.com/dcastillo-dev/barberbook/internal/cache"
	domain "github.com/dcastillo-dev/barberbook/internal/domain/appointment"
	"github.com/dcastillo-dev/barberbook/internal/httperr"
	"github.com/dcastillo-dev/barberbook/internal/models"
	"github.com/dcastillo-dev/barberbook/internal/notify"
)

type CancelAppointment struct {
	repo     domain.Repository
	notifier notify.Sink
	cache    *cache.AvailabilityCache
}

func NewCancelAppointment(
	repo domain.Repository,
	notifier notify.Sink,
	availCache *cache.AvailabilityCache,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		notifier: notifier,
		cache:    availCache,
	}
}

// Execute is a plain state transition; no slot is being claimed, so no
// transaction or locking is needed.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actorID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if !domain.IsParticipant(ap, actorID) {
		return nil, httperr.ErrBusinessMsg(httperr.CodeForbidden,
			"only a participant can cancel this appointment")
	}
	if err := domain.Cancel(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(notify.Event{
		Type:          models.NotifyAppointmentCancelled,
		AppointmentID: ap.ID,
	})
	if barber := domain.BarberParticipant(ap); barber != nil {
		uc.cache.InvalidateBarber(ctx, barber.UserID)
	}

	return ap, nil
}
