package appointment

import (
	"context"

	"github.com/dcastillo-dev/barberbook/internal/cache"
	domain "github.com/dcastillo-dev/barberbook/internal/domain/appointment"
	"github.com/dcastillo-dev/barberbook/internal/httperr"
	"github.com/dcastillo-dev/barberbook/internal/models"
)

type CompleteAppointment struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
}

func NewCompleteAppointment(repo domain.Repository, availCache *cache.AvailabilityCache) *CompleteAppointment {
	return &CompleteAppointment{repo: repo, cache: availCache}
}

// Execute marks the appointment completed. Only the barber participant may
// do this; completion is what lets the client submit a rating.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actorID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	barber := domain.BarberParticipant(ap)
	if barber == nil || barber.UserID != actorID {
		return nil, httperr.ErrBusinessMsg(httperr.CodeForbidden,
			"only the barber can complete this appointment")
	}
	if err := domain.Complete(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// A completed appointment no longer blocks its slot.
	uc.cache.InvalidateBarber(ctx, barber.UserID)

	return ap, nil
}
