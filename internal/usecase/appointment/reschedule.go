package appointment

import (
	"context"

	"gorm.io/gorm"

	"github.com/dcastillo-dev/barberbook/internal/cache"
	dbpkg "github.com/dcastillo-dev/barberbook/internal/db"
	domain "github.com/dcastillo-dev/barberbook/internal/domain/appointment"
	"github.com/dcastillo-dev/barberbook/internal/httperr"
	"github.com/dcastillo-dev/barberbook/internal/models"
	"github.com/dcastillo-dev/barberbook/internal/notify"
)

type RescheduleAppointmentInput struct {
	ActorID       uint
	AppointmentID uint
	Date          string // new "YYYY-MM-DD"
	Hour          string // new "HH:mm"
}

type RescheduleAppointment struct {
	db       *gorm.DB
	repo     domain.Repository
	notifier notify.Sink
	cache    *cache.AvailabilityCache
}

func NewRescheduleAppointment(
	db *gorm.DB,
	repo domain.Repository,
	notifier notify.Sink,
	availCache *cache.AvailabilityCache,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		db:       db,
		repo:     repo,
		notifier: notifier,
		cache:    availCache,
	}
}

// Execute moves an active appointment to a new slot. The participants and
// services never change; only date, hour, and state do. Validators exclude
// the appointment's own id so it cannot conflict with itself.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	if err := validateSlotInput(in.Date, in.Hour); err != nil {
		return nil, err
	}

	var ap *models.Appointment
	var barberID uint

	err := dbpkg.WithTransaction(ctx, uc.db, func(tx *gorm.DB, post *dbpkg.PostCommit) error {

		repo := uc.repo.WithTx(tx)

		loaded, err := repo.GetAppointment(ctx, in.AppointmentID)
		if err != nil {
			return err
		}
		ap = loaded

		if err := domain.CanReschedule(domain.Status(ap.State)); err != nil {
			return err
		}
		if !domain.IsParticipant(ap, in.ActorID) {
			return httperr.ErrBusinessMsg(httperr.CodeForbidden,
				"only a participant can reschedule this appointment")
		}

		barber := domain.BarberParticipant(ap)
		client := domain.ClientParticipant(ap)
		barberID = barber.UserID

		// Same ordering as Create: barber lock, then client lock, keyed on
		// the new slot.
		if err := dbpkg.LockSlot(tx, barber.UserID, in.Date, in.Hour); err != nil {
			return err
		}
		if err := dbpkg.LockSlot(tx, client.UserID, in.Date, in.Hour); err != nil {
			return err
		}

		v := NewValidator(tx, uc.repo)

		if err := v.ExactSlot(ctx, domain.RoleBarber, barber.UserID, in.Date, in.Hour, ap.ID); err != nil {
			return err
		}
		if err := v.ExactSlot(ctx, domain.RoleClient, client.UserID, in.Date, in.Hour, ap.ID); err != nil {
			return err
		}

		// Duration comes from the existing service links; a reschedule
		// never changes them.
		durationMin := domain.TotalDurationMin(ap)

		if err := v.BarberAvailability(ctx, barber.UserID, in.Date, in.Hour, durationMin); err != nil {
			return err
		}
		if err := v.NoBarberConflict(ctx, barber.UserID, in.Date, in.Hour, durationMin, ap.ID); err != nil {
			return err
		}
		if err := v.NoClientConflict(ctx, client.UserID, in.Date, in.Hour, durationMin, ap.ID); err != nil {
			return err
		}

		prevDate, prevHour := ap.Date, ap.Hour
		if err := domain.Reschedule(ap, in.Date, in.Hour); err != nil {
			return err
		}
		if err := repo.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		post.Add(func() {
			uc.notifier.Dispatch(notify.Event{
				Type:          models.NotifyAppointmentRescheduled,
				AppointmentID: ap.ID,
				PrevDate:      prevDate,
				PrevHour:      prevHour,
			})
			uc.cache.InvalidateBarber(context.Background(), barberID)
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return ap, nil
}
