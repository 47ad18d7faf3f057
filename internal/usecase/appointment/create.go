package appointment

import (
	"context"

	"gorm.io/gorm"

	dbpkg "github.com/dcastillo-dev/barberbook/internal/db"
	domain "github.com/dcastillo-dev/barberbook/internal/domain/appointment"
	"github.com/dcastillo-dev/barberbook/internal/httperr"
	"github.com/dcastillo-dev/barberbook/internal/models"
	"github.com/dcastillo-dev/barberbook/internal/notify"
	"github.com/dcastillo-dev/barberbook/internal/timeutil"

	"github.com/dcastillo-dev/barberbook/internal/cache"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID   uint
	BarberID   uint
	Date       string // "YYYY-MM-DD"
	Hour       string // "HH:mm"
	ServiceIDs []uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	db       *gorm.DB
	repo     domain.Repository
	notifier notify.Sink
	cache    *cache.AvailabilityCache
}

func NewCreateAppointment(
	db *gorm.DB,
	repo domain.Repository,
	notifier notify.Sink,
	availCache *cache.AvailabilityCache,
) *CreateAppointment {
	return &CreateAppointment{
		db:       db,
		repo:     repo,
		notifier: notifier,
		cache:    availCache,
	}
}

func validateSlotInput(date, hour string) error {
	if !timeutil.ValidDate(date) {
		return httperr.ErrBusinessMsg(httperr.CodeInvalidDate,
			"date must be in YYYY-MM-DD format")
	}
	if !timeutil.ValidClock(hour) {
		return httperr.ErrBusinessMsg(httperr.CodeInvalidTimeFormat,
			"time must be in HH:mm format (24-hour)")
	}
	return nil
}

// Execute books the slot inside one transaction: advisory locks on the
// barber and client slots (barber first, always), exact-slot pre-checks,
// identity and service resolution, the three validators, then the insert.
// Any failure rolls everything back; the notification fires only after the
// commit.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if err := validateSlotInput(in.Date, in.Hour); err != nil {
		return nil, err
	}
	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusinessMsg(httperr.CodeInvalidServices,
			"at least one service is required")
	}

	var ap *models.Appointment

	err := dbpkg.WithTransaction(ctx, uc.db, func(tx *gorm.DB, post *dbpkg.PostCommit) error {

		// Lock ordering: barber before client, everywhere, so two requests
		// touching the same pair can never deadlock each other.
		if err := dbpkg.LockSlot(tx, in.BarberID, in.Date, in.Hour); err != nil {
			return err
		}
		if err := dbpkg.LockSlot(tx, in.ClientID, in.Date, in.Hour); err != nil {
			return err
		}

		v := NewValidator(tx, uc.repo)

		if err := v.ExactSlot(ctx, domain.RoleBarber, in.BarberID, in.Date, in.Hour, 0); err != nil {
			return err
		}
		if err := v.ExactSlot(ctx, domain.RoleClient, in.ClientID, in.Date, in.Hour, 0); err != nil {
			return err
		}

		repo := uc.repo.WithTx(tx)

		barber, err := repo.GetUserByRole(ctx, in.BarberID, domain.RoleBarber)
		if err != nil {
			return err
		}
		client, err := repo.GetUserByRole(ctx, in.ClientID, domain.RoleClient)
		if err != nil {
			return err
		}

		services, err := repo.GetActiveServices(ctx, in.ServiceIDs)
		if err != nil {
			return err
		}

		durationMin := 0
		totalPrice := 0.0
		for _, svc := range services {
			durationMin += svc.DurationMin
			totalPrice += svc.Price
		}

		if err := v.BarberAvailability(ctx, in.BarberID, in.Date, in.Hour, durationMin); err != nil {
			return err
		}
		if err := v.NoBarberConflict(ctx, in.BarberID, in.Date, in.Hour, durationMin, 0); err != nil {
			return err
		}
		if err := v.NoClientConflict(ctx, in.ClientID, in.Date, in.Hour, durationMin, 0); err != nil {
			return err
		}

		ap = &models.Appointment{
			Date:       in.Date,
			Hour:       in.Hour,
			State:      string(domain.InitialStatus()),
			TotalPrice: totalPrice,
		}
		for _, svc := range services {
			ap.Services = append(ap.Services, models.AppointmentService{
				ServiceID: svc.ID,
				Service:   svc,
			})
		}
		ap.Participants = []models.AppointmentParticipant{
			{UserID: client.ID, User: *client, Role: string(domain.RoleClient)},
			{UserID: barber.ID, User: *barber, Role: string(domain.RoleBarber)},
		}

		if err := repo.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		post.Add(func() {
			uc.notifier.Dispatch(notify.Event{
				Type:          models.NotifyAppointmentCreated,
				AppointmentID: ap.ID,
			})
			uc.cache.InvalidateBarber(context.Background(), in.BarberID)
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return ap, nil
}
