package appointment

import (
	"context"

	"gorm.io/gorm"

	"github.com/dcastillo-dev/barberbook/internal/models"
)

type Repository interface {
	// WithTx returns a repository bound to the given transaction so that
	// conflict reads are consistent with the in-flight write.
	WithTx(tx *gorm.DB) Repository

	// -------- Users / services --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetUserByRole(
		ctx context.Context,
		id uint,
		role Role,
	) (*models.User, error)

	GetActiveServices(
		ctx context.Context,
		ids []uint,
	) ([]models.Service, error)

	// -------- Appointment graph --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Conflict checking --------

	// ListActiveForParticipantOnDate loads, with a pessimistic write lock,
	// every scheduled/reschedulled appointment the user participates in as
	// role on the given date, services eager-loaded. excludeID skips the
	// appointment being rescheduled; zero skips nothing.
	ListActiveForParticipantOnDate(
		ctx context.Context,
		role Role,
		userID uint,
		date string,
		excludeID uint,
	) ([]models.Appointment, error)

	// FindExactSlot is the cheap pre-check: a scheduled appointment at the
	// same date and start time. Returns nil when none exists.
	FindExactSlot(
		ctx context.Context,
		role Role,
		userID uint,
		date string,
		hour string,
		excludeID uint,
	) (*models.Appointment, error)

	// -------- Listings --------
	ListForBarberInRange(
		ctx context.Context,
		barberID uint,
		startDate string,
		endDate string,
	) ([]models.Appointment, error)

	ListForParticipant(
		ctx context.Context,
		role Role,
		userID uint,
	) ([]models.Appointment, error)

	ListAll(
		ctx context.Context,
	) ([]models.Appointment, error)
}
