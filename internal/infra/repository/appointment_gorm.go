package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbpkg "github.com/dcastillo-dev/barberbook/internal/db"
	domain "github.com/dcastillo-dev/barberbook/internal/domain/appointment"
	"github.com/dcastillo-dev/barberbook/internal/httperr"
	"github.com/dcastillo-dev/barberbook/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func (r *AppointmentGormRepository) WithTx(tx *gorm.DB) domain.Repository {
	return &AppointmentGormRepository{db: tx}
}

// forUpdate applies a pessimistic write lock where the dialect supports it.
func forUpdate(q *gorm.DB) *gorm.DB {
	if dbpkg.SupportsRowLocks(q) {
		return q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

// --------------------------------------------------
// Users / services
// --------------------------------------------------

func (r *AppointmentGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (r *AppointmentGormRepository) GetUserByRole(
	ctx context.Context,
	id uint,
	role domain.Role,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, string(role)).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound,
				string(role)+" not found")
		}
		return nil, err
	}
	return &user, nil
}

func (r *AppointmentGormRepository) GetActiveServices(
	ctx context.Context,
	ids []uint,
) ([]models.Service, error) {

	// Repeated ids count once; a duplicate is not a missing service.
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND active = ?", unique, true).
		Find(&services).Error; err != nil {
		return nil, err
	}

	if len(services) != len(unique) {
		return nil, httperr.ErrBusinessMsg(httperr.CodeInvalidServices,
			"one or more services do not exist")
	}
	return services, nil
}

// --------------------------------------------------
// Appointment graph
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Participants.User").
		Preload("Services.Service").
		First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "appointment not found")
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit("Services", "Participants").
		Save(ap).Error
}

// --------------------------------------------------
// Conflict checking
// --------------------------------------------------

// conflictScan builds the locked query over a participant's active
// appointments on one date. The (role, user) filter matches at most one
// participant row per appointment, so no DISTINCT is needed; postgres
// rejects FOR UPDATE combined with DISTINCT.
func (r *AppointmentGormRepository) conflictScan(
	ctx context.Context,
	role domain.Role,
	userID uint,
	date string,
	excludeID uint,
) *gorm.DB {

	q := forUpdate(r.db.WithContext(ctx)).
		Model(&models.Appointment{}).
		Joins("JOIN appointment_participants p ON p.appointment_id = appointments.id").
		Where("appointments.date = ?", date).
		Where("p.role = ? AND p.user_id = ?", string(role), userID).
		Where("appointments.state IN ?", domain.ActiveStates())

	if excludeID != 0 {
		q = q.Where("appointments.id != ?", excludeID)
	}
	return q
}

func (r *AppointmentGormRepository) ListActiveForParticipantOnDate(
	ctx context.Context,
	role domain.Role,
	userID uint,
	date string,
	excludeID uint,
) ([]models.Appointment, error) {

	var ids []uint
	if err := r.conflictScan(ctx, role, userID, date, excludeID).
		Pluck("appointments.id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services.Service").
		Where("id IN ?", ids).
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) FindExactSlot(
	ctx context.Context,
	role domain.Role,
	userID uint,
	date string,
	hour string,
	excludeID uint,
) (*models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Joins("JOIN appointment_participants p ON p.appointment_id = appointments.id").
		Where("appointments.date = ? AND appointments.hour = ?", date, hour).
		Where("p.role = ? AND p.user_id = ?", string(role), userID).
		Where("appointments.state = ?", string(domain.StatusScheduled))

	if excludeID != 0 {
		q = q.Where("appointments.id != ?", excludeID)
	}

	var ap models.Appointment
	err := q.First(&ap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *AppointmentGormRepository) ListForBarberInRange(
	ctx context.Context,
	barberID uint,
	startDate string,
	endDate string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Services.Service").
		Joins("JOIN appointment_participants p ON p.appointment_id = appointments.id").
		Where("appointments.date >= ? AND appointments.date <= ?", startDate, endDate).
		Where("p.role = ? AND p.user_id = ?", string(domain.RoleBarber), barberID).
		Where("appointments.state IN ?", domain.ActiveStates()).
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListForParticipant(
	ctx context.Context,
	role domain.Role,
	userID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Participants.User").
		Preload("Services.Service").
		Joins("JOIN appointment_participants p ON p.appointment_id = appointments.id").
		Where("p.role = ? AND p.user_id = ?", string(role), userID).
		Order("appointments.date ASC, appointments.hour ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAll(
	ctx context.Context,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Participants.User").
		Preload("Services.Service").
		Order("date ASC, hour ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
