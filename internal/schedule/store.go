package schedule

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dcastillo-dev/barberbook/internal/cache"
	"github.com/dcastillo-dev/barberbook/internal/httperr"
	"github.com/dcastillo-dev/barberbook/internal/models"
	"github.com/dcastillo-dev/barberbook/internal/timeutil"
)

// Store owns barber weekly schedules and date overrides. Every mutation
// drops the barber's cached availability grids, since those are computed
// from the rows this store manages.
type Store struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
}

func NewStore(db *gorm.DB, availCache *cache.AvailabilityCache) *Store {
	return &Store{db: db, cache: availCache}
}

type BreakInput struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Reason    string `json:"reason"`
}

type OverrideInput struct {
	Date      string       `json:"date" binding:"required"`
	IsWorkDay bool         `json:"is_work_day"`
	Note      string       `json:"note"`
	Breaks    []BreakInput `json:"breaks"`
}

func validateWindow(start, end string) error {
	if !timeutil.ValidClock(start) || !timeutil.ValidClock(end) {
		return httperr.ErrBusinessMsg(httperr.CodeInvalidTimeFormat,
			"time must be in HH:mm format (24-hour)")
	}
	if timeutil.ToMinutes(start) >= timeutil.ToMinutes(end) {
		return httperr.ErrBusinessMsg(httperr.CodeInvalidTimeRange,
			fmt.Sprintf("start time must be before end time: %s - %s", start, end))
	}
	return nil
}

func (s *Store) barberExists(ctx context.Context, barberID uint) error {
	var barber models.User
	err := s.db.WithContext(ctx).
		Where("id = ? AND role = ?", barberID, models.RoleBarber).
		First(&barber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusinessMsg(httperr.CodeNotFound, "barber not found")
	}
	return err
}

// --------------------------------------------------
// Weekly schedule
// --------------------------------------------------

// UpsertWeekly updates the existing row for (barber, dayOfWeek) when one
// exists; a barber never accumulates duplicate rows for the same weekday.
func (s *Store) UpsertWeekly(
	ctx context.Context,
	barberID uint,
	dayOfWeek int,
	startTime string,
	endTime string,
	isActive bool,
) (*models.WeeklySchedule, error) {

	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, httperr.ErrBusinessMsg(httperr.CodeInvalidDate,
			"day_of_week must be between 0 (Sunday) and 6 (Saturday)")
	}
	if err := validateWindow(startTime, endTime); err != nil {
		return nil, err
	}
	if err := s.barberExists(ctx, barberID); err != nil {
		return nil, err
	}

	var existing models.WeeklySchedule
	err := s.db.WithContext(ctx).
		Where("barber_id = ? AND day_of_week = ?", barberID, dayOfWeek).
		First(&existing).Error

	if err == nil {
		existing.StartTime = startTime
		existing.EndTime = endTime
		existing.IsActive = isActive
		if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, err
		}
		s.cache.InvalidateBarber(ctx, barberID)
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := models.WeeklySchedule{
		BarberID:  barberID,
		DayOfWeek: dayOfWeek,
		StartTime: startTime,
		EndTime:   endTime,
		IsActive:  isActive,
	}
	if err := s.db.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, err
	}
	s.cache.InvalidateBarber(ctx, barberID)
	return &created, nil
}

func (s *Store) ListWeekly(ctx context.Context, barberID uint) ([]models.WeeklySchedule, error) {
	if err := s.barberExists(ctx, barberID); err != nil {
		return nil, err
	}

	var schedules []models.WeeklySchedule
	err := s.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("day_of_week ASC").
		Find(&schedules).Error
	return schedules, err
}

// DeactivateWeekly soft-deletes a schedule row. Calling it on an already
// inactive row is a no-op, not an error. The row must belong to barberID.
func (s *Store) DeactivateWeekly(ctx context.Context, barberID, scheduleID uint) (*models.WeeklySchedule, error) {
	var sched models.WeeklySchedule
	err := s.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		First(&sched, scheduleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "schedule not found")
	}
	if err != nil {
		return nil, err
	}

	if sched.IsActive {
		sched.IsActive = false
		if err := s.db.WithContext(ctx).Save(&sched).Error; err != nil {
			return nil, err
		}
		s.cache.InvalidateBarber(ctx, barberID)
	}
	return &sched, nil
}

// --------------------------------------------------
// Date overrides
// --------------------------------------------------

// UpsertDateOverride creates or updates the override for the exact date and
// replaces its break set wholesale in the same transaction.
func (s *Store) UpsertDateOverride(
	ctx context.Context,
	barberID uint,
	in OverrideInput,
) (*models.DateOverride, error) {

	if !timeutil.ValidDate(in.Date) {
		return nil, httperr.ErrBusinessMsg(httperr.CodeInvalidDate,
			"date must be in YYYY-MM-DD format")
	}
	if in.Date < timeutil.Today() {
		return nil, httperr.ErrBusinessMsg(httperr.CodePastDate,
			"cannot set schedule for past dates")
	}

	var breaks []models.Break
	if in.IsWorkDay {
		for _, b := range in.Breaks {
			if err := validateWindow(b.StartTime, b.EndTime); err != nil {
				return nil, err
			}
			breaks = append(breaks, models.Break{
				StartTime: b.StartTime,
				EndTime:   b.EndTime,
				Reason:    b.Reason,
			})
		}
	}

	if err := s.barberExists(ctx, barberID); err != nil {
		return nil, err
	}

	var override models.DateOverride
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Where("barber_id = ? AND date = ?", barberID, in.Date).
			First(&override).Error

		switch {
		case findErr == nil:
			override.IsWorkDay = in.IsWorkDay
			override.Note = in.Note
			if err := tx.Save(&override).Error; err != nil {
				return err
			}
			if err := tx.
				Where("date_override_id = ?", override.ID).
				Delete(&models.Break{}).Error; err != nil {
				return err
			}
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			override = models.DateOverride{
				BarberID:  barberID,
				Date:      in.Date,
				IsWorkDay: in.IsWorkDay,
				Note:      in.Note,
			}
			if err := tx.Create(&override).Error; err != nil {
				return err
			}
		default:
			return findErr
		}

		for i := range breaks {
			breaks[i].DateOverrideID = override.ID
		}
		if len(breaks) > 0 {
			if err := tx.Create(&breaks).Error; err != nil {
				return err
			}
		}
		override.Breaks = breaks
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateBarber(ctx, barberID)
	return &override, nil
}

func (s *Store) ListDateOverrides(ctx context.Context, barberID uint) ([]models.DateOverride, error) {
	if err := s.barberExists(ctx, barberID); err != nil {
		return nil, err
	}

	var overrides []models.DateOverride
	err := s.db.WithContext(ctx).
		Preload("Breaks").
		Where("barber_id = ?", barberID).
		Order("date ASC").
		Find(&overrides).Error
	return overrides, err
}

// DeleteDateOverride removes the override and all of its breaks. The
// override must belong to barberID.
func (s *Store) DeleteDateOverride(ctx context.Context, barberID, overrideID uint) error {
	var override models.DateOverride
	err := s.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		First(&override, overrideID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusinessMsg(httperr.CodeNotFound, "date override not found")
	}
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("date_override_id = ?", override.ID).
			Delete(&models.Break{}).Error; err != nil {
			return err
		}
		return tx.Delete(&override).Error
	})
	if err != nil {
		return err
	}
	s.cache.InvalidateBarber(ctx, barberID)
	return nil
}
