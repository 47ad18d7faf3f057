package schedule

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dcastillo-dev/barberbook/internal/models"
	"github.com/dcastillo-dev/barberbook/internal/timeutil"
)

// DaySchedule is the resolved working picture for one barber on one date,
// after merging the weekly schedule with any date override.
type DaySchedule struct {
	IsWorkDay bool
	Note      string

	// HasWindow is false on non-work days, and on work-day overrides whose
	// weekday has no active weekly window. A work day without a window has
	// nothing bookable.
	HasWindow bool
	Start     string
	End       string

	Breaks []models.Break
}

// Resolve applies the merge rule to preloaded schedule data:
//  1. An override decides work/non-work for its date. On a working override
//     the hours window still comes from the weekly schedule and the
//     override's breaks apply on top of it.
//  2. Without an override the active weekly entry decides, with no breaks.
func Resolve(
	weekly []models.WeeklySchedule,
	overrides []models.DateOverride,
	date string,
) DaySchedule {

	dayOfWeek := timeutil.DayOfWeek(date)

	var window *models.WeeklySchedule
	for i := range weekly {
		if weekly[i].DayOfWeek == dayOfWeek && weekly[i].IsActive {
			window = &weekly[i]
			break
		}
	}

	for i := range overrides {
		if overrides[i].Date != date {
			continue
		}
		ov := &overrides[i]
		if !ov.IsWorkDay {
			return DaySchedule{Note: ov.Note}
		}
		day := DaySchedule{
			IsWorkDay: true,
			Note:      ov.Note,
			Breaks:    ov.Breaks,
		}
		if window != nil {
			day.HasWindow = true
			day.Start = window.StartTime
			day.End = window.EndTime
		}
		return day
	}

	if window == nil {
		return DaySchedule{}
	}
	return DaySchedule{
		IsWorkDay: true,
		HasWindow: true,
		Start:     window.StartTime,
		End:       window.EndTime,
	}
}

// ResolveDay loads and merges the schedule for one date using the given
// handle, which may be a transaction so booking validation reads stay
// consistent with the write.
func ResolveDay(
	ctx context.Context,
	dbh *gorm.DB,
	barberID uint,
	date string,
) (DaySchedule, error) {

	var override models.DateOverride
	err := dbh.WithContext(ctx).
		Preload("Breaks").
		Where("barber_id = ? AND date = ?", barberID, date).
		First(&override).Error

	var overrides []models.DateOverride
	switch {
	case err == nil:
		overrides = []models.DateOverride{override}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to the weekly schedule
	default:
		return DaySchedule{}, err
	}

	var weekly []models.WeeklySchedule
	if err := dbh.WithContext(ctx).
		Where("barber_id = ? AND day_of_week = ? AND is_active = ?",
			barberID, timeutil.DayOfWeek(date), true).
		Find(&weekly).Error; err != nil {
		return DaySchedule{}, err
	}

	return Resolve(weekly, overrides, date), nil
}
