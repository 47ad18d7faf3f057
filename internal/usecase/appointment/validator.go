package appointment

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/dcastillo-dev/barberbook/internal/domain/appointment"
	"github.com/dcastillo-dev/barberbook/internal/httperr"
	"github.com/dcastillo-dev/barberbook/internal/models"
	"github.com/dcastillo-dev/barberbook/internal/schedule"
	"github.com/dcastillo-dev/barberbook/internal/timeutil"
)

// Validator runs the availability and conflict checks for a candidate slot.
// It is bound to the booking transaction so every read is consistent with
// the write that follows it.
type Validator struct {
	tx   *gorm.DB
	repo domain.Repository
}

func NewValidator(tx *gorm.DB, repo domain.Repository) *Validator {
	return &Validator{tx: tx, repo: repo.WithTx(tx)}
}

// BarberAvailability checks the candidate interval against the barber's
// resolved working day: work/non-work, window containment, breaks.
func (v *Validator) BarberAvailability(
	ctx context.Context,
	barberID uint,
	date string,
	hour string,
	durationMin int,
) error {

	day, err := schedule.ResolveDay(ctx, v.tx, barberID, date)
	if err != nil {
		return err
	}

	if !day.IsWorkDay {
		reason := day.Note
		if reason == "" {
			reason = timeutil.DayName(timeutil.DayOfWeek(date))
		}
		return httperr.ErrBusinessMsg(httperr.CodeNotAWorkingDay,
			"barber is not available on "+reason)
	}

	if !day.HasWindow {
		return httperr.ErrBusinessMsg(httperr.CodeOutsideWorkingHours,
			"barber has no working hours defined for this day")
	}

	start := timeutil.ToMinutes(hour)
	end := start + durationMin

	if start < timeutil.ToMinutes(day.Start) || end > timeutil.ToEndMinutes(day.End) {
		return httperr.ErrBusinessMsg(httperr.CodeOutsideWorkingHours,
			fmt.Sprintf("appointment time %s is outside working hours (%s - %s)",
				hour, day.Start, day.End))
	}

	return v.againstBreaks(start, end, day.Breaks)
}

func (v *Validator) againstBreaks(start, end int, breaks []models.Break) error {
	for _, b := range breaks {
		bStart := timeutil.ToMinutes(b.StartTime)
		bEnd := timeutil.ToMinutes(b.EndTime)
		if timeutil.Overlaps(start, end, bStart, bEnd) {
			reason := b.Reason
			if reason == "" {
				reason = "break"
			}
			return httperr.ErrBusinessMsg(httperr.CodeDuringBreak,
				fmt.Sprintf("cannot schedule during break: %s - %s (%s)",
					b.StartTime, b.EndTime, reason))
		}
	}
	return nil
}

// NoBarberConflict locks and scans the barber's active appointments on the
// date for interval overlap. Each existing appointment's duration is the
// sum of its services' durations.
func (v *Validator) NoBarberConflict(
	ctx context.Context,
	barberID uint,
	date string,
	hour string,
	durationMin int,
	excludeID uint,
) error {
	return v.noConflict(ctx, domain.RoleBarber, barberID, date, hour, durationMin, excludeID)
}

// NoClientConflict is the same overlap scan for the client's own
// appointments that day.
func (v *Validator) NoClientConflict(
	ctx context.Context,
	clientID uint,
	date string,
	hour string,
	durationMin int,
	excludeID uint,
) error {
	return v.noConflict(ctx, domain.RoleClient, clientID, date, hour, durationMin, excludeID)
}

func (v *Validator) noConflict(
	ctx context.Context,
	role domain.Role,
	userID uint,
	date string,
	hour string,
	durationMin int,
	excludeID uint,
) error {

	existing, err := v.repo.ListActiveForParticipantOnDate(ctx, role, userID, date, excludeID)
	if err != nil {
		return err
	}

	start := timeutil.ToMinutes(hour)
	end := start + durationMin

	for i := range existing {
		exStart := timeutil.ToMinutes(existing[i].Hour)
		exEnd := exStart + domain.TotalDurationMin(&existing[i])
		if !timeutil.Overlaps(start, end, exStart, exEnd) {
			continue
		}
		if role == domain.RoleBarber {
			return httperr.ErrBusinessMsg(httperr.CodeBarberConflict,
				"barber has a conflicting appointment at "+existing[i].Hour)
		}
		return httperr.ErrBusinessMsg(httperr.CodeClientConflict,
			fmt.Sprintf("you already have an appointment at %s; it ends at %s",
				existing[i].Hour, timeutil.ToClock(exEnd)))
	}
	return nil
}

// ExactSlot is the fast pre-check for a scheduled appointment at the same
// date and start instant.
func (v *Validator) ExactSlot(
	ctx context.Context,
	role domain.Role,
	userID uint,
	date string,
	hour string,
	excludeID uint,
) error {

	ap, err := v.repo.FindExactSlot(ctx, role, userID, date, hour, excludeID)
	if err != nil {
		return err
	}
	if ap != nil {
		return httperr.ErrBusinessMsg(httperr.CodeSlotTaken,
			fmt.Sprintf("an appointment already exists at %s on %s", hour, date))
	}
	return nil
}
