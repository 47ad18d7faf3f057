package appointment

import (
	"context"

	"gorm.io/gorm"

	"github.com/dcastillo-dev/barberbook/internal/cache"
	domain "github.com/dcastillo-dev/barberbook/internal/domain/appointment"
	"github.com/dcastillo-dev/barberbook/internal/httperr"
	"github.com/dcastillo-dev/barberbook/internal/models"
	"github.com/dcastillo-dev/barberbook/internal/schedule"
	"github.com/dcastillo-dev/barberbook/internal/timeutil"
)

const DefaultSlotMinutes = 30

type GetAvailability struct {
	db    *gorm.DB
	repo  domain.Repository
	cache *cache.AvailabilityCache
}

func NewGetAvailability(
	db *gorm.DB,
	repo domain.Repository,
	availCache *cache.AvailabilityCache,
) *GetAvailability {
	return &GetAvailability{db: db, repo: repo, cache: availCache}
}

// Execute builds the per-day slot grid for the inclusive date range. A slot
// is busy when its start minute falls inside a break or an active
// appointment's interval; the booking-time validator remains the authority
// on real conflicts, so the grid errs toward showing tail slots of long
// appointments as free rather than hiding bookable ones.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.BarberAvailability, error) {

	if !timeutil.ValidDate(in.StartDate) || !timeutil.ValidDate(in.EndDate) {
		return nil, httperr.ErrBusinessMsg(httperr.CodeInvalidDate,
			"dates must be in YYYY-MM-DD format")
	}
	if in.StartDate > in.EndDate {
		return nil, httperr.ErrBusinessMsg(httperr.CodeInvalidDate,
			"start date must not be after end date")
	}
	if in.SlotMinutes <= 0 {
		in.SlotMinutes = DefaultSlotMinutes
	}

	key := cache.Key(in.BarberID, in.StartDate, in.EndDate, in.SlotMinutes)
	var cached domain.BarberAvailability
	if uc.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	barber, err := uc.repo.GetUserByRole(ctx, in.BarberID, domain.RoleBarber)
	if err != nil {
		return nil, err
	}

	var weekly []models.WeeklySchedule
	if err := uc.db.WithContext(ctx).
		Where("barber_id = ? AND is_active = ?", in.BarberID, true).
		Find(&weekly).Error; err != nil {
		return nil, err
	}

	var overrides []models.DateOverride
	if err := uc.db.WithContext(ctx).
		Preload("Breaks").
		Where("barber_id = ?", in.BarberID).
		Find(&overrides).Error; err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListForBarberInRange(ctx, in.BarberID, in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]models.Appointment)
	for _, ap := range appointments {
		byDate[ap.Date] = append(byDate[ap.Date], ap)
	}

	out := &domain.BarberAvailability{
		BarberID:            barber.ID,
		BarberName:          barber.Name,
		SlotDurationMinutes: in.SlotMinutes,
	}

	start, _ := timeutil.ParseDate(in.StartDate)
	end, _ := timeutil.ParseDate(in.EndDate)
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		date := cur.Format(timeutil.DateLayout)
		out.Availability = append(out.Availability,
			buildDay(date, weekly, overrides, byDate[date], in.SlotMinutes))
	}

	uc.cache.Set(ctx, key, out)
	return out, nil
}

func buildDay(
	date string,
	weekly []models.WeeklySchedule,
	overrides []models.DateOverride,
	dayAppointments []models.Appointment,
	slotMinutes int,
) domain.DayAvailability {

	dayOfWeek := timeutil.DayOfWeek(date)
	resolved := schedule.Resolve(weekly, overrides, date)

	day := domain.DayAvailability{
		Date:      date,
		DayOfWeek: dayOfWeek,
		DayName:   timeutil.DayName(dayOfWeek),
		IsWorkDay: resolved.IsWorkDay,
		Breaks:    []domain.BreakWindow{},
		Slots:     []domain.Slot{},
	}
	for _, b := range resolved.Breaks {
		day.Breaks = append(day.Breaks, domain.BreakWindow{
			Start:  b.StartTime,
			End:    b.EndTime,
			Reason: b.Reason,
		})
	}

	if !resolved.IsWorkDay || !resolved.HasWindow {
		return day
	}
	day.WorkingHours = &domain.TimeWindow{Start: resolved.Start, End: resolved.End}

	startMin := timeutil.ToMinutes(resolved.Start)
	endMin := timeutil.ToEndMinutes(resolved.End)

	for minute := startMin; minute < endMin; minute += slotMinutes {
		day.Slots = append(day.Slots, evaluateSlot(minute, resolved.Breaks, dayAppointments))
	}
	return day
}

// evaluateSlot marks a slot busy when its start instant lies inside a break
// or appointment window.
func evaluateSlot(
	minute int,
	breaks []models.Break,
	dayAppointments []models.Appointment,
) domain.Slot {

	slot := domain.Slot{
		Time:      timeutil.ToClock(minute),
		Available: true,
	}

	for _, b := range breaks {
		if minute >= timeutil.ToMinutes(b.StartTime) && minute < timeutil.ToMinutes(b.EndTime) {
			slot.Available = false
			return slot
		}
	}

	for i := range dayAppointments {
		ap := &dayAppointments[i]
		apStart := timeutil.ToMinutes(ap.Hour)
		apEnd := apStart + domain.TotalDurationMin(ap)
		if minute >= apStart && minute < apEnd {
			slot.Available = false
			slot.AppointmentID = ap.ID
			return slot
		}
	}

	return slot
}
