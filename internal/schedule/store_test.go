package schedule

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dcastillo-dev/barberbook/internal/cache"
	dbpkg "github.com/dcastillo-dev/barberbook/internal/db"
	"github.com/dcastillo-dev/barberbook/internal/httperr"
	"github.com/dcastillo-dev/barberbook/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(gdb))
	return gdb
}

func seedBarber(t *testing.T, gdb *gorm.DB) *models.User {
	t.Helper()

	barber := models.User{
		Name:         "Marco",
		Email:        fmt.Sprintf("marco+%s@example.com", t.Name()),
		PasswordHash: "x",
		Role:         models.RoleBarber,
	}
	require.NoError(t, gdb.Create(&barber).Error)
	return &barber
}

func TestUpsertWeeklyCreatesThenUpdates(t *testing.T) {
	gdb := newTestDB(t)
	barber := seedBarber(t, gdb)
	store := NewStore(gdb, nil)
	ctx := context.Background()

	first, err := store.UpsertWeekly(ctx, barber.ID, 1, "09:00", "18:00", true)
	require.NoError(t, err)

	second, err := store.UpsertWeekly(ctx, barber.ID, 1, "10:00", "17:00", true)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same weekday must update, not duplicate")
	assert.Equal(t, "10:00", second.StartTime)

	var count int64
	gdb.Model(&models.WeeklySchedule{}).
		Where("barber_id = ? AND day_of_week = ?", barber.ID, 1).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpsertWeeklyValidation(t *testing.T) {
	gdb := newTestDB(t)
	barber := seedBarber(t, gdb)
	store := NewStore(gdb, nil)
	ctx := context.Background()

	_, err := store.UpsertWeekly(ctx, barber.ID, 7, "09:00", "18:00", true)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidDate))

	_, err = store.UpsertWeekly(ctx, barber.ID, 1, "9am", "18:00", true)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTimeFormat))

	_, err = store.UpsertWeekly(ctx, barber.ID, 1, "18:00", "09:00", true)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTimeRange))

	_, err = store.UpsertWeekly(ctx, 9999, 1, "09:00", "18:00", true)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

func TestDeactivateWeeklyIsIdempotent(t *testing.T) {
	gdb := newTestDB(t)
	barber := seedBarber(t, gdb)
	store := NewStore(gdb, nil)
	ctx := context.Background()

	sched, err := store.UpsertWeekly(ctx, barber.ID, 2, "09:00", "18:00", true)
	require.NoError(t, err)

	got, err := store.DeactivateWeekly(ctx, barber.ID, sched.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	again, err := store.DeactivateWeekly(ctx, barber.ID, sched.ID)
	require.NoError(t, err)
	assert.False(t, again.IsActive)
}

func TestDeactivateWeeklyForeignBarber(t *testing.T) {
	gdb := newTestDB(t)
	barber := seedBarber(t, gdb)
	store := NewStore(gdb, nil)
	ctx := context.Background()

	sched, err := store.UpsertWeekly(ctx, barber.ID, 2, "09:00", "18:00", true)
	require.NoError(t, err)

	_, err = store.DeactivateWeekly(ctx, barber.ID+1, sched.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

func TestUpsertDateOverrideReplacesBreaks(t *testing.T) {
	gdb := newTestDB(t)
	barber := seedBarber(t, gdb)
	store := NewStore(gdb, nil)
	ctx := context.Background()

	first, err := store.UpsertDateOverride(ctx, barber.ID, OverrideInput{
		Date:      "2030-01-07",
		IsWorkDay: true,
		Breaks: []BreakInput{
			{StartTime: "12:00", EndTime: "13:00", Reason: "lunch"},
			{StartTime: "15:00", EndTime: "15:30", Reason: "coffee"},
		},
	})
	require.NoError(t, err)
	require.Len(t, first.Breaks, 2)

	second, err := store.UpsertDateOverride(ctx, barber.ID, OverrideInput{
		Date:      "2030-01-07",
		IsWorkDay: true,
		Breaks: []BreakInput{
			{StartTime: "14:00", EndTime: "14:30", Reason: "errand"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same date must update the existing override")

	var breaks []models.Break
	require.NoError(t, gdb.Where("date_override_id = ?", second.ID).Find(&breaks).Error)
	require.Len(t, breaks, 1, "old breaks are replaced wholesale")
	assert.Equal(t, "14:00", breaks[0].StartTime)
}

func TestUpsertDateOverrideDayOffDropsBreaks(t *testing.T) {
	gdb := newTestDB(t)
	barber := seedBarber(t, gdb)
	store := NewStore(gdb, nil)
	ctx := context.Background()

	override, err := store.UpsertDateOverride(ctx, barber.ID, OverrideInput{
		Date:      "2030-01-07",
		IsWorkDay: false,
		Note:      "holiday",
		Breaks: []BreakInput{
			{StartTime: "12:00", EndTime: "13:00"},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, override.Breaks, "breaks are meaningless on a day off")
}

func TestUpsertDateOverrideRejectsPastDates(t *testing.T) {
	gdb := newTestDB(t)
	barber := seedBarber(t, gdb)
	store := NewStore(gdb, nil)

	_, err := store.UpsertDateOverride(context.Background(), barber.ID, OverrideInput{
		Date:      "2020-01-01",
		IsWorkDay: false,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodePastDate))
}

func TestDeleteDateOverrideRemovesBreaks(t *testing.T) {
	gdb := newTestDB(t)
	barber := seedBarber(t, gdb)
	store := NewStore(gdb, nil)
	ctx := context.Background()

	override, err := store.UpsertDateOverride(ctx, barber.ID, OverrideInput{
		Date:      "2030-01-07",
		IsWorkDay: true,
		Breaks: []BreakInput{
			{StartTime: "12:00", EndTime: "13:00"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteDateOverride(ctx, barber.ID, override.ID))

	var count int64
	gdb.Model(&models.Break{}).Where("date_override_id = ?", override.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	err = store.DeleteDateOverride(ctx, barber.ID, override.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

func TestResolveDayUsesOverride(t *testing.T) {
	gdb := newTestDB(t)
	barber := seedBarber(t, gdb)
	store := NewStore(gdb, nil)
	ctx := context.Background()

	_, err := store.UpsertWeekly(ctx, barber.ID, 1, "09:00", "18:00", true)
	require.NoError(t, err)
	_, err = store.UpsertDateOverride(ctx, barber.ID, OverrideInput{
		Date:      "2030-01-07",
		IsWorkDay: true,
		Breaks: []BreakInput{
			{StartTime: "12:00", EndTime: "13:00", Reason: "lunch"},
		},
	})
	require.NoError(t, err)

	day, err := ResolveDay(ctx, gdb, barber.ID, "2030-01-07")
	require.NoError(t, err)
	assert.True(t, day.IsWorkDay)
	assert.Equal(t, "09:00", day.Start)
	require.Len(t, day.Breaks, 1)
	assert.Equal(t, "lunch", day.Breaks[0].Reason)

	day, err = ResolveDay(ctx, gdb, barber.ID, "2030-01-08") // Tuesday, no weekly entry
	require.NoError(t, err)
	assert.False(t, day.IsWorkDay)
}

func TestScheduleMutationsDropCachedAvailability(t *testing.T) {
	gdb := newTestDB(t)
	barber := seedBarber(t, gdb)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	availCache := cache.NewAvailabilityCache(mr.Addr(), zerolog.Nop())
	store := NewStore(gdb, availCache)

	key := cache.Key(barber.ID, "2030-01-07", "2030-01-13", 30)
	seed := func() {
		t.Helper()
		availCache.Set(ctx, key, "grid")
		require.True(t, mr.Exists(key))
	}

	seed()
	sched, err := store.UpsertWeekly(ctx, barber.ID, 1, "09:00", "18:00", true)
	require.NoError(t, err)
	assert.False(t, mr.Exists(key), "weekly upsert must drop cached grids")

	seed()
	_, err = store.UpsertDateOverride(ctx, barber.ID, OverrideInput{
		Date: "2030-01-07", IsWorkDay: false, Note: "vacation",
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists(key), "date override must drop cached grids")

	seed()
	_, err = store.DeactivateWeekly(ctx, barber.ID, sched.ID)
	require.NoError(t, err)
	assert.False(t, mr.Exists(key), "deactivation must drop cached grids")

	overrides, err := store.ListDateOverrides(ctx, barber.ID)
	require.NoError(t, err)
	require.Len(t, overrides, 1)

	seed()
	require.NoError(t, store.DeleteDateOverride(ctx, barber.ID, overrides[0].ID))
	assert.False(t, mr.Exists(key), "override delete must drop cached grids")
}
