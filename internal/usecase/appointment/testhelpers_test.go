package appointment

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/dcastillo-dev/barberbook/internal/db"
	"github.com/dcastillo-dev/barberbook/internal/infra/repository"
	"github.com/dcastillo-dev/barberbook/internal/models"
	"github.com/dcastillo-dev/barberbook/internal/notify"
)

// mondayDate has an active weekly window in every fixture.
const mondayDate = "2030-01-07"

// fakeSink records dispatched events synchronously.
type fakeSink struct {
	mu     sync.Mutex
	events []notify.Event
}

func (f *fakeSink) Dispatch(ev notify.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
}

func (f *fakeSink) Events() []notify.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notify.Event(nil), f.events...)
}

type fixture struct {
	db      *gorm.DB
	repo    *repository.AppointmentGormRepository
	sink    *fakeSink
	client  *models.User
	client2 *models.User
	barber  *models.User
	barber2 *models.User
	haircut *models.Service
	shave   *models.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(gdb))

	f := &fixture{
		db:   gdb,
		repo: repository.NewAppointmentGormRepository(gdb),
		sink: &fakeSink{},
	}

	f.client = f.seedUser(t, "Ana", models.RoleClient)
	f.client2 = f.seedUser(t, "Bruno", models.RoleClient)
	f.barber = f.seedUser(t, "Marco", models.RoleBarber)
	f.barber2 = f.seedUser(t, "Rafa", models.RoleBarber)

	f.haircut = f.seedService(t, "Haircut", 30, 25)
	f.shave = f.seedService(t, "Shave", 15, 10)

	// both barbers work Mondays 09:00-18:00
	for _, b := range []*models.User{f.barber, f.barber2} {
		require.NoError(t, gdb.Create(&models.WeeklySchedule{
			BarberID:  b.ID,
			DayOfWeek: 1,
			StartTime: "09:00",
			EndTime:   "18:00",
			IsActive:  true,
		}).Error)
	}

	return f
}

func (f *fixture) seedUser(t *testing.T, name, role string) *models.User {
	t.Helper()
	u := models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s+%s@example.com", name, t.Name()),
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, f.db.Create(&u).Error)
	return &u
}

func (f *fixture) seedService(t *testing.T, name string, durationMin int, price float64) *models.Service {
	t.Helper()
	s := models.Service{Name: name, DurationMin: durationMin, Price: price, Active: true}
	require.NoError(t, f.db.Create(&s).Error)
	return &s
}

func (f *fixture) createUC() *CreateAppointment {
	return NewCreateAppointment(f.db, f.repo, f.sink, nil)
}

func (f *fixture) rescheduleUC() *RescheduleAppointment {
	return NewRescheduleAppointment(f.db, f.repo, f.sink, nil)
}

func (f *fixture) cancelUC() *CancelAppointment {
	return NewCancelAppointment(f.repo, f.sink, nil)
}

func (f *fixture) book(t *testing.T, clientID, barberID uint, date, hour string, serviceIDs ...uint) *models.Appointment {
	t.Helper()
	if len(serviceIDs) == 0 {
		serviceIDs = []uint{f.haircut.ID}
	}
	ap, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
		ClientID:   clientID,
		BarberID:   barberID,
		Date:       date,
		Hour:       hour,
		ServiceIDs: serviceIDs,
	})
	require.NoError(t, err)
	return ap
}
