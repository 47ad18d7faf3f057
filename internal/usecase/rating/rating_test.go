package rating

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/dcastillo-dev/barberbook/internal/db"
	domain "github.com/dcastillo-dev/barberbook/internal/domain/appointment"
	"github.com/dcastillo-dev/barberbook/internal/httperr"
	"github.com/dcastillo-dev/barberbook/internal/infra/repository"
	"github.com/dcastillo-dev/barberbook/internal/models"
)

type fixture struct {
	db      *gorm.DB
	service *Service
	client  *models.User
	barber  *models.User
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

	f := &fixture{db: gdb}
	f.service = NewService(gdb, repository.NewAppointmentGormRepository(gdb))

	f.client = &models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x", Role: models.RoleClient}
	f.barber = &models.User{Name: "Marco", Email: "marco@example.com", PasswordHash: "x", Role: models.RoleBarber}
	require.NoError(t, gdb.Create(f.client).Error)
	require.NoError(t, gdb.Create(f.barber).Error)
	return f
}

func (f *fixture) seedAppointment(t *testing.T, state domain.Status) *models.Appointment {
	t.Helper()
	ap := models.Appointment{
		Date:  "2030-01-07",
		Hour:  "10:00",
		State: string(state),
		Participants: []models.AppointmentParticipant{
			{UserID: f.client.ID, Role: string(domain.RoleClient)},
			{UserID: f.barber.ID, Role: string(domain.RoleBarber)},
		},
	}
	require.NoError(t, f.db.Create(&ap).Error)
	return &ap
}

func TestCreateRating(t *testing.T) {
	f := newFixture(t)
	ap := f.seedAppointment(t, domain.StatusCompleted)

	rating, err := f.service.Create(context.Background(), f.client.ID, CreateInput{
		AppointmentID: ap.ID,
		Score:         5,
		Comment:       "great cut",
	})
	require.NoError(t, err)
	assert.Equal(t, f.barber.ID, rating.BarberID)
	assert.Equal(t, 5, rating.Score)
}

func TestCreateRatingOnlyOnce(t *testing.T) {
	f := newFixture(t)
	ap := f.seedAppointment(t, domain.StatusCompleted)
	ctx := context.Background()

	_, err := f.service.Create(ctx, f.client.ID, CreateInput{AppointmentID: ap.ID, Score: 4})
	require.NoError(t, err)

	_, err = f.service.Create(ctx, f.client.ID, CreateInput{AppointmentID: ap.ID, Score: 2})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
}

func TestCreateRatingGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	scheduled := f.seedAppointment(t, domain.StatusScheduled)
	_, err := f.service.Create(ctx, f.client.ID, CreateInput{AppointmentID: scheduled.ID, Score: 5})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState),
		"only completed appointments can be rated")

	completed := f.seedAppointment(t, domain.StatusCompleted)
	_, err = f.service.Create(ctx, f.barber.ID, CreateInput{AppointmentID: completed.ID, Score: 5})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden),
		"the barber cannot rate their own work")

	_, err = f.service.Create(ctx, f.client.ID, CreateInput{AppointmentID: completed.ID, Score: 6})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))

	_, err = f.service.Create(ctx, f.client.ID, CreateInput{AppointmentID: 9999, Score: 5})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

func TestForBarberAverage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, score := range []int{5, 4} {
		ap := f.seedAppointment(t, domain.StatusCompleted)
		_, err := f.service.Create(ctx, f.client.ID, CreateInput{AppointmentID: ap.ID, Score: score})
		require.NoError(t, err)
	}

	out, err := f.service.ForBarber(ctx, f.barber.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.InDelta(t, 4.5, out.Average, 0.001)
	assert.Len(t, out.Ratings, 2)

	_, err = f.service.ForBarber(ctx, f.client.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}
