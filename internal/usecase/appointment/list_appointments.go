package appointment

import (
	"context"
	"time"

	domain "github.com/dcastillo-dev/barberbook/internal/domain/appointment"
	"github.com/dcastillo-dev/barberbook/internal/httperr"
	"github.com/dcastillo-dev/barberbook/internal/models"
	"github.com/dcastillo-dev/barberbook/internal/timeutil"
)

// AppointmentView is the listing shape shared by the client, barber, and
// admin endpoints.
type AppointmentView struct {
	ID            uint      `json:"id"`
	Date          string    `json:"date"`
	Hour          string    `json:"hour"`
	EndTime       string    `json:"end_time"`
	State         string    `json:"state"`
	TotalDuration int       `json:"total_duration"`
	TotalPrice    float64   `json:"total_price"`
	Services      []string  `json:"services"`
	ClientName    string    `json:"client_name,omitempty"`
	BarberName    string    `json:"barber_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) ForClient(ctx context.Context, clientID uint) ([]AppointmentView, error) {
	apps, err := uc.repo.ListForParticipant(ctx, domain.RoleClient, clientID)
	if err != nil {
		return nil, err
	}
	return toViews(apps), nil
}

func (uc *ListAppointments) ForBarber(ctx context.Context, barberID uint) ([]AppointmentView, error) {
	apps, err := uc.repo.ListForParticipant(ctx, domain.RoleBarber, barberID)
	if err != nil {
		return nil, err
	}
	return toViews(apps), nil
}

// All is the admin view.
func (uc *ListAppointments) All(ctx context.Context, actorRole string) ([]AppointmentView, error) {
	if actorRole != models.RoleAdmin {
		return nil, httperr.ErrBusinessMsg(httperr.CodeForbidden, "admin access required")
	}
	apps, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toViews(apps), nil
}

func toViews(apps []models.Appointment) []AppointmentView {
	out := make([]AppointmentView, 0, len(apps))
	for i := range apps {
		ap := &apps[i]

		view := AppointmentView{
			ID:            ap.ID,
			Date:          ap.Date,
			Hour:          ap.Hour,
			State:         ap.State,
			TotalDuration: domain.TotalDurationMin(ap),
			TotalPrice:    ap.TotalPrice,
			CreatedAt:     ap.CreatedAt,
		}
		view.EndTime = timeutil.EndClock(ap.Hour, view.TotalDuration)
		for j := range ap.Services {
			view.Services = append(view.Services, ap.Services[j].Service.Name)
		}
		if client := domain.ClientParticipant(ap); client != nil {
			view.ClientName = client.User.Name
		}
		if barber := domain.BarberParticipant(ap); barber != nil {
			view.BarberName = barber.User.Name
		}
		out = append(out, view)
	}
	return out
}
