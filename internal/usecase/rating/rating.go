package rating

import (
	"context"
	"errors"

	"gorm.io/gorm"

	dbpkg "github.com/dcastillo-dev/barberbook/internal/db"
	domain "github.com/dcastillo-dev/barberbook/internal/domain/appointment"
	"github.com/dcastillo-dev/barberbook/internal/httperr"
	"github.com/dcastillo-dev/barberbook/internal/models"
)

type Service struct {
	db   *gorm.DB
	repo domain.Repository
}

func NewService(db *gorm.DB, repo domain.Repository) *Service {
	return &Service{db: db, repo: repo}
}

type CreateInput struct {
	AppointmentID uint
	Score         int
	Comment       string
}

// Create records the client's rating for a completed appointment. The
// unique index on (appointment, client) backs the once-only rule.
func (s *Service) Create(ctx context.Context, clientID uint, in CreateInput) (*models.Rating, error) {
	if in.Score < 1 || in.Score > 5 {
		return nil, httperr.ErrBusinessMsg(httperr.CodeInvalidState,
			"score must be between 1 and 5")
	}

	ap, err := s.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	client := domain.ClientParticipant(ap)
	if client == nil || client.UserID != clientID {
		return nil, httperr.ErrBusinessMsg(httperr.CodeForbidden,
			"only the client can rate this appointment")
	}
	if domain.Status(ap.State) != domain.StatusCompleted {
		return nil, httperr.ErrBusinessMsg(httperr.CodeInvalidState,
			"only completed appointments can be rated")
	}

	barber := domain.BarberParticipant(ap)

	rating := models.Rating{
		AppointmentID: ap.ID,
		ClientID:      clientID,
		BarberID:      barber.UserID,
		Score:         in.Score,
		Comment:       in.Comment,
	}
	if err := s.db.WithContext(ctx).Create(&rating).Error; err != nil {
		if dbpkg.IsUniqueViolation(err) {
			return nil, httperr.ErrBusinessMsg(httperr.CodeInvalidState,
				"appointment is already rated")
		}
		return nil, err
	}
	return &rating, nil
}

type BarberRatings struct {
	BarberID uint            `json:"barber_id"`
	Average  float64         `json:"average"`
	Count    int             `json:"count"`
	Ratings  []models.Rating `json:"ratings"`
}

func (s *Service) ForBarber(ctx context.Context, barberID uint) (*BarberRatings, error) {
	var barber models.User
	err := s.db.WithContext(ctx).
		Where("id = ? AND role = ?", barberID, models.RoleBarber).
		First(&barber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "barber not found")
	}
	if err != nil {
		return nil, err
	}

	var ratings []models.Rating
	if err := s.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		return nil, err
	}

	out := &BarberRatings{BarberID: barberID, Count: len(ratings), Ratings: ratings}
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r.Score
		}
		out.Average = float64(sum) / float64(len(ratings))
	}
	return out, nil
}
