package support

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dcastillo-dev/barberbook/internal/httperr"
	"github.com/dcastillo-dev/barberbook/internal/models"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, userID uint, subject, message string) (*models.SupportTicket, error) {
	ticket := models.SupportTicket{
		UserID:  userID,
		Subject: subject,
		Message: message,
		Status:  models.TicketOpen,
	}
	if err := s.db.WithContext(ctx).Create(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *Service) ListForUser(ctx context.Context, userID uint) ([]models.SupportTicket, error) {
	var tickets []models.SupportTicket
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error
	return tickets, err
}

func (s *Service) ListAll(ctx context.Context) ([]models.SupportTicket, error) {
	var tickets []models.SupportTicket
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&tickets).Error
	return tickets, err
}

var validTransitions = map[string][]string{
	models.TicketOpen:       {models.TicketInProgress, models.TicketClosed},
	models.TicketInProgress: {models.TicketClosed},
}

// UpdateStatus moves a ticket forward: open -> in_progress -> closed.
func (s *Service) UpdateStatus(ctx context.Context, ticketID uint, status string) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	err := s.db.WithContext(ctx).First(&ticket, ticketID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "ticket not found")
	}
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range validTransitions[ticket.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, httperr.ErrBusinessMsg(httperr.CodeInvalidState,
			"cannot move ticket from "+ticket.Status+" to "+status)
	}

	ticket.Status = status
	if err := s.db.WithContext(ctx).Save(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}
