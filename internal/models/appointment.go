package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Calendar day ("YYYY-MM-DD") and start time ("HH:mm"), both naive
	// local values. The pair, not a timestamp, is the booking instant.
	Date string `gorm:"size:10;index;not null" json:"date"`
	Hour string `gorm:"size:5;not null" json:"hour"`

	State string `gorm:"size:20;default:'scheduled'" json:"state"`

	TotalPrice float64 `json:"total_price"`

	Services     []AppointmentService     `gorm:"constraint:OnDelete:CASCADE;" json:"services"`
	Participants []AppointmentParticipant `gorm:"constraint:OnDelete:CASCADE;" json:"participants"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AppointmentService struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `json:"service"`

	CreatedAt time.Time `json:"created_at"`
}

// AppointmentParticipant rows are immutable: an appointment keeps the same
// client and barber for its whole life, rescheduling moves only date/hour.
type AppointmentParticipant struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `json:"user"`

	Role string `gorm:"size:10;not null" json:"role"`

	CreatedAt time.Time `json:"created_at"`
}
