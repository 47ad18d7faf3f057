package models

import "time"

const (
	NotifyAppointmentCreated     = "appointment_created"
	NotifyAppointmentRescheduled = "appointment_rescheduled"
	NotifyAppointmentCancelled   = "appointment_cancelled"
)

// Notification is one delivery to one user; booking events produce a row
// per participant.
type Notification struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index" json:"user_id"`

	AppointmentID uint   `gorm:"index" json:"appointment_id"`
	Type          string `gorm:"size:40;not null" json:"type"`
	Message       string `gorm:"size:500" json:"message"`
	Read          bool   `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}
