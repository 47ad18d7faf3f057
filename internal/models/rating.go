package models

import "time"

// Rating is submitted by the client of a completed appointment, once.
type Rating struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"uniqueIndex:idx_rating_once" json:"appointment_id"`
	ClientID      uint `gorm:"uniqueIndex:idx_rating_once" json:"client_id"`
	BarberID      uint `gorm:"index" json:"barber_id"`

	Score   int    `json:"score"` // 1..5
	Comment string `gorm:"size:500" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}
