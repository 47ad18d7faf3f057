package models

import "time"

// WeeklySchedule is a barber's recurring working window for one weekday.
// At most one row per (barber, day_of_week) is kept current; upserts update
// the existing row instead of duplicating it.
type WeeklySchedule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index" json:"barber_id"`

	DayOfWeek int `json:"day_of_week"` // 0=Sunday .. 6=Saturday

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DateOverride supersedes the weekly schedule's work/non-work decision for
// one exact date. On a working override the break list is authoritative and
// the hours window still comes from the weekly schedule.
type DateOverride struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index" json:"barber_id"`

	Date      string `gorm:"size:10;index" json:"date"` // "YYYY-MM-DD"
	IsWorkDay bool   `json:"is_work_day"`
	Note      string `gorm:"size:255" json:"note"`

	Breaks []Break `gorm:"constraint:OnDelete:CASCADE;" json:"breaks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Break intervals belong to exactly one DateOverride and are always replaced
// wholesale when the override is updated.
type Break struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	DateOverrideID uint `gorm:"index" json:"date_override_id"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Reason    string `gorm:"size:100" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
