package appointment

type AvailabilityInput struct {
	BarberID    uint
	StartDate   string // "YYYY-MM-DD", inclusive
	EndDate     string // "YYYY-MM-DD", inclusive
	SlotMinutes int
}

type Slot struct {
	Time          string `json:"time"`
	Available     bool   `json:"available"`
	AppointmentID uint   `json:"appointment_id,omitempty"`
}

type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type BreakWindow struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Reason string `json:"reason,omitempty"`
}

type DayAvailability struct {
	Date         string        `json:"date"`
	DayOfWeek    int           `json:"day_of_week"`
	DayName      string        `json:"day_name"`
	IsWorkDay    bool          `json:"is_work_day"`
	WorkingHours *TimeWindow   `json:"working_hours"`
	Breaks       []BreakWindow `json:"breaks"`
	Slots        []Slot        `json:"slots"`
}

type BarberAvailability struct {
	BarberID            uint              `json:"barber_id"`
	BarberName          string            `json:"barber_name"`
	SlotDurationMinutes int               `json:"slot_duration_minutes"`
	Availability        []DayAvailability `json:"availability"`
}
