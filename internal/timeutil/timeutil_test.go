package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidClock(t *testing.T) {
	valid := []string{"00:00", "09:30", "9:30", "23:59", "12:05"}
	for _, s := range valid {
		assert.True(t, ValidClock(s), s)
	}

	invalid := []string{"", "24:00", "12:60", "12", "12:5", "ab:cd", "12:30:00"}
	for _, s := range invalid {
		assert.False(t, ValidClock(s), s)
	}
}

func TestToMinutes(t *testing.T) {
	assert.Equal(t, 0, ToMinutes("00:00"))
	assert.Equal(t, 570, ToMinutes("09:30"))
	assert.Equal(t, 1439, ToMinutes("23:59"))
	assert.Equal(t, 570, ToMinutes("09:30:00"), "seconds are ignored")
	assert.Equal(t, 0, ToMinutes("garbage"))
}

func TestToEndMinutes(t *testing.T) {
	assert.Equal(t, MinutesPerDay, ToEndMinutes("00:00"), "midnight end means end of day")
	assert.Equal(t, 1080, ToEndMinutes("18:00"))
}

func TestToClockRoundTrip(t *testing.T) {
	assert.Equal(t, "09:30", ToClock(570))
	assert.Equal(t, "00:00", ToClock(0))
	assert.Equal(t, "10:15", EndClock("09:30", 45))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     int
		want                           bool
	}{
		{"disjoint", 60, 120, 180, 240, false},
		{"touching is not overlap", 60, 120, 120, 180, false},
		{"partial", 60, 120, 90, 180, true},
		{"contained", 60, 240, 90, 120, true},
		{"identical", 60, 120, 60, 120, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd), "must be symmetric")
		})
	}
}

func TestDayOfWeek(t *testing.T) {
	assert.Equal(t, 1, DayOfWeek("2030-01-07"), "a Monday")
	assert.Equal(t, 0, DayOfWeek("2030-01-06"), "a Sunday")
	assert.Equal(t, -1, DayOfWeek("not-a-date"))

	assert.Equal(t, "Monday", DayName(1))
	assert.Equal(t, "", DayName(7))
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2030-01-07"))
	assert.False(t, ValidDate("2030-13-01"))
	assert.False(t, ValidDate("07/01/2030"))
}

func TestSlotLockKey(t *testing.T) {
	k1a, k2a := SlotLockKey(7, "2030-01-07", "10:00")
	k1b, k2b := SlotLockKey(7, "2030-01-07", "10:00")
	assert.Equal(t, k1a, k1b, "keys are deterministic")
	assert.Equal(t, k2a, k2b)

	_, k2c := SlotLockKey(7, "2030-01-07", "10:30")
	assert.NotEqual(t, k2a, k2c, "different instants get different keys")

	_, k2d := SlotLockKey(7, "2030-01-08", "10:00")
	assert.NotEqual(t, k2a, k2d, "different dates get different keys")

	k1e, _ := SlotLockKey(8, "2030-01-07", "10:00")
	assert.NotEqual(t, k1a, k1e, "different resources hash apart")
}
