package timeutil

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"

	// MinutesPerDay is the exclusive upper bound for a minute-of-day value.
	MinutesPerDay = 1440
)

var clockRe = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

var dayNames = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// ValidClock reports whether s is a 24-hour "HH:mm" value.
func ValidClock(s string) bool {
	return clockRe.MatchString(s)
}

// ToMinutes converts "HH:mm" (or "HH:mm:ss", seconds ignored) to minutes
// since midnight. Malformed input yields 0.
func ToMinutes(s string) int {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}

// ToEndMinutes is ToMinutes for the end boundary of a working-hours window:
// a literal "00:00" means end of day (1440), not start of day. Break and
// appointment times never go through this.
func ToEndMinutes(s string) int {
	m := ToMinutes(s)
	if m == 0 {
		return MinutesPerDay
	}
	return m
}

// ToClock converts minutes since midnight back to "HH:mm".
func ToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// EndClock returns the "HH:mm" instant durationMin minutes after start.
func EndClock(start string, durationMin int) string {
	return ToClock(ToMinutes(start) + durationMin)
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// DayName returns the English weekday name for 0=Sunday..6=Saturday.
func DayName(dayOfWeek int) string {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return ""
	}
	return dayNames[dayOfWeek]
}

// ParseDate parses a "YYYY-MM-DD" calendar day. The result carries no
// timezone meaning; only the calendar fields are used.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ValidDate reports whether s is a well-formed "YYYY-MM-DD" day.
func ValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// DayOfWeek returns 0=Sunday..6=Saturday for a "YYYY-MM-DD" day, or -1 for
// malformed input.
func DayOfWeek(date string) int {
	t, err := ParseDate(date)
	if err != nil {
		return -1
	}
	return int(t.Weekday())
}

// Today returns the current calendar day in the server's local zone.
func Today() string {
	return time.Now().Format(DateLayout)
}

// SlotLockKey derives the advisory-lock key pair for one resource at one
// slot instant. The first key identifies the resource, the second encodes
// date and time, so two slots collide only if the resource hashes collide
// at the exact same instant.
func SlotLockKey(resourceID uint, date, hour string) (int32, int32) {
	h := fnv.New32a()
	h.Write([]byte(strconv.FormatUint(uint64(resourceID), 10)))
	key1 := int32(h.Sum32())

	days := 0
	if t, err := ParseDate(date); err == nil {
		days = int(t.Unix() / 86400)
	}
	key2 := int32(days*MinutesPerDay + ToMinutes(hour))

	return key1, key2
}
