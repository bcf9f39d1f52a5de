// Package schedule holds the salon calendar rules: which dates are open for
// grooming, which hours exist on the daily timeline, and how much notice a
// same-day reservation needs. Everything here is pure; "now" always comes in
// as a parameter so callers decide the clock.
package schedule

import (
	"fmt"
	"slices"
	"time"

	"patitas/shared/constant"
	"patitas/shared/failure"
	"patitas/shared/timezone"
)

// The salon takes one appointment per hour, ten hours a day. Hours travel as
// zero-padded two-character labels ("08" .. "17"), never integers, so "9" and
// "09" can never diverge between storage and display.
var businessHours = []string{"08", "09", "10", "11", "12", "13", "14", "15", "16", "17"}

// BusinessHours returns the ordered hour labels of a working day.
func BusinessHours() []string {
	return slices.Clone(businessHours)
}

// ValidHour reports whether label is one of the salon's bookable hours.
func ValidHour(label string) bool {
	return slices.Contains(businessHours, label)
}

// Holidays is the set of closed calendar dates, keyed by ISO date in the app
// timezone. The table is loaded from configuration, not compiled in.
type Holidays map[string]struct{}

// ParseHolidays builds the holiday table from ISO date strings (YYYY-MM-DD).
func ParseHolidays(dates []string) (Holidays, error) {
	holidays := make(Holidays, len(dates))

	for _, date := range dates {
		parsed, err := timezone.Parse(constant.ISODateFormat, date)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", date, err)
		}

		holidays[parsed.Format(constant.ISODateFormat)] = struct{}{}
	}

	return holidays, nil
}

// Contains reports whether the date falls on a configured holiday.
func (h Holidays) Contains(date time.Time) bool {
	_, ok := h[timezone.ToAppTime(date).Format(constant.ISODateFormat)]

	return ok
}

// IsOpenDate reports whether the salon takes appointments on the given date:
// any weekday except Sunday that is not a holiday.
func IsOpenDate(date time.Time, holidays Holidays) bool {
	if timezone.ToAppTime(date).Weekday() == time.Sunday {
		return false
	}

	return !holidays.Contains(date)
}

// LeadTimeCutoff returns the earliest hour label a client may book on the day
// of `now` itself: the current hour plus the configured lead. Labels compare
// lexicographically because they are zero-padded, so callers filter with a
// plain `hour < cutoff`.
func LeadTimeCutoff(now time.Time, leadHours int) string {
	return fmt.Sprintf("%02d", timezone.ToAppTime(now).Hour()+leadHours)
}

// SameDay reports whether two instants fall on the same calendar date in the
// app timezone.
func SameDay(a, b time.Time) bool {
	a, b = timezone.ToAppTime(a), timezone.ToAppTime(b)
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}

// Normalize anchors a calendar date at 12:00 in the app timezone. Storing the
// slot date at noon keeps it on the same civil day however it is later
// converted, so (date, hour) comparisons never drift across a midnight
// boundary.
func Normalize(date time.Time) time.Time {
	local := timezone.ToAppTime(date)

	return time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, timezone.GetLocation())
}

// ParseWireDate parses the DD-MM-YYYY form used by availability queries and
// list filters, normalized to the noon anchor.
func ParseWireDate(value string) (time.Time, error) {
	parsed, err := timezone.Parse(constant.WireDateFormat, value)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString(fmt.Sprintf("invalid date %q, expected DD-MM-YYYY", value)) //nolint:wrapcheck
	}

	return Normalize(parsed), nil
}

// ParseISODate parses the YYYY-MM-DD form used by creation payloads,
// normalized to the noon anchor.
func ParseISODate(value string) (time.Time, error) {
	parsed, err := timezone.Parse(constant.ISODateFormat, value)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value)) //nolint:wrapcheck
	}

	return Normalize(parsed), nil
}

// FormatDate renders a slot date as its ISO civil day. Slot dates arrive
// noon-anchored in the app zone and come back from the DATE column as
// midnight UTC; both carry the correct calendar day in their own location,
// and a zone conversion is exactly what would lose a day. Format in place.
func FormatDate(date time.Time) string {
	return date.Format(constant.ISODateFormat)
}

// FreeHours returns the business hours not present in occupied, ascending.
func FreeHours(occupied []string) []string {
	free := make([]string, 0, len(businessHours))

	for _, hour := range businessHours {
		if !slices.Contains(occupied, hour) {
			free = append(free, hour)
		}
	}

	return free
}
