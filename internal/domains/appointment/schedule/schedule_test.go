package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patitas/internal/domains/appointment/schedule"
	"patitas/shared/timezone"
)

// 2026-09-06 is a Sunday, 2026-09-07 a Monday.
var (
	sunday = time.Date(2026, time.September, 6, 12, 0, 0, 0, timezone.GetLocation())
	monday = time.Date(2026, time.September, 7, 12, 0, 0, 0, timezone.GetLocation())
)

func TestBusinessHours(t *testing.T) {
	hours := schedule.BusinessHours()

	assert.Len(t, hours, 10)
	assert.Equal(t, "08", hours[0])
	assert.Equal(t, "17", hours[len(hours)-1])
}

func TestValidHour(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"08", true},
		{"12", true},
		{"17", true},
		{"07", false},
		{"18", false},
		{"8", false},
		{"", false},
		{"ab", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, schedule.ValidHour(tt.label))
		})
	}
}

func TestParseHolidays(t *testing.T) {
	t.Run("valid dates", func(t *testing.T) {
		holidays, err := schedule.ParseHolidays([]string{"2026-12-25", "2026-01-01"})

		require.NoError(t, err)
		assert.True(t, holidays.Contains(time.Date(2026, time.December, 25, 9, 0, 0, 0, timezone.GetLocation())))
		assert.False(t, holidays.Contains(monday))
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := schedule.ParseHolidays([]string{"25-12-2026"})

		assert.Error(t, err)
	})

	t.Run("empty list", func(t *testing.T) {
		holidays, err := schedule.ParseHolidays(nil)

		require.NoError(t, err)
		assert.False(t, holidays.Contains(monday))
	})
}

func TestIsOpenDate(t *testing.T) {
	holidays, err := schedule.ParseHolidays([]string{"2026-09-08"})
	require.NoError(t, err)

	t.Run("sunday is closed", func(t *testing.T) {
		assert.False(t, schedule.IsOpenDate(sunday, holidays))
	})

	t.Run("regular weekday is open", func(t *testing.T) {
		assert.True(t, schedule.IsOpenDate(monday, holidays))
	})

	t.Run("holiday is closed", func(t *testing.T) {
		tuesday := time.Date(2026, time.September, 8, 12, 0, 0, 0, timezone.GetLocation())

		assert.False(t, schedule.IsOpenDate(tuesday, holidays))
	})
}

func TestLeadTimeCutoff(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2026, time.September, 7, hour, 30, 0, 0, timezone.GetLocation())
	}

	tests := []struct {
		name string
		now  time.Time
		lead int
		want string
	}{
		{"noon with three hours notice", at(12), 3, "15"},
		{"morning with no notice", at(8), 0, "08"},
		{"single digit result is zero padded", at(6), 1, "07"},
		{"cutoff past closing still compares", at(16), 3, "19"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schedule.LeadTimeCutoff(tt.now, tt.lead))
		})
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2026, time.September, 7, 8, 0, 0, 0, timezone.GetLocation())
	evening := time.Date(2026, time.September, 7, 23, 59, 0, 0, timezone.GetLocation())

	assert.True(t, schedule.SameDay(morning, evening))
	assert.False(t, schedule.SameDay(morning, sunday))
}

func TestNormalize(t *testing.T) {
	late := time.Date(2026, time.September, 7, 23, 45, 12, 0, timezone.GetLocation())

	normalized := schedule.Normalize(late)

	assert.Equal(t, 12, normalized.Hour())
	assert.Equal(t, 2026, normalized.Year())
	assert.Equal(t, time.September, normalized.Month())
	assert.Equal(t, 7, normalized.Day())
}

func TestParseWireDate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		parsed, err := schedule.ParseWireDate("07-09-2026")

		require.NoError(t, err)
		assert.True(t, schedule.SameDay(parsed, monday))
	})

	t.Run("iso form is rejected", func(t *testing.T) {
		_, err := schedule.ParseWireDate("2026-09-07")

		assert.Error(t, err)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := schedule.ParseWireDate("not-a-date")

		assert.Error(t, err)
	})
}

func TestParseISODate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		parsed, err := schedule.ParseISODate("2026-09-07")

		require.NoError(t, err)
		assert.True(t, schedule.SameDay(parsed, monday))
	})

	t.Run("wire form is rejected", func(t *testing.T) {
		_, err := schedule.ParseISODate("07-09-2026")

		assert.Error(t, err)
	})
}

func TestFormatDate(t *testing.T) {
	t.Run("date column readback keeps its calendar day", func(t *testing.T) {
		// A DATE value scans back as midnight UTC. In any zone west of UTC a
		// conversion would land on the previous evening and report the wrong day.
		stored := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

		assert.Equal(t, "2026-09-07", schedule.FormatDate(stored))
	})

	t.Run("noon-anchored value keeps its calendar day", func(t *testing.T) {
		buenosAires := time.FixedZone("-03", -3*60*60)
		anchored := time.Date(2026, time.September, 7, 12, 0, 0, 0, buenosAires)

		assert.Equal(t, "2026-09-07", schedule.FormatDate(anchored))
	})
}

func TestFreeHours(t *testing.T) {
	t.Run("nothing occupied", func(t *testing.T) {
		assert.Equal(t, schedule.BusinessHours(), schedule.FreeHours(nil))
	})

	t.Run("occupied hours are excluded", func(t *testing.T) {
		free := schedule.FreeHours([]string{"08", "10", "17"})

		assert.Equal(t, []string{"09", "11", "12", "13", "14", "15", "16"}, free)
	})

	t.Run("fully booked", func(t *testing.T) {
		assert.Empty(t, schedule.FreeHours(schedule.BusinessHours()))
	})
}
