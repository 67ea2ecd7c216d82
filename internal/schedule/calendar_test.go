package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/leaseflow/billing-engine/pkg/errors"
)

func TestDueDateIn(t *testing.T) {
	tests := []struct {
		name       string
		year       int
		month      time.Month
		paymentDay int
		expected   time.Time
	}{
		{
			name:       "exact day in a long month",
			year:       2024,
			month:      time.January,
			paymentDay: 15,
			expected:   time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "day 30 in leap-year February clamps to the 29th",
			year:       2024,
			month:      time.February,
			paymentDay: 30,
			expected:   time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "day 30 in non-leap February clamps to the 28th",
			year:       2023,
			month:      time.February,
			paymentDay: 30,
			expected:   time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "day 29 in non-leap February clamps to the 28th",
			year:       2023,
			month:      time.February,
			paymentDay: 29,
			expected:   time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "day 29 in leap-year February stays on the 29th",
			year:       2024,
			month:      time.February,
			paymentDay: 29,
			expected:   time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "day 30 in a 31-day month resolves to the last day",
			year:       2024,
			month:      time.August,
			paymentDay: 30,
			expected:   time.Date(2024, time.August, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "day 30 in a 30-day month resolves to the 30th",
			year:       2023,
			month:      time.September,
			paymentDay: 30,
			expected:   time.Date(2023, time.September, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "day 31 in a 30-day month resolves to the 30th",
			year:       2024,
			month:      time.April,
			paymentDay: 31,
			expected:   time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DueDateIn(tt.year, tt.month, tt.paymentDay)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2023, time.February))
	assert.Equal(t, 28, DaysInMonth(2100, time.February)) // century, not leap
	assert.Equal(t, 29, DaysInMonth(2000, time.February)) // 400-year rule
	assert.Equal(t, 31, DaysInMonth(2024, time.December))
	assert.Equal(t, 30, DaysInMonth(2024, time.November))
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-02-29")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseDate("2024-13-01")
	assert.ErrorIs(t, err, apperrors.ErrInvalidDate)

	_, err = ParseDate("not a date")
	assert.ErrorIs(t, err, apperrors.ErrInvalidDate)
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	stamped := time.Date(2024, time.March, 10, 23, 45, 12, 999, loc)

	assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), DateOnly(stamped))
}
