package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		end    time.Time
		want   int
		wantOK bool
	}{
		{"two nights", date(2024, 1, 1), date(2024, 1, 3), 2, true},
		{"one night", date(2024, 1, 1), date(2024, 1, 2), 1, true},
		{"same day invalid", date(2024, 1, 1), date(2024, 1, 1), 0, false},
		{"inverted invalid", date(2024, 1, 3), date(2024, 1, 1), 0, false},
		{"zero start invalid", time.Time{}, date(2024, 1, 3), 0, false},
		{"month boundary", date(2024, 1, 31), date(2024, 2, 2), 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Nights(tt.start, tt.end)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNightsIgnoresTimeOfDay(t *testing.T) {
	checkIn := time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)
	checkOut := time.Date(2024, 6, 4, 1, 15, 0, 0, time.UTC)

	nights, ok := Nights(checkIn, checkOut)
	assert.True(t, ok)
	assert.Equal(t, 3, nights)
}

func TestDaysInclusive(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		end    time.Time
		want   int
		wantOK bool
	}{
		{"three days", date(2024, 1, 1), date(2024, 1, 3), 3, true},
		{"same day is one", date(2024, 1, 1), date(2024, 1, 1), 1, true},
		{"inverted invalid", date(2024, 1, 3), date(2024, 1, 1), 0, false},
		{"zero end invalid", date(2024, 1, 1), time.Time{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DaysInclusive(tt.start, tt.end)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
