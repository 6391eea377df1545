package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetracker/internal/core/domain"
)

func TestCalculateDuration_Hours(t *testing.T) {
	start := time.Date(2026, 2, 13, 9, 0, 0, 0, time.UTC)

	assert.InDelta(t, 0.5, domain.CalculateDuration(start, start.Add(30*time.Minute)), 1e-9)
	assert.InDelta(t, 2.25, domain.CalculateDuration(start, start.Add(2*time.Hour+15*time.Minute)), 1e-9)
}

func TestCalculateDuration_ClampsNonPositiveIntervals(t *testing.T) {
	start := time.Date(2026, 2, 13, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 0.0, domain.CalculateDuration(start, start))
	assert.Equal(t, 0.0, domain.CalculateDuration(start, start.Add(-time.Hour)))
}

func TestCalculateDurationText_ParsesStoredForm(t *testing.T) {
	start := time.Date(2026, 2, 13, 9, 0, 0, 123456789, time.UTC)
	end := start.Add(90 * time.Minute)

	got, err := domain.CalculateDurationText(domain.FormatTimestamp(start), domain.FormatTimestamp(end))
	require.NoError(t, err)
	assert.InDelta(t, 1.5, got, 1e-9)
}

func TestCalculateDurationText_MissingEndpoint(t *testing.T) {
	got, err := domain.CalculateDurationText("", "2026-02-13T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestCalculateDurationText_InvalidValue(t *testing.T) {
	_, err := domain.CalculateDurationText("yesterday", "2026-02-13T10:00:00Z")
	require.ErrorIs(t, err, domain.ErrInvalidTimestamp)
}

func TestFormatDuration(t *testing.T) {
	cases := map[float64]string{
		0:     "0m",
		0.75:  "45m",
		2.5:   "2h 30m",
		51.5:  "2d 3h 30m",
		24:    "1d",
		0.001: "0m",
	}
	for hours, want := range cases {
		assert.Equal(t, want, domain.FormatDuration(hours), "hours=%v", hours)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "01:02:03", domain.FormatClock(time.Hour+2*time.Minute+3*time.Second))
	assert.Equal(t, "00:00:00", domain.FormatClock(-time.Second))
}

func TestHumanizeElapsed(t *testing.T) {
	assert.Equal(t, "1 hour and 1 minute", domain.HumanizeElapsed(61*time.Minute))
	assert.Equal(t, "2 hours", domain.HumanizeElapsed(2*time.Hour))
	assert.Equal(t, "5 minutes", domain.HumanizeElapsed(5*time.Minute+20*time.Second))
}

func TestTotalHours(t *testing.T) {
	tasks := []domain.Task{{Duration: 1.25}, {Duration: 0.5}, {}}
	assert.InDelta(t, 1.75, domain.TotalHours(tasks), 1e-9)
}
