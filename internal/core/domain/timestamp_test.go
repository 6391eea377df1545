package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetracker/internal/core/domain"
)

func TestTimestamp_RoundTripIsLossless(t *testing.T) {
	zone := time.FixedZone("CEST", 2*3600)
	instant := time.Date(2026, 6, 1, 23, 59, 59, 987654321, zone)

	text := domain.FormatTimestamp(instant)
	assert.Equal(t, "2026-06-01T23:59:59.987654321+02:00", text)

	parsed, err := domain.ParseTimestamp(text)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(instant))
}

func TestTimestamp_PrefixIsLocalDate(t *testing.T) {
	zone := time.FixedZone("PST", -8*3600)
	instant := time.Date(2026, 3, 4, 22, 0, 0, 0, zone)

	assert.Equal(t, domain.FormatDate(instant), domain.FormatTimestamp(instant)[:10])
}

func TestParseTimestamp_AcceptsHandTypedValues(t *testing.T) {
	for _, value := range []string{
		"2026-02-13T09:30:00",
		"2026-02-13 09:30:00",
		"2026-02-13T09:30:00.250000",
		"2026-02-13 09:30",
	} {
		parsed, err := domain.ParseTimestamp(value)
		require.NoError(t, err, value)
		assert.Equal(t, 9, parsed.Hour(), value)
		assert.Equal(t, 30, parsed.Minute(), value)
	}
}

func TestParseTimestamp_Rejects(t *testing.T) {
	_, err := domain.ParseTimestamp("")
	require.ErrorIs(t, err, domain.ErrInvalidTimestamp)

	_, err = domain.ParseTimestamp("13/02/2026")
	require.ErrorIs(t, err, domain.ErrInvalidTimestamp)
}

func TestNormalizeIssueKey(t *testing.T) {
	key, err := domain.NormalizeIssueKey(" proj-12 ", "")
	require.NoError(t, err)
	require.NotNil(t, key)
	assert.Equal(t, "PROJ-12", *key)

	key, err = domain.NormalizeIssueKey("", "WPM-")
	require.NoError(t, err)
	assert.Nil(t, key)

	_, err = domain.NormalizeIssueKey("PROJ-12", "WPM-")
	require.ErrorIs(t, err, domain.ErrInvalidTask)

	_, err = domain.NormalizeIssueKey("not a key", "")
	require.ErrorIs(t, err, domain.ErrInvalidTask)
}

func TestTaskUpdate_IsEmptyAndApply(t *testing.T) {
	assert.True(t, domain.TaskUpdate{}.IsEmpty())

	duration := 2.5
	update := domain.TaskUpdate{Duration: &duration, EndTimeSet: true}
	assert.False(t, update.IsEmpty())

	end := time.Now()
	task := domain.Task{ID: 1, Name: "Write report", Duration: 1, EndTime: &end}
	got := update.Apply(task)
	assert.Equal(t, 2.5, got.Duration)
	assert.Nil(t, got.EndTime)
	assert.Equal(t, "Write report", got.Name)
}
