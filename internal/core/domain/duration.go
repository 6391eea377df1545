package domain

import (
	"fmt"
	"strings"
	"time"
)

// CalculateDuration returns the hours between start and end. Intervals that
// are zero or negative (clock changes) count as zero.
func CalculateDuration(start, end time.Time) float64 {
	elapsed := end.Sub(start)
	if elapsed <= 0 {
		return 0
	}
	return elapsed.Seconds() / 3600
}

// CalculateDurationText is CalculateDuration over the text form of both
// endpoints. A missing endpoint yields zero.
func CalculateDurationText(start, end string) (float64, error) {
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return 0, nil
	}

	startTime, err := ParseTimestamp(start)
	if err != nil {
		return 0, err
	}
	endTime, err := ParseTimestamp(end)
	if err != nil {
		return 0, err
	}

	return CalculateDuration(startTime, endTime), nil
}

func TotalHours(tasks []Task) float64 {
	total := 0.0
	for _, task := range tasks {
		total += task.Duration
	}
	return total
}

// FormatDuration renders hours as "2d 3h 30m", dropping zero parts.
func FormatDuration(hours float64) string {
	if hours <= 0 {
		return "0m"
	}

	days := int(hours / 24)
	remaining := hours - float64(days)*24
	wholeHours := int(remaining)
	minutes := int((remaining - float64(wholeHours)) * 60)

	parts := make([]string, 0, 3)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if wholeHours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", wholeHours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if len(parts) == 0 {
		return "0m"
	}

	return strings.Join(parts, " ")
}

// FormatClock renders elapsed time as HH:MM:SS.
func FormatClock(elapsed time.Duration) string {
	total := int64(elapsed / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// HumanizeElapsed renders elapsed time as "1 hour and 5 minutes".
func HumanizeElapsed(elapsed time.Duration) string {
	total := int64(elapsed / time.Second)
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60

	if hours > 0 {
		text := fmt.Sprintf("%d %s", hours, plural(hours, "hour", "hours"))
		if minutes > 0 {
			text += fmt.Sprintf(" and %d %s", minutes, plural(minutes, "minute", "minutes"))
		}
		return text
	}
	return fmt.Sprintf("%d %s", minutes, plural(minutes, "minute", "minutes"))
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
