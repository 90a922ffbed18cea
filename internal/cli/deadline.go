package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
)

var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDeadline accepts a relative duration ("30d", "36h", "1d12h"), an
// absolute local date or time, or unix seconds
func parseDeadline(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, nil
	}

	if d, ok := parseDays(input); ok {
		return now.Add(d), nil
	}
	if secs, err := strconv.ParseInt(input, 10, 64); err == nil {
		return time.Unix(secs, 0), nil
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, input, now.Location()); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &domain.ValidationError{
		Field:   "deadline",
		Message: "invalid deadline: use a duration like 30d or 36h, a date like 2026-12-31, or RFC3339",
	}
}

// parseDays parses a Go duration with an optional leading day count
func parseDays(input string) (time.Duration, bool) {
	var days time.Duration
	rest := input
	if i := strings.IndexByte(input, 'd'); i > 0 {
		n, err := strconv.Atoi(input[:i])
		if err != nil {
			return 0, false
		}
		days = time.Duration(n) * 24 * time.Hour
		rest = input[i+1:]
	}
	if rest == "" {
		return days, days > 0
	}
	d, err := time.ParseDuration(rest)
	if err != nil {
		return 0, false
	}
	return days + d, true
}
