package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Capitalize first letter
	if len(message) > 0 {
		message = strings.ToUpper(message[:1]) + message[1:]
	}
	return color.New(color.FgRed).Sprintf("❌ %s", message)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// TruncateAddress shortens an address to 0x1234…abcd
func TruncateAddress(addr common.Address) string {
	hex := addr.Hex()
	return hex[:6] + "…" + hex[len(hex)-4:]
}

// TimeRemaining renders the time left until deadline, or "Ended"
func TimeRemaining(deadline, now time.Time) string {
	left := deadline.Sub(now)
	if left <= 0 {
		return "Ended"
	}

	days := int(left.Hours()) / 24
	hours := int(left.Hours()) % 24
	minutes := int(left.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh left", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm left", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm left", minutes)
	}
	return "less than a minute left"
}

// TimeAgo renders how long ago t was, relative to now
func TimeAgo(t, now time.Time) string {
	since := now.Sub(t)
	switch {
	case since < time.Minute:
		return "just now"
	case since < time.Hour:
		return plural(int(since.Minutes()), "minute") + " ago"
	case since < 24*time.Hour:
		return plural(int(since.Hours()), "hour") + " ago"
	case since < 30*24*time.Hour:
		return plural(int(since.Hours())/24, "day") + " ago"
	}
	return t.Format("2006-01-02")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// unixTime converts a contract timestamp in seconds
func unixTime(seconds uint64) time.Time {
	return time.Unix(int64(seconds), 0)
}

// titleCase renders phase and action names for display
func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}
