package utils

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var countPrinter = message.NewPrinter(language.English)

func FormatReadable(value float64, digits uint64) string {
	digitsStr := fmt.Sprintf("%d", digits)
	if value >= 1000000000 {
		return fmt.Sprintf("%."+digitsStr+"fG", value/1000000000)
	} else if value >= 1000000 {
		return fmt.Sprintf("%."+digitsStr+"fM", value/1000000)
	} else if value >= 1000 {
		return fmt.Sprintf("%."+digitsStr+"fK", value/1000)
	}
	return fmt.Sprintf("%.1f", value)
}

// FormatBytes renders a byte count with binary units, e.g. 1.5 MiB.
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := int64(n) / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// FormatCount groups digits: 1234567 -> 1,234,567.
func FormatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

// FormatShortCount keeps small counts exact and abbreviates the rest: 1234 -> 1.2K.
func FormatShortCount(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return FormatReadable(float64(n), 1)
}

// FormatInterval renders a millisecond offset as +M:SS.mmm. Minutes are not
// wrapped into hours.
func FormatInterval(deltaMs int64) string {
	sign := '+'
	if deltaMs < 0 {
		deltaMs = -deltaMs
		sign = '-'
	}
	ms := deltaMs % 1000
	totalSeconds := deltaMs / 1000
	return fmt.Sprintf("%c%d:%02d.%03d", sign, totalSeconds/60, totalSeconds%60, ms)
}

// TimestampLayout is ISO-8601 with milliseconds in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders Unix milliseconds as an ISO-8601 UTC timestamp.
func FormatTimestamp(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(TimestampLayout)
}
