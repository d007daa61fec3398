package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aic/aic/internal/model1"
)

// ToAge converts time to human-readable duration
func ToAge(t *time.Time) string {
	if t == nil || t.IsZero() {
		return UnknownValue
	}
	return HumanDuration(time.Since(*t))
}

// HumanDuration converts duration to human readable format (e.g., "5d", "3h", "2m")
func HumanDuration(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}

	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 365 {
		return fmt.Sprintf("%dy", days/365)
	}
	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh", hours)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%ds", seconds)
}

// Missing returns MissingValue if string is empty
func Missing(s string) string {
	if s == "" {
		return MissingValue
	}
	return s
}

// NA returns NAValue if string is empty
func NA(s string) string {
	if s == "" {
		return NAValue
	}
	return s
}

// BoolToYesNo converts bool to Yes/No string
func BoolToYesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// FormatSize formats bytes to human readable format
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// Truncate truncates a string to max length
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// JoinStrings joins strings with separator, skipping empty ones
func JoinStrings(sep string, ss ...string) string {
	var parts []string
	for _, s := range ss {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

// Humanize turns a backend status such as "pending-for-input" into
// "Pending for input".
func Humanize(s string) string {
	if s == "" {
		return NAValue
	}
	s = strings.ReplaceAll(s, "-", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}

// Text returns a string cell sorting by its display value.
func Text(s string) model1.Cell {
	return model1.Cell{Display: s}
}

// Count returns a number cell.
func Count(n int) model1.Cell {
	return model1.Cell{Display: strconv.Itoa(n), Key: n}
}

// Bytes returns a cell displaying human bytes and sorting by size.
func Bytes(n int64) model1.Cell {
	if n <= 0 {
		return model1.Cell{Display: NAValue, Key: int64(0)}
	}
	return model1.Cell{Display: FormatSize(n), Key: n}
}

// Age returns a cell displaying the age of t and sorting by t. Unknown
// times sort first.
func Age(t *time.Time) model1.Cell {
	if t == nil || t.IsZero() {
		return model1.Cell{Display: UnknownValue, Key: time.Time{}}
	}
	return model1.Cell{Display: ToAge(t), Key: *t}
}
