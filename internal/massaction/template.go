package massaction

import (
	"regexp"
	"strconv"
	"strings"
)

var counterRX = regexp.MustCompile(`{{n+}}`)

// ApplyTemplate replaces every counter placeholder ({{n}}, {{nn}}, ...) in
// tpl with n.
func ApplyTemplate(tpl string, n int) string {
	return counterRX.ReplaceAllLiteralString(tpl, strconv.Itoa(n))
}

// HasCounter returns true if tpl holds at least one counter placeholder.
func HasCounter(tpl string) bool {
	return counterRX.MatchString(tpl)
}

func isBlank(tpl string) bool {
	return strings.TrimSpace(tpl) == ""
}
