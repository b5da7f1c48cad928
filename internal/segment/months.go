// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"regexp"
	"strconv"
	"strings"
)

// monthNames lists the calendar months in order. It and the patterns below
// are built once at package initialization and never modified.
var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var (
	monthIndex = func() map[string]int {
		m := make(map[string]int, len(monthNames))
		for i, name := range monthNames {
			m[strings.ToLower(name)] = i + 1
		}
		return m
	}()

	monthAlternation = strings.Join(monthNames[:], "|")

	// datePattern matches a whole block such as "January 1st" or "march 22ND".
	datePattern = regexp.MustCompile(
		`(?i)^(` + monthAlternation + `)\s+([1-9]|[12][0-9]|3[01])(st|nd|rd|th)$`)

	// monthWord finds a capitalized month name as a whole word. Lower-case
	// "may" in running text must not count.
	monthWord = regexp.MustCompile(`\b(` + monthAlternation + `)\b`)
)

// IsMonthName reports whether s, trimmed, is exactly a month name in any case.
func IsMonthName(s string) bool {
	_, ok := monthIndex[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// IsDate reports whether the block is a complete "Month Day<suffix>" date.
func IsDate(block string) bool {
	return datePattern.MatchString(strings.TrimSpace(block))
}

// ParseDate splits a date block into its month (1-12) and day. ok is false
// when the block is not a date.
func ParseDate(block string) (month, day int, ok bool) {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(block))
	if m == nil {
		return 0, 0, false
	}
	day, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, false
	}
	return monthIndex[strings.ToLower(m[1])], day, true
}

// MonthName returns the month's name for 1-12, or "" out of range.
func MonthName(month int) string {
	if month < 1 || month > len(monthNames) {
		return ""
	}
	return monthNames[month-1]
}

// MonthNumber returns 1-12 for a month name in any case, or 0.
func MonthNumber(name string) int {
	return monthIndex[strings.ToLower(strings.TrimSpace(name))]
}

// mentionsMonth reports whether a month name occurs anywhere in s.
func mentionsMonth(s string) bool {
	return monthWord.MatchString(s)
}

// isParenthetical reports whether block contains "(" with a month name
// somewhere after it, the shape of a provenance note like
// "(Letter to Raffaelina, 3 March 1915)".
func isParenthetical(block string) bool {
	i := strings.IndexByte(block, '(')
	if i < 0 {
		return false
	}
	return mentionsMonth(block[i+1:])
}
