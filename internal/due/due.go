// Package due resolves natural-language due-date expressions against a
// caller-supplied reference instant. Resolution never reads a clock, so the
// same input and reference always produce the same date.
package due

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"pm-cli/internal/model"
)

// UnparseableDateError reports input no recognizer matched.
type UnparseableDateError struct {
	Input string
}

func (e UnparseableDateError) Error() string {
	return fmt.Sprintf("unrecognized due date: %q (try YYYY-MM-DD, \"today\", \"next friday\", or \"in 2w\")", e.Input)
}

var reOffset = regexp.MustCompile(`^in\s+(\d+)\s*([dwm])$`)

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

// Resolve maps a textual due-date expression to an absolute date relative to
// now. Recognized forms, in priority order: explicit YYYY-MM-DD; offsets
// "in Nd" / "in Nw" / "in Nm" (months approximate to 30 days); named relatives
// (today, tomorrow, yesterday, weekday names with optional "this"/"next",
// "this weekend", "end of week", "end of month"); and finally other common
// absolute formats via dateparse.
func Resolve(text string, now time.Time) (model.Date, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return "", UnparseableDateError{Input: text}
	}
	today := model.DateOf(now)

	if d, err := model.ParseDate(s); err == nil {
		return d, nil
	}

	if m := reOffset.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return "", UnparseableDateError{Input: text}
		}
		switch m[2] {
		case "d":
			return today.AddDays(n), nil
		case "w":
			return today.AddDays(n * 7), nil
		case "m":
			return today.AddDays(n * 30), nil
		}
	}

	switch s {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	case "yesterday":
		return today.AddDays(-1), nil
	case "end of week", "eow":
		_, end := WeekBounds(today)
		return end, nil
	case "end of month", "eom":
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return model.DateOf(first.AddDate(0, 1, -1)), nil
	case "this weekend", "weekend":
		d := daysFromMonday(today)
		if d >= 5 { // already Saturday or Sunday
			return today, nil
		}
		return today.AddDays(5 - d), nil
	}

	if wd, next, ok := splitWeekday(s); ok {
		cur := today.Time().Weekday()
		ahead := (int(wd) - int(cur) + 7) % 7
		if next {
			// Strictly after now, never today.
			if ahead == 0 {
				ahead = 7
			}
		}
		return today.AddDays(ahead), nil
	}

	// Other absolute formats ("Dec 31, 2026", "2026/12/31", ...). Strict mode
	// rejects ambiguous day/month inputs rather than guessing.
	if t, err := dateparse.ParseStrict(s); err == nil {
		return model.DateOf(t), nil
	}

	return "", UnparseableDateError{Input: text}
}

// splitWeekday matches "friday", "this friday", and "next friday".
func splitWeekday(s string) (wd time.Weekday, next bool, ok bool) {
	name := s
	switch {
	case strings.HasPrefix(s, "next "):
		name = strings.TrimPrefix(s, "next ")
		next = true
	case strings.HasPrefix(s, "this "):
		name = strings.TrimPrefix(s, "this ")
	}
	wd, ok = weekdays[name]
	return wd, next, ok
}

// WeekBounds returns the Monday and Sunday of the ISO week containing d.
func WeekBounds(d model.Date) (start, end model.Date) {
	offset := daysFromMonday(d)
	start = d.AddDays(-offset)
	return start, start.AddDays(6)
}

func daysFromMonday(d model.Date) int {
	return (int(d.Time().Weekday()) + 6) % 7
}

// FormatRelative renders a due date relative to today for list output
// ("today", "tomorrow", "in 3d", "2d late").
func FormatRelative(d model.Date, today model.Date) string {
	if d.IsZero() {
		return "-"
	}
	days := int(d.Time().Sub(today.Time()).Hours() / 24)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days > 1:
		return fmt.Sprintf("in %dd", days)
	default:
		return fmt.Sprintf("%dd late", -days)
	}
}
