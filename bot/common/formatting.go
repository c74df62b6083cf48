package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatPoints formats a points total with thousand separators
func FormatPoints(points int64) string {
	str := fmt.Sprintf("%d", points)

	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatBudget formats a match day budget. Whole amounts drop the decimals.
func FormatBudget(budget float64) string {
	if budget == float64(int64(budget)) {
		return fmt.Sprintf("%d", int64(budget))
	}
	return fmt.Sprintf("%.2f", budget)
}

// FormatOdds formats decimal odds the way the platform displays them
func FormatOdds(odds float64) string {
	return fmt.Sprintf("%.2f", odds)
}

// FormatFixture renders a fixture line, with the score when it is known
func FormatFixture(team1, team2 string, score1, score2 *int) string {
	if score1 != nil && score2 != nil {
		return fmt.Sprintf("%s %d : %d %s", team1, *score1, *score2, team2)
	}
	return fmt.Sprintf("%s vs %s", team1, team2)
}

// FormatMatchDay renders a YYYY-MM-DD match day as a friendly date.
// Unparseable input is returned as-is.
func FormatMatchDay(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return parsed.Format("Monday, 2 January 2006")
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// Truncate shortens a string to at most max runes, ending with an ellipsis
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
