package util

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// FormatAge formats a creation time as "3 minutes ago", or "—" if unset.
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return humanize.Time(t)
}

// FormatCount formats n with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatDate formats a timestamp for display in local time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Local().Format("Jan 02, 2006 15:04")
}

// TruncateString truncates s to maxWidth terminal cells, adding "..." when
// something was cut. Wide runes (CJK, emoji) count as two cells.
func TruncateString(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth < 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// TruncateMiddle keeps both ends of s, which suits long links where the
// host and the tail of the token are the recognisable parts.
func TruncateMiddle(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth < 5 {
		return TruncateString(s, maxWidth)
	}
	keep := maxWidth - 1
	head := runewidth.Truncate(s, (keep+1)/2, "")
	rest := []rune(s)[len([]rune(head)):]
	tail := string(rest)
	for runewidth.StringWidth(tail) > keep/2 {
		r := []rune(tail)
		tail = string(r[1:])
	}
	return head + "…" + tail
}

// CoupleNames formats the "from ❤ to" line shown on the celebration.
func CoupleNames(from, to string) string {
	return strings.TrimSpace(from) + " ❤️ " + strings.TrimSpace(to)
}

// Plural picks the singular or plural noun for n.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
