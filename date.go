package jdoc

import "time"

const (
	layoutDate       = "2006-01-02"
	layoutSeconds    = "2006-01-02T15:04:05"
	layoutFraction   = "2006-01-02T15:04:05.9999999"
	layoutZoned      = "2006-01-02T15:04:05.9999999-07:00"
	maxFractionDigit = 7
)

// formatTime picks the shortest layout that keeps every component the time
// actually carries. Precision below one tick cannot be printed and is dropped
// first.
func formatTime(t time.Time) string {
	t = t.Truncate(ticksPerDuration)
	_, offset := t.Zone()
	switch {
	case offset != 0:
		return t.Format(layoutZoned)
	case t.Nanosecond() != 0:
		return t.Format(layoutFraction)
	case t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0:
		return t.Format(layoutSeconds)
	default:
		return t.Format(layoutDate)
	}
}

// parseDate accepts exactly yyyy-MM-dd or yyyy-MM-ddTHH:mm:ss followed by an
// optional fraction of up to seven digits and an optional Z or ±hh:mm zone.
// Times without a zone are taken as UTC.
func parseDate(s string) (time.Time, bool) {
	if len(s) < len(layoutDate) || !digitsAt(s, 0, 4) || s[4] != '-' || !digitsAt(s, 5, 2) || s[7] != '-' || !digitsAt(s, 8, 2) {
		return time.Time{}, false
	}
	if len(s) == len(layoutDate) {
		t, err := time.Parse(layoutDate, s)
		return t, err == nil
	}
	if len(s) < len(layoutSeconds) || s[10] != 'T' || !digitsAt(s, 11, 2) || s[13] != ':' || !digitsAt(s, 14, 2) || s[16] != ':' || !digitsAt(s, 17, 2) {
		return time.Time{}, false
	}
	i := len(layoutSeconds)
	if i < len(s) && s[i] == '.' {
		n := 0
		for i+1+n < len(s) && isDigit(rune(s[i+1+n])) {
			n++
		}
		if n == 0 || n > maxFractionDigit {
			return time.Time{}, false
		}
		i += 1 + n
	}
	rest := s[i:]
	switch {
	case rest == "":
		t, err := time.Parse(layoutFraction, s)
		return t, err == nil
	case rest == "Z":
		t, err := time.Parse(time.RFC3339Nano, s)
		return t, err == nil
	case len(rest) == 6 && (rest[0] == '+' || rest[0] == '-') && digitsAt(rest, 1, 2) && rest[3] == ':' && digitsAt(rest, 4, 2):
		t, err := time.Parse(time.RFC3339Nano, s)
		return t, err == nil
	}
	return time.Time{}, false
}

func digitsAt(s string, start, n int) bool {
	if start+n > len(s) {
		return false
	}
	for i := start; i < start+n; i++ {
		if !isDigit(rune(s[i])) {
			return false
		}
	}
	return true
}
