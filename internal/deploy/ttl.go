package deploy

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const day = 24 * time.Hour

var ttlUnits = []struct {
	size time.Duration
	name string
}{
	{day, "day"},
	{time.Hour, "h"},
	{time.Minute, "m"},
	{time.Second, "s"},
	{time.Millisecond, "ms"},
}

var ttlUnitAliases = map[string]time.Duration{
	"ms": time.Millisecond, "msec": time.Millisecond,
	"s": time.Second, "sec": time.Second, "secs": time.Second, "second": time.Second, "seconds": time.Second,
	"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": day, "day": day, "days": day,
	"w": 7 * day, "week": 7 * day, "weeks": 7 * day,
}

// FormatTTL renders a duration the way the node prints deploy TTLs, e.g. "30m" or "1day 2h"
func FormatTTL(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	var parts []string
	rest := d.Truncate(time.Millisecond)
	for _, u := range ttlUnits {
		n := rest / u.size
		if n == 0 {
			continue
		}
		rest -= n * u.size
		name := u.name
		if u.size == day && n > 1 {
			name = "days"
		}
		parts = append(parts, fmt.Sprintf("%d%s", n, name))
	}
	return strings.Join(parts, " ")
}

// ParseTTL parses a humantime duration such as "30m", "1h 30m" or "2days"
func ParseTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty ttl")
	}

	var total time.Duration
	for len(s) > 0 {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
		if i <= 0 {
			return 0, fmt.Errorf("invalid ttl %q: expected number", s)
		}
		n, err := strconv.ParseInt(s[:i], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid ttl number: %w", err)
		}
		s = s[i:]

		j := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
		if j < 0 {
			j = len(s)
		}
		unit, ok := ttlUnitAliases[s[:j]]
		if !ok {
			return 0, fmt.Errorf("invalid ttl unit %q", s[:j])
		}
		total += time.Duration(n) * unit
		s = s[j:]
	}
	return total, nil
}
