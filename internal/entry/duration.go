package entry

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

var durationUnits = map[string]time.Duration{
	"s": time.Second, "sec": time.Second, "secs": time.Second, "second": time.Second, "seconds": time.Second,
	"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": day, "day": day, "days": day,
	"w": 7 * day, "wk": 7 * day, "week": 7 * day, "weeks": 7 * day,
	"mo": 30 * day, "month": 30 * day, "months": 30 * day,
	"y": 365 * day, "yr": 365 * day, "year": 365 * day, "years": 365 * day,
}

var durationTerm = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([a-z]*)`)

// ParseDuration reads human written durations such as "1 day", "2 hours 30
// minutes", "1h30m" or a bare number of seconds.
func ParseDuration(s string) (time.Duration, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	if in == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if strings.HasPrefix(in, "-") {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	if d, err := time.ParseDuration(in); err == nil {
		return d, nil
	}

	in = strings.NewReplacer(",", " ", " and ", " ").Replace(in)
	var total time.Duration
	for rest := strings.TrimSpace(in); rest != ""; rest = strings.TrimSpace(rest) {
		m := durationTerm.FindStringSubmatch(rest)
		if m == nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		unit := time.Second
		if m[2] != "" {
			u, ok := durationUnits[m[2]]
			if !ok {
				return 0, fmt.Errorf("invalid duration unit %q", m[2])
			}
			unit = u
		}
		term := n * float64(unit)
		if term >= math.MaxInt64 || float64(total)+term >= math.MaxInt64 {
			return 0, fmt.Errorf("duration %q is out of range", s)
		}
		total += time.Duration(term)
		rest = rest[len(m[0]):]
	}
	return total, nil
}
