package readers

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// naValues are the sentinel strings stations use in place of a real
// reading. Parsers treat any of these as "no value" rather than an error.
var naValues = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"none": true,
	"null": true,
	"--":   true,
	"-":    true,
}

// IsNA reports whether s is one of the sentinel "no value" strings a
// station sends in place of a real reading.
func IsNA(s string) bool {
	return naValues[strings.ToLower(strings.TrimSpace(s))]
}

// SafeFloat parses s as a float64, returning nil instead of an error on
// any failure — readers use this for optional fields where a malformed
// value should be dropped, not fatal.
func SafeFloat(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// SafeInt parses s as an int, returning nil instead of an error on any
// failure.
func SafeInt(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}

// SmartParseFloat tolerates both comma and dot decimal separators. An
// empty or NA-sentinel string yields 0.0, not an error — stations that
// omit a field are common enough that callers shouldn't have to special
// case it. A value using both separators (e.g. "1,234.5") is ambiguous
// and returns an error rather than guessing.
func SmartParseFloat(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if IsNA(trimmed) {
		return 0.0, nil
	}

	hasComma := strings.Contains(trimmed, ",")
	hasDot := strings.Contains(trimmed, ".")

	switch {
	case hasComma && hasDot:
		return 0, fmt.Errorf("ambiguous decimal separators in %q", s)
	case hasComma:
		trimmed = strings.Replace(trimmed, ",", ".", 1)
	}

	return strconv.ParseFloat(trimmed, 64)
}

// smartDatetimeLayouts are the formats tried, in order, when parsing a
// station's free-form timestamp string. Slash-delimited dates are tried
// both month-first and day-first since stations don't declare which
// ordering they use; closestToNowNotFuture then picks whichever
// interpretation is plausible.
var smartDatetimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"Mon, 02 Jan 2006 15:04:05 -0700",
	"2006-01-02",
}

// SmartParseDatetime tries each known layout against s (optionally in
// loc), and when more than one succeeds picks whichever result is
// closest to now without being in the future — stations that report
// ambiguous month/day ordering are far more likely to mean "a moment
// close to now" than a date far in the past or future.
func SmartParseDatetime(s string, loc *time.Location, now time.Time) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	var candidates []time.Time
	for _, layout := range smartDatetimeLayouts {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(s), loc); err == nil {
			candidates = append(candidates, t)
		}
	}

	if len(candidates) == 0 {
		return time.Time{}, fmt.Errorf("could not parse datetime %q", s)
	}

	return closestToNowNotFuture(candidates, now), nil
}

func closestToNowNotFuture(candidates []time.Time, now time.Time) time.Time {
	var best time.Time
	bestDiff := time.Duration(1<<63 - 1)

	for _, c := range candidates {
		if c.After(now) {
			continue
		}
		diff := now.Sub(c)
		if diff < bestDiff {
			bestDiff = diff
			best = c
		}
	}

	if best.IsZero() {
		// every candidate was in the future; fall back to the nearest one
		for _, c := range candidates {
			diff := c.Sub(now)
			if best.IsZero() || diff < bestDiff {
				bestDiff = diff
				best = c
			}
		}
	}

	return best
}

// compassPoints maps the 16-point compass abbreviations to degrees. The
// Spanish "oeste" spelling is handled by SmartAzimuth's o-to-w
// substitution before lookup.
var compassPoints = map[string]float64{
	"n": 0, "nne": 22.5, "ne": 45, "ene": 67.5,
	"e": 90, "ese": 112.5, "se": 135, "sse": 157.5,
	"s": 180, "ssw": 202.5, "sw": 225, "wsw": 247.5,
	"w": 270, "wnw": 292.5, "nw": 315, "nnw": 337.5,
}

// SmartAzimuth interprets a wind direction as either a 16-point compass
// abbreviation or a raw numeric degree value. Numeric 360 wraps to 0, and
// every "o" (oeste, Spanish for west) is normalized to "w" before lookup
// so Spanish-language stations resolve correctly ("NO" reads as "NW").
func SmartAzimuth(s string) (*float64, error) {
	trimmed := strings.TrimSpace(s)
	if IsNA(trimmed) {
		return nil, nil
	}

	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if v == 360 {
			v = 0
		}
		return &v, nil
	}

	normalized := strings.ToLower(trimmed)
	normalized = strings.ReplaceAll(normalized, "o", "w")

	if deg, ok := compassPoints[normalized]; ok {
		return &deg, nil
	}

	return nil, fmt.Errorf("unrecognized wind direction %q", s)
}
