package flags

import (
	"math"
	"strconv"
	"strings"
)

// ParseBool interprets flag text as a boolean.
// "true", "yes" and "on" (any case) are true, as is any text whose integer
// prefix is non-zero. Everything else is false. Words are matched exactly,
// so " true" is false while " 1" is true.
func ParseBool(s string) bool {
	switch {
	case strings.EqualFold(s, "true"), strings.EqualFold(s, "yes"), strings.EqualFold(s, "on"):
		return true
	case strings.EqualFold(s, "false"), strings.EqualFold(s, "no"), strings.EqualFold(s, "off"):
		return false
	}
	return ParseInt(s) != 0
}

// ParseInt parses the leading decimal integer of s, like C atoi.
// Text without a numeric prefix yields 0; out of range values saturate.
func ParseInt(s string) int32 {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	// on ErrRange v already holds the saturated bound
	v, _ := strconv.ParseInt(s[:end], 10, 32)
	return int32(v)
}

// ParseFloat parses the leading decimal number of s, like C atof.
// Text without a numeric prefix, NaN and infinities yield 0.
func ParseFloat(s string) float64 {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	mantissa := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		mantissa++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			mantissa++
		}
	}
	if mantissa == 0 {
		return 0
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		start := exp
		for exp < len(s) && s[exp] >= '0' && s[exp] <= '9' {
			exp++
		}
		if exp > start {
			end = exp
		}
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}
