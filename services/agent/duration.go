// File: services/agent/duration.go
package agent

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	decimalRe = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	integerRe = regexp.MustCompile(`(\d+)`)
)

// ParseDuration converts a free-text duration expression into a time.Duration.
// Unparseable input always yields a usable default; this never fails.
func ParseDuration(text string) time.Duration {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return time.Hour
	}

	hasHour := strings.Contains(s, "hour") || strings.Contains(s, "hr")

	// Common phrases first.
	if strings.Contains(s, "half") && hasHour {
		return 30 * time.Minute
	}
	if strings.Contains(s, "an hour") || s == "hour" {
		return time.Hour
	}
	if strings.Contains(s, "quarter") && hasHour {
		return 15 * time.Minute
	}

	if hasHour {
		if m := decimalRe.FindStringSubmatch(s); m != nil {
			hours, err := strconv.ParseFloat(m[1], 64)
			if err == nil {
				return time.Duration(hours * float64(time.Hour))
			}
		}
		return time.Hour
	}

	if strings.Contains(s, "minute") || strings.Contains(s, "min") {
		if m := integerRe.FindStringSubmatch(s); m != nil {
			minutes, err := strconv.Atoi(m[1])
			if err == nil {
				return time.Duration(minutes) * time.Minute
			}
		}
		return 30 * time.Minute
	}

	// Spelled-out numbers.
	switch {
	case strings.Contains(s, "thirty"):
		return 30 * time.Minute
	case strings.Contains(s, "fifteen"):
		return 15 * time.Minute
	case strings.Contains(s, "two hour"):
		return 2 * time.Hour
	}

	return time.Hour
}
