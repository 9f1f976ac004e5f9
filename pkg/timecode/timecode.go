// Package timecode parses and formats the clip boundary times accepted
// on the command line.
package timecode

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse converts a time string in H:MM:SS, MM:SS, or plain-seconds form
// into seconds. Minute and second fields must stay below 60 when a
// higher field is present.
func Parse(s string) (float64, error) {
	parts := strings.Split(s, ":")

	switch len(parts) {
	case 1:
		secs, err := strconv.ParseFloat(parts[0], 64)
		if err != nil || secs < 0 {
			return 0, parseError(s)
		}
		return secs, nil
	case 2:
		mins, err1 := strconv.Atoi(parts[0])
		secs, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil || mins < 0 || secs < 0 || secs >= 60 {
			return 0, parseError(s)
		}
		return float64(mins*60) + secs, nil
	case 3:
		hours, err1 := strconv.Atoi(parts[0])
		mins, err2 := strconv.Atoi(parts[1])
		secs, err3 := strconv.ParseFloat(parts[2], 64)
		if err1 != nil || err2 != nil || err3 != nil ||
			hours < 0 || mins < 0 || mins >= 60 || secs < 0 || secs >= 60 {
			return 0, parseError(s)
		}
		return float64(hours*3600+mins*60) + secs, nil
	default:
		return 0, parseError(s)
	}
}

// Format renders seconds as H:MM:SS, truncating fractions.
func Format(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// Range validates optional start and end times. Absent values (empty
// strings) are reported as -1. When both are present, start must come
// before end.
func Range(start, end string) (startSec, endSec float64, err error) {
	startSec, endSec = -1, -1

	if start != "" {
		if startSec, err = Parse(start); err != nil {
			return 0, 0, fmt.Errorf("invalid start time: %w", err)
		}
	}
	if end != "" {
		if endSec, err = Parse(end); err != nil {
			return 0, 0, fmt.Errorf("invalid end time: %w", err)
		}
	}
	if startSec >= 0 && endSec >= 0 && endSec <= startSec {
		return 0, 0, fmt.Errorf("end time %s is not after start time %s", end, start)
	}

	return startSec, endSec, nil
}

func parseError(s string) error {
	return fmt.Errorf("expected H:MM:SS, MM:SS, or seconds, got %q", s)
}
