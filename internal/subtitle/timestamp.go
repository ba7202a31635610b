package subtitle

import (
	"fmt"
	"strconv"
	"time"
)

// builds a duration from captured timestamp fields; hours may be empty
func parseTimestamp(hours, minutes, seconds, millis string) (time.Duration, error) {
	fields := []string{hours, minutes, seconds, millis}
	values := make([]int, len(fields))
	for i, field := range fields {
		if field == "" {
			continue
		}
		v, err := strconv.Atoi(field)
		if err != nil {
			return 0, err
		}
		values[i] = v
	}

	h, m, s, ms := values[0], values[1], values[2], values[3]
	if m > 59 || s > 59 {
		return 0, fmt.Errorf("minutes and seconds must be below 60")
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

// hh:mm:ss followed by sep and milliseconds
func formatTimestamp(d time.Duration, sep string) string {
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d:%02d%s%03d",
		ms/3_600_000, ms/60_000%60, ms/1000%60, sep, ms%1000)
}

// ASS uses single-digit hours and centiseconds
func formatASSTimestamp(d time.Duration) string {
	cs := d.Milliseconds() / 10
	return fmt.Sprintf("%d:%02d:%02d.%02d",
		cs/360_000, cs/6000%60, cs/100%60, cs%100)
}
