// Package timefmt formats backend timestamps for display.
package timefmt

import (
	"strconv"
	"time"
)

// TimeAgo renders an ISO 8601 timestamp as a Korean relative time: "방금 전"
// under a minute, then exact minutes, hours, and days. Unparseable or empty
// input renders as "".
func TimeAgo(timestamp string, now time.Time) string {
	if timestamp == "" {
		return ""
	}
	ts, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return ""
	}

	diff := now.Sub(ts)
	switch {
	case diff < time.Minute:
		return "방금 전"
	case diff < time.Hour:
		return strconv.Itoa(int(diff.Minutes())) + "분 전"
	case diff < 24*time.Hour:
		return strconv.Itoa(int(diff.Hours())) + "시간 전"
	default:
		return strconv.Itoa(int(diff.Hours()/24)) + "일 전"
	}
}
