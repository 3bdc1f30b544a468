// Package clockface renders durations the way every frontend displays them.
package clockface

import (
	"fmt"
	"time"
)

// Parts splits the absolute value of d into whole minutes, seconds within the
// minute and tenths within the second.
func Parts(d time.Duration) (minutes, seconds, tenths int64) {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = -ms
	}
	return ms / 60_000, (ms / 1000) % 60, (ms / 100) % 10
}

// Format renders d as M:SS, or M:SS.t when tenths is set. Negative durations
// are prefixed with "-".
func Format(d time.Duration, tenths bool) string {
	minutes, seconds, tenth := Parts(d)
	sign := ""
	if d < 0 {
		sign = "-"
	}
	if tenths {
		return fmt.Sprintf("%s%d:%02d.%d", sign, minutes, seconds, tenth)
	}
	return fmt.Sprintf("%s%d:%02d", sign, minutes, seconds)
}

// FormatSeconds renders a whole-second count as M:SS.
func FormatSeconds(seconds int) string {
	return Format(time.Duration(seconds)*time.Second, false)
}
