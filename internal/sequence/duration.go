package sequence

import (
	"fmt"
	"math"
	"time"
)

// FormatDuration renders seconds as "m:ss". Minutes are not split into hours,
// so an hour renders as "60:00". NaN, infinities and negative values render as
// "0:00".
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "0:00"
	}
	m := int64(math.Floor(seconds / 60))
	s := int64(math.Floor(math.Mod(seconds, 60)))
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatTime is FormatDuration for a time.Duration.
func FormatTime(d time.Duration) string {
	return FormatDuration(d.Seconds())
}
