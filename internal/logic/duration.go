package logic

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseDuration converts "H:MM:SS", "MM:SS" or a bare number of seconds into
// whole seconds. The rightmost field is seconds, then minutes, then hours;
// empty fields count as zero.
//
// Parsing is permissive and yields 0 instead of an error when a field is not
// an integer, when the total is negative or does not fit in an int, and when
// there are more than three fields. Extra fields are not truncated away:
// "1:2:3:4" is 0, not 1.
func ParseDuration(text string) int {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) > 3 {
		return 0
	}

	total := 0
	multiplier := 1
	for i := len(parts) - 1; i >= 0; i-- {
		field := strings.TrimSpace(parts[i])
		if field != "" {
			n, err := strconv.Atoi(field)
			if err != nil {
				return 0
			}
			if n > 0 && (n > math.MaxInt/multiplier || total > math.MaxInt-n*multiplier) {
				return 0
			}
			if n < 0 && (n < math.MinInt/multiplier || total < math.MinInt-n*multiplier) {
				return 0
			}
			total += n * multiplier
		}
		multiplier *= 60
	}

	if total < 0 {
		return 0
	}
	return total
}

// FormatDuration renders seconds as "MM:SS" below one hour and "H:MM:SS"
// otherwise. The hour count is not zero-padded.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
