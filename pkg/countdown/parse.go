package countdown

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrSubSecond is returned by ParseDuration for durations that are not whole seconds.
var ErrSubSecond = errors.New("duration must be whole seconds")

// ParseDuration parses a duration given either as an integer number of
// seconds ("90") or as a Go duration string ("1m30s"). It does not validate
// the sign; Start does.
func ParseDuration(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if d%time.Second != 0 {
		return 0, fmt.Errorf("%w: %s", ErrSubSecond, s)
	}
	return int(d / time.Second), nil
}

// FormatSeconds renders seconds as M:SS, or H:MM:SS from one hour up.
func FormatSeconds(seconds int) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}

	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	if h > 0 {
		return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%s%d:%02d", sign, m, s)
}
