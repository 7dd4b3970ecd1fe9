package helpers

import (
	"fmt"
	"os"
	"strings"
	"time"

	"matka/models"
)

const MinutesPerDay = 24 * 60

var marketLoc *time.Location

// MarketLocation returns the timezone all market clocks are written
// in. MARKET_TIMEZONE overrides the IST default.
func MarketLocation() *time.Location {
	if marketLoc != nil {
		return marketLoc
	}
	name := os.Getenv("MARKET_TIMEZONE")
	if name == "" {
		name = "Asia/Kolkata"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		loc = time.FixedZone("IST", 5*3600+1800)
	}
	marketLoc = loc
	return marketLoc
}

// ParseClock converts an "HH:mm" wall-clock string to a minute-of-day
// offset.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AdjustedMinute shifts a minute-of-day that falls before the window's
// opening minute into the next day, so cross-midnight spans compare
// linearly.
func AdjustedMinute(startMin, min int) int {
	if min < startMin {
		return min + MinutesPerDay
	}
	return min
}

// ClockWindow is a market's start/end/result schedule as minute
// offsets with cross-midnight spans normalized past 1440. Every piece
// of lifecycle logic derives phases through this one type.
type ClockWindow struct {
	Start  int
	End    int
	Result int
	wraps  bool
}

func NewClockWindow(start, end, result string) (ClockWindow, error) {
	s, err := ParseClock(start)
	if err != nil {
		return ClockWindow{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return ClockWindow{}, err
	}
	r, err := ParseClock(result)
	if err != nil {
		return ClockWindow{}, err
	}
	return ClockWindow{
		Start:  s,
		End:    AdjustedMinute(s, e),
		Result: AdjustedMinute(s, r),
		wraps:  e < s || r < s,
	}, nil
}

// PhaseAt classifies a minute-of-day against the window: open within
// [start, end), closed within [end, result), result_declared at or
// past result, waiting otherwise.
func (w ClockWindow) PhaseAt(nowMin int) string {
	cur := nowMin
	if w.wraps && cur < w.Start {
		cur += MinutesPerDay
	}
	switch {
	case cur >= w.Start && cur < w.End:
		return models.MarketOpen
	case cur >= w.End && cur < w.Result:
		return models.MarketClosed
	case cur >= w.Result:
		return models.MarketResultDeclared
	default:
		return models.MarketWaiting
	}
}

// MinuteOfDay is t's minute offset in the market timezone.
func MinuteOfDay(t time.Time) int {
	local := t.In(MarketLocation())
	return local.Hour()*60 + local.Minute()
}
