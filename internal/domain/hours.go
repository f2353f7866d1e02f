package domain

import (
	"strconv"
	"strings"
	"time"
)

// HoursInterval holds opening hours for a single weekday in 24h HH:MM form.
type HoursInterval struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// HoursMap maps short weekday keys (sun..sat) to opening intervals. A nil map
// means the business published no structured hours.
type HoursMap map[string]HoursInterval

var dayKeys = [7]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// OpenAt reports whether the business is open at t, evaluated in t's
// location. It returns nil (unknown) when hours are absent for t's weekday or
// malformed; it never fails. The interval is half-open: [open, close).
func (h HoursMap) OpenAt(t time.Time) *bool {
	if h == nil {
		return nil
	}
	today, ok := h[dayKeys[int(t.Weekday())]]
	if !ok || today.Open == "" || today.Close == "" {
		return nil
	}

	open, ok := parseMinutes(today.Open)
	if !ok {
		return nil
	}
	closeAt, ok := parseMinutes(today.Close)
	if !ok {
		return nil
	}

	now := t.Hour()*60 + t.Minute()
	result := now >= open && now < closeAt
	return &result
}

func parseMinutes(s string) (int, bool) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
