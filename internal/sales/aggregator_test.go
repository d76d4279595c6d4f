package sales

import (
	"testing"
	"time"
)

func TestWindowBounds(t *testing.T) {
	now := time.Date(2026, time.March, 15, 14, 30, 0, 0, time.UTC)

	start, end := windowBounds(now, 30)

	wantStart := time.Date(2026, time.February, 13, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("expected start %s, got %s", wantStart, start)
	}

	// end is the start of tomorrow so today's sales are included and
	// future-dated rows are not
	wantEnd := time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC)
	if !end.Equal(wantEnd) {
		t.Errorf("expected end %s, got %s", wantEnd, end)
	}

	endOfToday := time.Date(2026, time.March, 15, 23, 59, 59, 0, time.UTC)
	if !endOfToday.Before(end) {
		t.Error("end of today should fall inside the window")
	}
	tomorrowOrder := time.Date(2026, time.March, 16, 9, 0, 0, 0, time.UTC)
	if tomorrowOrder.Before(end) {
		t.Error("future-dated order should fall outside the window")
	}
}
