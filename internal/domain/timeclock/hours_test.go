package timeclock

import "testing"

func TestResolveHoursSameDay(t *testing.T) {
	if got := ResolveHours("09:00", "17:30"); got != 8.5 {
		t.Fatalf("expected 8.5, got %v", got)
	}
	if got := ResolveHours("08:15", "08:15"); got != 0 {
		t.Fatalf("expected 0 for zero-length shift, got %v", got)
	}
}

func TestResolveHoursOvernight(t *testing.T) {
	if got := ResolveHours("22:00", "02:00"); got != 4 {
		t.Fatalf("expected 4, got %v", got)
	}
	// just past midnight still counts as the same shift
	if got := ResolveHours("23:50", "00:10"); got != 0.33 {
		t.Fatalf("expected 0.33, got %v", got)
	}
}

func TestResolveHoursMissingInput(t *testing.T) {
	if got := ResolveHours("", "09:00"); got != 0 {
		t.Fatalf("expected 0 for missing start, got %v", got)
	}
	if got := ResolveHours("09:00", ""); got != 0 {
		t.Fatalf("expected 0 for missing end, got %v", got)
	}
	if got := ResolveHours("9am", "5pm"); got != 0 {
		t.Fatalf("expected 0 for unparseable input, got %v", got)
	}
}

func TestResolveHoursRounding(t *testing.T) {
	// 7h50m = 7.8333... rounds to 7.83
	if got := ResolveHours("09:10", "17:00"); got != 7.83 {
		t.Fatalf("expected 7.83, got %v", got)
	}
}

func TestResolveHoursLongShiftAccepted(t *testing.T) {
	// a 23-hour shift is accepted silently
	if got := ResolveHours("01:00", "00:00"); got != 23 {
		t.Fatalf("expected 23, got %v", got)
	}
}
