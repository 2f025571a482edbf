package calendar

import (
	"testing"
	"time"
)

func TestDateOnly(t *testing.T) {
	in := time.Date(2026, time.March, 2, 14, 35, 12, 999, time.UTC)
	got := DateOnly(in)
	want := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOnly(%v) = %v, want %v", in, got, want)
	}
}

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		date time.Time
		want bool
	}{
		{time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), true},  // Saturday
		{time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), true},      // Sunday
		{time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC), false},     // Monday
		{time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC), false},     // Friday
	}
	for _, tt := range tests {
		if got := IsWeekend(tt.date); got != tt.want {
			t.Errorf("IsWeekend(%v) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestFixedClock(t *testing.T) {
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	clock := FixedClock{T: now}
	if !clock.Now().Equal(now) {
		t.Errorf("FixedClock.Now() = %v, want %v", clock.Now(), now)
	}
}

func TestStaticProvider_TurkishHolidays(t *testing.T) {
	p := NewStaticProvider()

	tests := []struct {
		date time.Time
		want bool
	}{
		{time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), true},   // New Year
		{time.Date(2026, time.April, 23, 0, 0, 0, 0, time.UTC), true},    // Children's Day
		{time.Date(2026, time.October, 29, 0, 0, 0, 0, time.UTC), true},  // Republic Day
		{time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC), false},    // ordinary Monday
		{time.Date(2026, time.October, 30, 0, 0, 0, 0, time.UTC), false}, // day after Republic Day
	}
	for _, tt := range tests {
		if got := p.IsPublicHoliday(tt.date, "TR"); got != tt.want {
			t.Errorf("IsPublicHoliday(%v, TR) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestStaticProvider_IgnoresTimeComponent(t *testing.T) {
	p := NewStaticProvider()
	newYearAfternoon := time.Date(2026, time.January, 1, 15, 30, 0, 0, time.UTC)
	if !p.IsPublicHoliday(newYearAfternoon, "TR") {
		t.Error("expected holiday match regardless of time of day")
	}
}

func TestStaticProvider_UnknownCountry(t *testing.T) {
	p := NewStaticProvider()
	newYear := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	if p.IsPublicHoliday(newYear, "XX") {
		t.Error("expected no holidays for unknown country code")
	}
}

func TestHolidayProviderFunc(t *testing.T) {
	always := HolidayProviderFunc(func(time.Time, string) bool { return true })
	if !always.IsPublicHoliday(time.Now(), "TR") {
		t.Error("expected adapter to forward the call")
	}
}
