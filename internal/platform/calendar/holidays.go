package calendar

import "time"

// NationalHolidayProvider answers whether a date is a national public
// holiday in the given country. Implementations compare dates only; any
// time component of the input is ignored.
type NationalHolidayProvider interface {
	IsPublicHoliday(date time.Time, countryCode string) bool
}

// fixedDate is a holiday that recurs on the same month and day each year.
type fixedDate struct {
	month time.Month
	day   int
}

// StaticProvider resolves national holidays from a built-in table of
// fixed-date public holidays per country. Movable religious holidays are
// not computed; campuses declare those administratively as custom
// holidays.
type StaticProvider struct {
	byCountry map[string][]fixedDate
}

// NewStaticProvider creates a provider with the built-in holiday tables.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		byCountry: map[string][]fixedDate{
			"TR": {
				{time.January, 1},   // New Year's Day
				{time.April, 23},    // National Sovereignty and Children's Day
				{time.May, 1},       // Labour and Solidarity Day
				{time.May, 19},      // Commemoration of Atatürk, Youth and Sports Day
				{time.July, 15},     // Democracy and National Unity Day
				{time.August, 30},   // Victory Day
				{time.October, 29},  // Republic Day
			},
		},
	}
}

// IsPublicHoliday reports whether date is a fixed-date public holiday in
// countryCode. Unknown countries have no holidays.
func (p *StaticProvider) IsPublicHoliday(date time.Time, countryCode string) bool {
	for _, h := range p.byCountry[countryCode] {
		if date.Month() == h.month && date.Day() == h.day {
			return true
		}
	}
	return false
}

// HolidayProviderFunc adapts a function to the NationalHolidayProvider
// interface, for tests.
type HolidayProviderFunc func(date time.Time, countryCode string) bool

func (f HolidayProviderFunc) IsPublicHoliday(date time.Time, countryCode string) bool {
	return f(date, countryCode)
}
