package scheduling

import (
	"context"
	"time"

	"github.com/counsel/counsel/internal/platform/calendar"
)

// HolidayResolver decides whether a date is a non-working day: weekend,
// national public holiday, or administratively declared custom holiday.
type HolidayResolver struct {
	holidays HolidayRepository
	national calendar.NationalHolidayProvider
	country  string
}

func NewHolidayResolver(holidays HolidayRepository, national calendar.NationalHolidayProvider, country string) *HolidayResolver {
	return &HolidayResolver{holidays: holidays, national: national, country: country}
}

// IsHoliday reports whether date (time component ignored) is a
// non-working day. Only the custom-holiday lookup can fail.
func (r *HolidayResolver) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	day := calendar.DateOnly(date)

	if calendar.IsWeekend(day) {
		return true, nil
	}
	if r.national.IsPublicHoliday(day, r.country) {
		return true, nil
	}
	return r.holidays.ExistsOnDate(ctx, day)
}
