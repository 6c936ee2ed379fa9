package booking

import "time"

// PriceCents computes the price of [start, end) at the given hourly rate.
// Fractional hours are charged proportionally; arithmetic stays in integer
// cents so 2.5h at 50000c comes out to exactly 125000c.
func PriceCents(hourlyRateCents int64, start, end time.Time) (int64, error) {
	if !start.Before(end) {
		return 0, ErrInvalidInterval
	}

	seconds := int64(end.Sub(start) / time.Second)
	return hourlyRateCents * seconds / 3600, nil
}
