package booking

import "errors"

var ErrZeroDayRental = errors.New("rental must span at least one day")

type PriceCalculator interface {
	Quote(pricePerDay Money, dates DateRange) (Money, error)
}

// DailyRateCalculator prices a rental as daily rate times whole days.
// The multiplication happens once, on cents, so there is no intermediate
// rounding to get wrong.
type DailyRateCalculator struct{}

func NewDailyRateCalculator() *DailyRateCalculator {
	return &DailyRateCalculator{}
}

func (c *DailyRateCalculator) Quote(pricePerDay Money, dates DateRange) (Money, error) {
	days := dates.Days()
	if days <= 0 {
		return Money{}, ErrZeroDayRental
	}
	return pricePerDay.MulDays(days), nil
}
