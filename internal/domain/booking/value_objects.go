package booking

import (
	"errors"
	"fmt"
)

var ErrNegativeMoney = errors.New("money cannot be negative")

// Money is an amount in integer cents. Keeping cents end to end means the
// only rounding happens when a daily rate is first expressed in cents.
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{cents: cents}, nil
}

func MustMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Dollars() float64 {
	return float64(m.cents) / 100.0
}

func (m Money) MulDays(days int) Money {
	return Money{cents: m.cents * int64(days)}
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
