package domain

import "math"

// PaymentIntent is the outcome of asking the processor to prepare a charge.
type PaymentIntent struct {
	Amount       int64
	Currency     string
	ClientSecret string
}

// MinorUnits converts a decimal price into an integer amount of minor units,
// truncating any fraction of a cent. A small epsilon absorbs binary
// representation error so that 19.99 becomes 1999 rather than 1998.
func MinorUnits(price float64) int64 {
	return int64(math.Trunc(price*100 + math.Copysign(1e-6, price)))
}
