package payment

import "context"

// Outcome is the result of a charge attempt. Reference is set only on
// success and is stored on the booking as its transaction reference.
type Outcome struct {
	Success   bool
	Reference string
}

// Gateway is the seam between the reservation engine and whatever actually
// moves money. The simulated implementation below stands in for a real
// provider; swapping it out must not touch the booking service.
type Gateway interface {
	Charge(ctx context.Context, amountCents int64, method string) (*Outcome, error)
}
