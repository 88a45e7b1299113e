package enums

// CheckoutStep is the position of a session inside the checkout form.
type CheckoutStep int

const (
	CheckoutStepShipping  CheckoutStep = 1
	CheckoutStepPayment   CheckoutStep = 2
	CheckoutStepConfirmed CheckoutStep = 3
)

// String implements fmt.Stringer.
func (s CheckoutStep) String() string {
	switch s {
	case CheckoutStepShipping:
		return "shipping"
	case CheckoutStepPayment:
		return "payment"
	case CheckoutStepConfirmed:
		return "confirmed"
	}
	return "unknown"
}

// MarshalText encodes the step by name.
func (s CheckoutStep) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
