package checkout

import (
	"errors"
	"strings"
)

// Step is one stage of the linear checkout flow. Steps cannot be skipped.
type Step int

const (
	StepShipping Step = iota
	StepPayment
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	}
	return "unknown"
}

var (
	ErrNotAuthenticated        = errors.New("not authenticated")
	ErrOrderCreateFailed       = errors.New("order could not be created")
	ErrMissingProductReference = errors.New("cart item is missing its product reference")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrInvalidStep             = errors.New("checkout step out of order")
	ErrValidationFailed        = errors.New("required fields missing")
)

// ShippingDetails are the required fields of the first step.
type ShippingDetails struct {
	FullName   string `json:"fullName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

func (d ShippingDetails) validate() error {
	if anyBlank(d.FullName, d.Address, d.City, d.PostalCode) {
		return ErrValidationFailed
	}
	return nil
}

// PaymentDetails are captured for the order record only; they are never
// transmitted to a payment processor.
type PaymentDetails struct {
	CardHolder string `json:"cardHolder"`
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
}

func (d PaymentDetails) validate() error {
	if anyBlank(d.CardHolder, d.CardNumber, d.Expiry) {
		return ErrValidationFailed
	}
	return nil
}

func anyBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// Summary is the price breakdown shown at review and stamped on the order.
type Summary struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Session tracks one user's progress through the checkout steps.
type Session struct {
	step     Step
	shipping ShippingDetails
	payment  PaymentDetails
}

func newSession() *Session {
	return &Session{step: StepShipping}
}

func (s *Session) Step() Step { return s.step }

// SubmitShipping validates and stores the shipping form, advancing to
// payment. Re-submitting from a later step is refused.
func (s *Session) SubmitShipping(d ShippingDetails) error {
	if s.step != StepShipping {
		return ErrInvalidStep
	}
	if err := d.validate(); err != nil {
		return err
	}
	s.shipping = d
	s.step = StepPayment
	return nil
}

// SubmitPayment validates and stores the payment form, advancing to review.
func (s *Session) SubmitPayment(d PaymentDetails) error {
	if s.step != StepPayment {
		return ErrInvalidStep
	}
	if err := d.validate(); err != nil {
		return err
	}
	s.payment = d
	s.step = StepReview
	return nil
}
