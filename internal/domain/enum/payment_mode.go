package enum

import (
	"encoding/json"
	"strings"
)

// PaymentMode represents how an order was paid
type PaymentMode string

const (
	PaymentModeCash PaymentMode = "cash"
	PaymentModeUPI  PaymentMode = "upi"
	PaymentModeCard PaymentMode = "card"
)

// Valid reports whether the mode is one of the accepted payment modes
func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentModeCash, PaymentModeUPI, PaymentModeCard:
		return true
	}
	return false
}

func (m PaymentMode) String() string {
	return string(m)
}

// ParsePaymentMode normalizes a raw string into a PaymentMode
func ParsePaymentMode(s string) (PaymentMode, bool) {
	m := PaymentMode(strings.ToLower(strings.TrimSpace(s)))
	return m, m.Valid()
}

func (m *PaymentMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = PaymentMode(strings.ToLower(strings.TrimSpace(str)))
	return nil
}
