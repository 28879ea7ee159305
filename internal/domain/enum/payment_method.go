package enum

// PaymentMethod is how an order was paid.
type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "cash"
	PaymentMethodCard        PaymentMethod = "card"
	PaymentMethodNetwork     PaymentMethod = "network"     // POS terminal / bank network
	PaymentMethodHospitality PaymentMethod = "hospitality" // complimentary, attributed to a recipient
	PaymentMethodTransfer    PaymentMethod = "transfer"    // direct bank transfer
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodNetwork,
		PaymentMethodHospitality, PaymentMethodTransfer:
		return true
	}
	return false
}

// RequiresBank reports whether the method must carry a bank reference.
func (m PaymentMethod) RequiresBank() bool {
	return m == PaymentMethodNetwork || m == PaymentMethodTransfer
}
