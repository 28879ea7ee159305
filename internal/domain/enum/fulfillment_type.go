package enum

// FulfillmentType is how the order reaches the customer.
type FulfillmentType string

const (
	FulfillmentPickup   FulfillmentType = "pickup"
	FulfillmentDelivery FulfillmentType = "delivery"
)

func (f FulfillmentType) Valid() bool {
	return f == FulfillmentPickup || f == FulfillmentDelivery
}
