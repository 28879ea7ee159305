package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderStatus represents the lifecycle status of an order
type OrderStatus int

const (
	OrderStatusNew OrderStatus = iota
	OrderStatusPreparing
	OrderStatusReady
	OrderStatusOutForDelivery
	OrderStatusCompleted
	OrderStatusRejected
)

var orderStatusNames = [...]string{
	"new", "preparing", "ready", "out_for_delivery", "completed", "rejected",
}

func (s OrderStatus) String() string {
	if s < OrderStatusNew || s > OrderStatusRejected {
		return "unknown"
	}
	return orderStatusNames[s]
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusRejected
}

// CanTransitionTo reports whether the status machine allows moving from s to next.
// Forward movement follows new -> preparing -> ready -> out_for_delivery -> completed,
// where completed may be reached early (pickup orders skip the delivery leg).
// rejected is reachable from every state except rejected itself, which covers
// refunds of completed orders.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if next == OrderStatusRejected {
		return s != OrderStatusRejected
	}
	if s.IsTerminal() {
		return false
	}
	return next == s+1 || next == OrderStatusCompleted
}

// ParseOrderStatus converts a status name to its enum value.
func ParseOrderStatus(name string) (OrderStatus, error) {
	for i, n := range orderStatusNames {
		if n == name {
			return OrderStatus(i), nil
		}
	}
	return OrderStatusNew, fmt.Errorf("unknown order status %q", name)
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	parsed, err := ParseOrderStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusNew
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
