package enum

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusNew, OrderStatusPreparing, true},
		{OrderStatusPreparing, OrderStatusReady, true},
		{OrderStatusReady, OrderStatusOutForDelivery, true},
		{OrderStatusOutForDelivery, OrderStatusCompleted, true},
		// Pickup orders skip the delivery leg.
		{OrderStatusNew, OrderStatusCompleted, true},
		{OrderStatusReady, OrderStatusCompleted, true},
		// No skipping intermediate states otherwise.
		{OrderStatusNew, OrderStatusReady, false},
		{OrderStatusNew, OrderStatusOutForDelivery, false},
		// No going backwards.
		{OrderStatusReady, OrderStatusPreparing, false},
		{OrderStatusCompleted, OrderStatusNew, false},
		// Rejection reaches every state once, including completed.
		{OrderStatusNew, OrderStatusRejected, true},
		{OrderStatusCompleted, OrderStatusRejected, true},
		{OrderStatusRejected, OrderStatusRejected, false},
		// Terminal states stay terminal.
		{OrderStatusCompleted, OrderStatusPreparing, false},
		{OrderStatusRejected, OrderStatusCompleted, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("out_for_delivery")
	if err != nil {
		t.Fatalf("ParseOrderStatus: %v", err)
	}
	if status != OrderStatusOutForDelivery {
		t.Errorf("parsed %v, want out_for_delivery", status)
	}

	if _, err := ParseOrderStatus("teleported"); err == nil {
		t.Error("expected an error for an unknown status name")
	}
}

func TestOrderStatusJSONRoundTrip(t *testing.T) {
	b, err := OrderStatusPreparing.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(b) != `"preparing"` {
		t.Errorf("marshaled %s, want \"preparing\"", b)
	}

	var s OrderStatus
	if err := s.UnmarshalJSON([]byte(`"rejected"`)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if s != OrderStatusRejected {
		t.Errorf("unmarshaled %v, want rejected", s)
	}

	// Older clients send the numeric form.
	if err := s.UnmarshalJSON([]byte(`2`)); err != nil {
		t.Fatalf("UnmarshalJSON numeric: %v", err)
	}
	if s != OrderStatusReady {
		t.Errorf("unmarshaled %v, want ready", s)
	}
}
