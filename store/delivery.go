package store

import (
	"time"

	"github.com/kitchencart/kitchencart-api/models"
)

// Delivery assignment. A delivery boy carries at most DeliveryBoyCapacity
// concurrent orders; availability is recomputed from that rule on
// assignment. Completion intentionally forces availability back to true
// without consulting the remaining load; tests pin that asymmetry.

// AssignDeliveryBoy binds the order to a delivery boy and forces the order
// into delivering. The assignment is idempotent: an order already in the
// boy's list is not appended twice. Missing address and phone get the
// usual placeholder defaults.
func (s *Store) AssignDeliveryBoy(orderID, deliveryBoyID string) {
	s.do(func(st *state) {
		order, ok := st.orders[orderID]
		if !ok {
			return
		}
		boy, ok := st.boys[deliveryBoyID]
		if !ok {
			return
		}
		order.DeliveryBoyID = deliveryBoyID
		order.Status = models.StatusDelivering
		if order.DeliveryAddress == "" {
			order.DeliveryAddress = DefaultDeliveryAddress
		}
		if order.CustomerPhone == "" {
			order.CustomerPhone = DefaultCustomerPhone
		}
		if !containsOrder(boy.CurrentOrders, orderID) {
			boy.CurrentOrders = append(boy.CurrentOrders, orderID)
		}
		boy.IsAvailable = len(boy.CurrentOrders) < DeliveryBoyCapacity
		order.UpdatedAt = time.Now()
	})
}

// UpdateDeliveryStatus moves a delivering order along. Completing an order
// computes the commission from the order total when one is set, releases
// the order from the assigned delivery boy's load, and marks the boy
// available regardless of how many orders remain on them.
func (s *Store) UpdateDeliveryStatus(orderID, status string) {
	s.do(func(st *state) {
		order, ok := st.orders[orderID]
		if !ok {
			return
		}
		order.Status = status
		order.UpdatedAt = time.Now()
		if status != models.StatusCompleted {
			return
		}
		if order.Total != nil {
			commission := *order.Total * CommissionRate
			order.Commission = &commission
		}
		boy, ok := st.boys[order.DeliveryBoyID]
		if !ok {
			return
		}
		boy.CurrentOrders = removeOrder(boy.CurrentOrders, orderID)
		boy.IsAvailable = true
	})
}

func containsOrder(orders []string, orderID string) bool {
	for _, id := range orders {
		if id == orderID {
			return true
		}
	}
	return false
}

func removeOrder(orders []string, orderID string) []string {
	out := orders[:0]
	for _, id := range orders {
		if id != orderID {
			out = append(out, id)
		}
	}
	return out
}

// DeliveryBoys returns a snapshot of every delivery boy's runtime state.
func (s *Store) DeliveryBoys() []models.DeliveryBoy {
	var out []models.DeliveryBoy
	s.do(func(st *state) {
		out = make([]models.DeliveryBoy, 0, len(st.boys))
		for _, b := range st.boys {
			out = append(out, cloneBoy(b))
		}
	})
	sortBoys(out)
	return out
}

// DeliveryBoy returns one delivery boy's snapshot.
func (s *Store) DeliveryBoy(id string) (models.DeliveryBoy, bool) {
	var (
		out   models.DeliveryBoy
		found bool
	)
	s.do(func(st *state) {
		if b, ok := st.boys[id]; ok {
			out = cloneBoy(b)
			found = true
		}
	})
	return out, found
}

// AvailableDeliveryBoys returns only the boys currently flagged available.
func (s *Store) AvailableDeliveryBoys() []models.DeliveryBoy {
	var out []models.DeliveryBoy
	s.do(func(st *state) {
		for _, b := range st.boys {
			if b.IsAvailable {
				out = append(out, cloneBoy(b))
			}
		}
	})
	sortBoys(out)
	return out
}
