package store

import (
	"sort"

	"github.com/kitchencart/kitchencart-api/models"
)

// Read-only projections over the order list. All of them return deep
// copies; mutating a returned value never touches the state tree. Empty
// results are the only "failure mode" here.

// Order returns a snapshot of one order.
func (s *Store) Order(orderID string) (models.Order, bool) {
	var (
		out   models.Order
		found bool
	)
	s.do(func(st *state) {
		if o, ok := st.orders[orderID]; ok {
			out = cloneOrder(o)
			found = true
		}
	})
	return out, found
}

// Orders returns every order in creation sequence.
func (s *Store) Orders() []models.Order {
	var out []models.Order
	s.do(func(st *state) {
		out = make([]models.Order, 0, len(st.orderSeq))
		for _, id := range st.orderSeq {
			out = append(out, cloneOrder(st.orders[id]))
		}
	})
	return out
}

// OrdersForCustomer returns the customer's orders in creation sequence.
func (s *Store) OrdersForCustomer(customerID uint) []models.Order {
	var out []models.Order
	s.do(func(st *state) {
		for _, id := range st.orderSeq {
			if o := st.orders[id]; o.CustomerID == customerID {
				out = append(out, cloneOrder(o))
			}
		}
	})
	return out
}

// OrdersForMerchant returns the orders a merchant should see on their
// work queue: orders in requested or quoted status where the merchant was
// invited, excluding quoted orders the merchant has already submitted a
// quote for.
func (s *Store) OrdersForMerchant(merchantID string) []models.Order {
	var out []models.Order
	s.do(func(st *state) {
		for _, id := range st.orderSeq {
			o := st.orders[id]
			if o.Status != models.StatusRequested && o.Status != models.StatusQuoted {
				continue
			}
			if !containsOrder(o.SelectedMerchants, merchantID) {
				continue
			}
			if o.Status == models.StatusQuoted && merchantHasSubmitted(o, merchantID) {
				continue
			}
			out = append(out, cloneOrder(o))
		}
	})
	return out
}

func merchantHasSubmitted(o *models.Order, merchantID string) bool {
	q, ok := o.QuoteFor(merchantID)
	return ok && q.IsQuoteSubmitted
}

// ActiveDeliveries returns the orders a delivery boy is currently
// carrying (status delivering).
func (s *Store) ActiveDeliveries(deliveryBoyID string) []models.Order {
	return s.deliveriesByStatus(deliveryBoyID, models.StatusDelivering)
}

// DeliveryHistory returns the orders a delivery boy has completed.
func (s *Store) DeliveryHistory(deliveryBoyID string) []models.Order {
	return s.deliveriesByStatus(deliveryBoyID, models.StatusCompleted)
}

func (s *Store) deliveriesByStatus(deliveryBoyID, status string) []models.Order {
	var out []models.Order
	s.do(func(st *state) {
		for _, id := range st.orderSeq {
			o := st.orders[id]
			if o.DeliveryBoyID == deliveryBoyID && o.Status == status {
				out = append(out, cloneOrder(o))
			}
		}
	})
	return out
}

// SubmittedQuotes returns the quotes on an order a customer may choose
// from. Verification-in-progress records never appear here.
func (s *Store) SubmittedQuotes(orderID string) []models.MerchantQuote {
	var out []models.MerchantQuote
	s.do(func(st *state) {
		o, ok := st.orders[orderID]
		if !ok {
			return
		}
		for _, q := range o.SubmittedQuotes() {
			out = append(out, cloneQuote(q))
		}
	})
	return out
}

// CommissionEntry is one completed order's contribution to platform
// commission, carrying both the commission persisted by the write-side
// transitions and an independent read-time derivation from the total.
type CommissionEntry struct {
	OrderID    string   `json:"order_id"`
	MerchantID string   `json:"merchant_id,omitempty"`
	Total      float64  `json:"total"`
	Persisted  *float64 `json:"persisted_commission,omitempty"`
	Derived    float64  `json:"derived_commission"`
}

// CommissionSummary aggregates commission over completed orders. The
// persisted and derived totals are computed independently on purpose; the
// write side stamps commission at completion time and the read side
// re-derives it from total times rate. Tests check both paths separately.
type CommissionSummary struct {
	Orders         []CommissionEntry `json:"orders"`
	PersistedTotal float64           `json:"persisted_total"`
	DerivedTotal   float64           `json:"derived_total"`
	CompletedCount int               `json:"completed_count"`
}

// Commissions returns the commission aggregate over completed orders.
func (s *Store) Commissions() CommissionSummary {
	summary := CommissionSummary{Orders: []CommissionEntry{}}
	s.do(func(st *state) {
		for _, id := range st.orderSeq {
			o := st.orders[id]
			if o.Status != models.StatusCompleted {
				continue
			}
			entry := CommissionEntry{
				OrderID:    o.ID,
				MerchantID: o.MerchantID,
			}
			if o.Total != nil {
				entry.Total = *o.Total
			}
			entry.Derived = entry.Total * CommissionRate
			if o.Commission != nil {
				v := *o.Commission
				entry.Persisted = &v
				summary.PersistedTotal += v
			}
			summary.DerivedTotal += entry.Derived
			summary.CompletedCount++
			summary.Orders = append(summary.Orders, entry)
		}
	})
	return summary
}

func sortBoys(boys []models.DeliveryBoy) {
	sort.Slice(boys, func(i, j int) bool { return boys[i].ID < boys[j].ID })
}
