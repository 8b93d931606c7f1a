package store

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/kitchencart/kitchencart-api/models"
)

const (
	// CommissionRate is the platform's cut of a completed order's total.
	CommissionRate = 0.05

	// DeliveryBoyCapacity is the maximum number of concurrent orders a
	// delivery boy can carry.
	DeliveryBoyCapacity = 3

	// DefaultDeliveryAddress is filled in when an order is created or
	// assigned without an address. A convenience fallback, not an error.
	DefaultDeliveryAddress = "Customer delivery address will be provided"

	// DefaultCustomerPhone is the placeholder used when no phone is given.
	DefaultCustomerPhone = "+91-0000000000"
)

// state is the full application state tree. It is only ever touched by the
// store's single writer goroutine, so no locking is needed and no two
// transitions can interleave.
type state struct {
	merchants map[string]models.Merchant
	carts     map[uint][]models.Product
	orders    map[string]*models.Order
	orderSeq  []string // order IDs in creation sequence, for stable listings
	boys      map[string]*models.DeliveryBoy
}

// Store is the state container for carts, orders and delivery-boy runtime
// state. Every operation is a command object handed to a single writer
// goroutine and applied synchronously to completion; callers block until
// their command has run.
type Store struct {
	commands chan func(*state)
	done     chan struct{}
}

// New creates a store seeded with the merchant directory (immutable within
// a session) and the delivery-boy roster, and starts its writer goroutine.
func New(merchants []models.Merchant, boys []models.DeliveryBoy) *Store {
	st := &state{
		merchants: make(map[string]models.Merchant, len(merchants)),
		carts:     make(map[uint][]models.Product),
		orders:    make(map[string]*models.Order),
		boys:      make(map[string]*models.DeliveryBoy, len(boys)),
	}
	for _, m := range merchants {
		st.merchants[m.ID] = m
	}
	for _, b := range boys {
		boy := b
		boy.CurrentOrders = append([]string(nil), b.CurrentOrders...)
		boy.IsAvailable = len(boy.CurrentOrders) < DeliveryBoyCapacity
		st.boys[boy.ID] = &boy
	}

	s := &Store{
		commands: make(chan func(*state)),
		done:     make(chan struct{}),
	}
	go s.run(st)
	return s
}

// run applies commands one at a time until Close is called.
func (s *Store) run(st *state) {
	for {
		select {
		case cmd := <-s.commands:
			cmd(st)
		case <-s.done:
			return
		}
	}
}

// Close stops the writer goroutine. The store must not be used afterwards.
func (s *Store) Close() {
	close(s.done)
}

// do runs a command on the writer goroutine and waits for it to finish.
func (s *Store) do(fn func(*state)) {
	ran := make(chan struct{})
	s.commands <- func(st *state) {
		fn(st)
		close(ran)
	}
	<-ran
}

// newOrderID mints a short, URL-friendly order identifier.
func newOrderID() string {
	return fmt.Sprintf("ord-%s", uuid.NewString()[:8])
}

// cloneProducts deep-copies a product list so callers never share memory
// with the state tree.
func cloneProducts(products []models.Product) []models.Product {
	if products == nil {
		return nil
	}
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = cloneProduct(p)
	}
	return out
}

func cloneProduct(p models.Product) models.Product {
	if p.ExpectedPrice != nil {
		v := *p.ExpectedPrice
		p.ExpectedPrice = &v
	}
	if p.IsAvailable != nil {
		v := *p.IsAvailable
		p.IsAvailable = &v
	}
	if p.UpdatedPrice != nil {
		v := *p.UpdatedPrice
		p.UpdatedPrice = &v
	}
	return p
}

func cloneQuote(q models.MerchantQuote) models.MerchantQuote {
	q.Products = cloneProducts(q.Products)
	if q.SubmittedAt != nil {
		v := *q.SubmittedAt
		q.SubmittedAt = &v
	}
	return q
}

func cloneOrder(o *models.Order) models.Order {
	out := *o
	out.SelectedMerchants = append([]string(nil), o.SelectedMerchants...)
	out.Products = cloneProducts(o.Products)
	out.MerchantQuotes = make([]models.MerchantQuote, len(o.MerchantQuotes))
	for i, q := range o.MerchantQuotes {
		out.MerchantQuotes[i] = cloneQuote(q)
	}
	if o.Total != nil {
		v := *o.Total
		out.Total = &v
	}
	if o.Commission != nil {
		v := *o.Commission
		out.Commission = &v
	}
	return out
}

func cloneBoy(b *models.DeliveryBoy) models.DeliveryBoy {
	out := *b
	out.CurrentOrders = append([]string(nil), b.CurrentOrders...)
	return out
}

// Merchants returns the seeded merchant directory sorted by ID.
func (s *Store) Merchants() []models.Merchant {
	var out []models.Merchant
	s.do(func(st *state) {
		out = make([]models.Merchant, 0, len(st.merchants))
		for _, m := range st.merchants {
			out = append(out, m)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Global store instance, initialized once at startup. Tests swap it out
// with Set the same way the database handle is swapped.
var storeInstance *Store

// Init creates the global store instance.
func Init(merchants []models.Merchant, boys []models.DeliveryBoy) *Store {
	storeInstance = New(merchants, boys)
	return storeInstance
}

// Get returns the global store instance.
func Get() *Store {
	return storeInstance
}

// Set replaces the global store instance (primarily for testing).
func Set(s *Store) {
	storeInstance = s
}
