package store

import (
	"strings"
	"time"

	"github.com/kitchencart/kitchencart-api/models"
)

// Order lifecycle transitions. Every transition silently no-ops when a
// referenced order, quote or product does not exist; callers never get an
// error back. Tests pin this permissive behavior, so it must not be
// tightened here. Validation belongs to the HTTP boundary.

// AutoPopulateNote is the fixed note attached to products whose
// verification was filled in from the merchant's inventory.
const AutoPopulateNote = "Auto-populated from inventory"

// CreateOrderInput carries everything needed to convert a shopping list
// into a new order.
type CreateOrderInput struct {
	CustomerID        uint
	Products          []models.Product
	SelectedMerchants []string
	DeliveryAddress   string
	CustomerPhone     string
}

// CreateOrder produces a new order in the requested status with product
// snapshots copied from the input. Missing address and phone are filled
// with placeholder defaults rather than rejected.
func (s *Store) CreateOrder(in CreateOrderInput) models.Order {
	var out models.Order
	s.do(func(st *state) {
		now := time.Now()
		order := &models.Order{
			ID:                newOrderID(),
			CustomerID:        in.CustomerID,
			SelectedMerchants: append([]string(nil), in.SelectedMerchants...),
			Products:          cloneProducts(in.Products),
			MerchantQuotes:    []models.MerchantQuote{},
			Status:            models.StatusRequested,
			CreatedAt:         now,
			UpdatedAt:         now,
			DeliveryAddress:   in.DeliveryAddress,
			CustomerPhone:     in.CustomerPhone,
		}
		if order.DeliveryAddress == "" {
			order.DeliveryAddress = DefaultDeliveryAddress
		}
		if order.CustomerPhone == "" {
			order.CustomerPhone = DefaultCustomerPhone
		}
		st.orders[order.ID] = order
		st.orderSeq = append(st.orderSeq, order.ID)
		out = cloneOrder(order)
	})
	return out
}

// verificationRecord returns the merchant's quote record on the order,
// lazily creating an unsubmitted one seeded with copies of the order's
// products when the merchant has not started verifying yet.
func verificationRecord(order *models.Order, merchantID string) *models.MerchantQuote {
	if q, ok := order.QuoteFor(merchantID); ok {
		return q
	}
	order.MerchantQuotes = append(order.MerchantQuotes, models.MerchantQuote{
		MerchantID:       merchantID,
		Products:         cloneProducts(order.Products),
		SubmittedAt:      nil,
		IsQuoteSubmitted: false,
	})
	return &order.MerchantQuotes[len(order.MerchantQuotes)-1]
}

// VerifyProduct records a merchant's availability and price check for a
// single product. Exactly one product entry in the merchant's record is
// touched; repeated verification of the same product overwrites the prior
// one. The order's status never changes here.
func (s *Store) VerifyProduct(orderID, merchantID, productID string, price float64, isAvailable bool, notes string) {
	s.do(func(st *state) {
		order, ok := st.orders[orderID]
		if !ok {
			return
		}
		record := verificationRecord(order, merchantID)
		for i := range record.Products {
			if record.Products[i].ID != productID {
				continue
			}
			avail := isAvailable
			updated := price
			record.Products[i].IsAvailable = &avail
			record.Products[i].UpdatedPrice = &updated
			record.Products[i].IsVerified = true
			record.Products[i].MerchantNotes = notes
			break
		}
		order.UpdatedAt = time.Now()
	})
}

// AutoPopulateMerchantQuote bulk-verifies the merchant's record from their
// inventory: products matching an inventory item by name and unit get the
// inventory price and availability; the rest are marked unverified. This
// is a shortcut equivalent to calling VerifyProduct per matched item.
func (s *Store) AutoPopulateMerchantQuote(orderID, merchantID string) {
	s.do(func(st *state) {
		order, ok := st.orders[orderID]
		if !ok {
			return
		}
		merchant, ok := st.merchants[merchantID]
		if !ok {
			return
		}
		record := verificationRecord(order, merchantID)
		for i := range record.Products {
			item, found := matchInventory(merchant.Inventory, record.Products[i])
			if !found {
				record.Products[i].IsVerified = false
				record.Products[i].IsAvailable = nil
				record.Products[i].UpdatedPrice = nil
				record.Products[i].MerchantNotes = ""
				continue
			}
			avail := item.IsAvailable
			price := item.Price
			record.Products[i].IsAvailable = &avail
			record.Products[i].UpdatedPrice = &price
			record.Products[i].IsVerified = true
			record.Products[i].MerchantNotes = AutoPopulateNote
		}
		order.UpdatedAt = time.Now()
	})
}

func matchInventory(inventory []models.MerchantInventoryItem, p models.Product) (models.MerchantInventoryItem, bool) {
	for _, item := range inventory {
		if strings.EqualFold(item.Name, p.Name) && item.Unit == p.Unit {
			return item, true
		}
	}
	return models.MerchantInventoryItem{}, false
}

// SubmitMerchantQuote submits the merchant's quote: stamps the submission
// time, marks it submitted, upserts it by merchant ID (an order never
// carries two quotes from the same merchant) and unconditionally moves the
// order to quoted, no matter how many other merchants have quoted.
//
// The quote's total is recomputed here as the sum of updatedPrice times
// quantity over the products that are both available and verified; a
// product failing either condition contributes zero. If the incoming quote
// carries no product snapshots the existing verification record's products
// are kept.
func (s *Store) SubmitMerchantQuote(orderID string, quote models.MerchantQuote) {
	s.do(func(st *state) {
		order, ok := st.orders[orderID]
		if !ok {
			return
		}
		record := verificationRecord(order, quote.MerchantID)
		if len(quote.Products) > 0 {
			record.Products = cloneProducts(quote.Products)
		}
		record.EstimatedDeliveryTime = quote.EstimatedDeliveryTime
		record.Notes = quote.Notes
		record.PaymentMethod = quote.PaymentMethod
		record.Total = quoteTotal(record.Products)
		now := time.Now()
		record.SubmittedAt = &now
		record.IsQuoteSubmitted = true

		order.Status = models.StatusQuoted
		order.UpdatedAt = now
	})
}

func quoteTotal(products []models.Product) float64 {
	var total float64
	for _, p := range products {
		if p.UpdatedPrice == nil || p.IsAvailable == nil {
			continue
		}
		if *p.IsAvailable && p.IsVerified {
			total += *p.UpdatedPrice * p.Quantity
		}
	}
	return total
}

// SelectMerchantQuote records the customer's choice: the chosen quote's
// total, delivery estimate, notes and payment method are copied onto the
// order and the order moves to confirmed. The quote record must exist but
// is accepted even if it was never submitted; filtering unsubmitted quotes
// out of the customer's view is the projection's job, not this
// transition's.
func (s *Store) SelectMerchantQuote(orderID, merchantID string) {
	s.do(func(st *state) {
		order, ok := st.orders[orderID]
		if !ok {
			return
		}
		quote, ok := order.QuoteFor(merchantID)
		if !ok {
			return
		}
		total := quote.Total
		order.Total = &total
		order.EstimatedDeliveryTime = quote.EstimatedDeliveryTime
		order.QuoteNotes = quote.Notes
		order.PaymentMethod = quote.PaymentMethod
		order.MerchantID = merchantID
		order.SelectedQuote = merchantID
		order.Status = models.StatusConfirmed
		order.UpdatedAt = time.Now()
	})
}

// OrderPatch is a merge patch for UpdateOrder. Nil fields are left alone.
type OrderPatch struct {
	Status                *string  `json:"status,omitempty"`
	Total                 *float64 `json:"total,omitempty"`
	EstimatedDeliveryTime *string  `json:"estimated_delivery_time,omitempty"`
	PaymentMethod         *string  `json:"payment_method,omitempty"`
	QuoteNotes            *string  `json:"quote_notes,omitempty"`
	DeliveryAddress       *string  `json:"delivery_address,omitempty"`
	CustomerPhone         *string  `json:"customer_phone,omitempty"`
	DeliveryBoyID         *string  `json:"delivery_boy_id,omitempty"`
}

// UpdateOrder applies a generic merge patch and refreshes updatedAt. As a
// special case, a patch that both sets the status to completed and carries
// a total also computes the platform commission.
func (s *Store) UpdateOrder(orderID string, patch OrderPatch) {
	s.do(func(st *state) {
		order, ok := st.orders[orderID]
		if !ok {
			return
		}
		if patch.Status != nil {
			order.Status = *patch.Status
		}
		if patch.Total != nil {
			v := *patch.Total
			order.Total = &v
		}
		if patch.EstimatedDeliveryTime != nil {
			order.EstimatedDeliveryTime = *patch.EstimatedDeliveryTime
		}
		if patch.PaymentMethod != nil {
			order.PaymentMethod = *patch.PaymentMethod
		}
		if patch.QuoteNotes != nil {
			order.QuoteNotes = *patch.QuoteNotes
		}
		if patch.DeliveryAddress != nil {
			order.DeliveryAddress = *patch.DeliveryAddress
		}
		if patch.CustomerPhone != nil {
			order.CustomerPhone = *patch.CustomerPhone
		}
		if patch.DeliveryBoyID != nil {
			order.DeliveryBoyID = *patch.DeliveryBoyID
		}
		if patch.Status != nil && *patch.Status == models.StatusCompleted && patch.Total != nil {
			commission := *patch.Total * CommissionRate
			order.Commission = &commission
		}
		order.UpdatedAt = time.Now()
	})
}
