package store

import (
	"testing"

	"github.com/kitchencart/kitchencart-api/models"
	"github.com/stretchr/testify/assert"
)

func TestCreateOrder_DefaultsAndStatus(t *testing.T) {
	s := newTestStore(t)

	order := s.CreateOrder(CreateOrderInput{
		CustomerID:        1,
		Products:          requestedProducts(),
		SelectedMerchants: []string{"m1", "m2"},
	})

	assert.Equal(t, models.StatusRequested, order.Status)
	assert.Empty(t, order.MerchantQuotes)
	assert.Equal(t, []string{"m1", "m2"}, order.SelectedMerchants)
	assert.Equal(t, DefaultDeliveryAddress, order.DeliveryAddress)
	assert.Equal(t, DefaultCustomerPhone, order.CustomerPhone)
	assert.NotEmpty(t, order.ID)
	assert.False(t, order.CreatedAt.IsZero())
}

func TestCreateOrder_KeepsProvidedContactDetails(t *testing.T) {
	s := newTestStore(t)

	order := s.CreateOrder(CreateOrderInput{
		CustomerID:        1,
		Products:          requestedProducts(),
		SelectedMerchants: []string{"m1"},
		DeliveryAddress:   "12 MG Road, Bengaluru",
		CustomerPhone:     "+91-9876543210",
	})

	assert.Equal(t, "12 MG Road, Bengaluru", order.DeliveryAddress)
	assert.Equal(t, "+91-9876543210", order.CustomerPhone)
}

func TestVerifyProduct_CreatesUnsubmittedRecord(t *testing.T) {
	s := newTestStore(t)
	order := s.CreateOrder(CreateOrderInput{CustomerID: 1, Products: requestedProducts(), SelectedMerchants: []string{"m1"}})

	s.VerifyProduct(order.ID, "m1", "p1", 50, true, "fresh stock")

	updated, _ := s.Order(order.ID)
	quote, ok := updated.QuoteFor("m1")
	assert.True(t, ok)
	assert.False(t, quote.IsQuoteSubmitted)
	assert.Nil(t, quote.SubmittedAt)

	// Verification in progress is not a visible quote and does not move
	// the order along.
	assert.Equal(t, models.StatusRequested, updated.Status)
	assert.Empty(t, s.SubmittedQuotes(order.ID))
}

func TestVerifyProduct_TouchesOnlyTargetProduct(t *testing.T) {
	s := newTestStore(t)
	order := s.CreateOrder(CreateOrderInput{CustomerID: 1, Products: requestedProducts(), SelectedMerchants: []string{"m1"}})

	s.VerifyProduct(order.ID, "m1", "p1", 50, true, "fresh stock")

	updated, _ := s.Order(order.ID)
	quote, _ := updated.QuoteFor("m1")

	verified := quote.Products[0]
	assert.Equal(t, "p1", verified.ID)
	assert.True(t, verified.IsVerified)
	assert.Equal(t, float64(50), *verified.UpdatedPrice)
	assert.True(t, *verified.IsAvailable)
	assert.Equal(t, "fresh stock", verified.MerchantNotes)

	untouched := quote.Products[1]
	assert.Equal(t, "p2", untouched.ID)
	assert.False(t, untouched.IsVerified)
	assert.Nil(t, untouched.UpdatedPrice)
	assert.Nil(t, untouched.IsAvailable)
	assert.Empty(t, untouched.MerchantNotes)
}

func TestVerifyProduct_RepeatOverwrites(t *testing.T) {
	s := newTestStore(t)
	order := s.CreateOrder(CreateOrderInput{CustomerID: 1, Products: requestedProducts(), SelectedMerchants: []string{"m1"}})

	s.VerifyProduct(order.ID, "m1", "p1", 50, true, "first pass")
	s.VerifyProduct(order.ID, "m1", "p1", 45, false, "out of stock after all")

	updated, _ := s.Order(order.ID)
	quote, _ := updated.QuoteFor("m1")
	assert.Equal(t, float64(45), *quote.Products[0].UpdatedPrice)
	assert.False(t, *quote.Products[0].IsAvailable)
	assert.Equal(t, "out of stock after all", quote.Products[0].MerchantNotes)

	// Still exactly one record for the merchant.
	count := 0
	for _, q := range updated.MerchantQuotes {
		if q.MerchantID == "m1" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestVerifyProduct_UnknownOrderIsNoop(t *testing.T) {
	s := newTestStore(t)

	// Must not panic or create anything.
	s.VerifyProduct("ord-missing", "m1", "p1", 50, true, "")

	assert.Empty(t, s.Orders())
}

func TestAutoPopulateMerchantQuote(t *testing.T) {
	s := newTestStore(t)
	order := s.CreateOrder(CreateOrderInput{
		CustomerID: 1,
		Products: []models.Product{
			{ID: "p1", Name: "Tomatoes", Quantity: 2, Unit: models.UnitKg},
			{ID: "p2", Name: "Milk", Quantity: 1, Unit: models.UnitLiter},
			{ID: "p3", Name: "Saffron", Quantity: 1, Unit: models.UnitGram}, // not stocked by m1
			{ID: "p4", Name: "Basmati Rice", Quantity: 2, Unit: models.UnitKg},
		},
		SelectedMerchants: []string{"m1"},
	})

	s.AutoPopulateMerchantQuote(order.ID, "m1")

	updated, _ := s.Order(order.ID)
	quote, ok := updated.QuoteFor("m1")
	assert.True(t, ok)
	assert.False(t, quote.IsQuoteSubmitted)

	// Matched against m1's inventory by name and unit.
	tomatoes := quote.Products[0]
	assert.True(t, tomatoes.IsVerified)
	assert.Equal(t, float64(40), *tomatoes.UpdatedPrice)
	assert.True(t, *tomatoes.IsAvailable)
	assert.Equal(t, AutoPopulateNote, tomatoes.MerchantNotes)

	milk := quote.Products[1]
	assert.True(t, milk.IsVerified)
	assert.Equal(t, float64(60), *milk.UpdatedPrice)

	// No inventory match leaves the product unverified.
	saffron := quote.Products[2]
	assert.False(t, saffron.IsVerified)
	assert.Nil(t, saffron.UpdatedPrice)
	assert.Nil(t, saffron.IsAvailable)

	// Stocked but flagged unavailable in inventory carries that flag over.
	rice := quote.Products[3]
	assert.True(t, rice.IsVerified)
	assert.False(t, *rice.IsAvailable)
	assert.Equal(t, float64(120), *rice.UpdatedPrice)
}

func TestSubmitMerchantQuote_TotalSkipsUnavailableAndUnverified(t *testing.T) {
	s := newTestStore(t)
	order := s.CreateOrder(CreateOrderInput{CustomerID: 1, Products: requestedProducts(), SelectedMerchants: []string{"m1"}})

	// Scenario A: product 1 available at 50, product 2 unavailable at 30.
	s.VerifyProduct(order.ID, "m1", "p1", 50, true, "")
	s.VerifyProduct(order.ID, "m1", "p2", 30, false, "")
	s.SubmitMerchantQuote(order.ID, models.MerchantQuote{
		MerchantID:            "m1",
		EstimatedDeliveryTime: "45 mins",
		PaymentMethod:         models.PaymentUPI,
	})

	updated, _ := s.Order(order.ID)
	assert.Equal(t, models.StatusQuoted, updated.Status)

	quote, _ := updated.QuoteFor("m1")
	assert.True(t, quote.IsQuoteSubmitted)
	assert.NotNil(t, quote.SubmittedAt)
	// 50 x 2 for tomatoes; unavailable milk contributes zero.
	assert.Equal(t, float64(100), quote.Total)
}

func TestSubmitMerchantQuote_UpsertsByMerchantID(t *testing.T) {
	s := newTestStore(t)
	order := s.CreateOrder(CreateOrderInput{CustomerID: 1, Products: requestedProducts(), SelectedMerchants: []string{"m1"}})

	s.VerifyProduct(order.ID, "m1", "p1", 50, true, "")
	s.VerifyProduct(order.ID, "m1", "p2", 30, true, "")
	s.SubmitMerchantQuote(order.ID, models.MerchantQuote{MerchantID: "m1", PaymentMethod: models.PaymentCOD})
	s.SubmitMerchantQuote(order.ID, models.MerchantQuote{MerchantID: "m1", PaymentMethod: models.PaymentUPI})

	updated, _ := s.Order(order.ID)
	assert.Len(t, updated.MerchantQuotes, 1)
	assert.Equal(t, models.PaymentUPI, updated.MerchantQuotes[0].PaymentMethod)
}

func TestSubmitMerchantQuote_EachSubmissionForcesQuoted(t *testing.T) {
	s := newTestStore(t)
	order := s.CreateOrder(CreateOrderInput{CustomerID: 1, Products: requestedProducts(), SelectedMerchants: []string{"m1", "m2"}})

	s.VerifyProduct(order.ID, "m1", "p1", 50, true, "")
	s.SubmitMerchantQuote(order.ID, models.MerchantQuote{MerchantID: "m1"})

	updated, _ := s.Order(order.ID)
	assert.Equal(t, models.StatusQuoted, updated.Status)

	// A second merchant submitting keeps the order quoted and both quotes
	// stay visible and selectable.
	s.VerifyProduct(order.ID, "m2", "p1", 48, true, "")
	s.SubmitMerchantQuote(order.ID, models.MerchantQuote{MerchantID: "m2"})

	updated, _ = s.Order(order.ID)
	assert.Equal(t, models.StatusQuoted, updated.Status)
	assert.Len(t, updated.MerchantQuotes, 2)
	assert.Len(t, s.SubmittedQuotes(order.ID), 2)
}

func TestSelectMerchantQuote_CopiesQuoteOntoOrder(t *testing.T) {
	s := newTestStore(t)
	order := s.CreateOrder(CreateOrderInput{CustomerID: 1, Products: requestedProducts(), SelectedMerchants: []string{"m1", "m2"}})

	// Scenario B: two merchants quote, customer picks the second.
	s.VerifyProduct(order.ID, "m1", "p1", 50, true, "")
	s.VerifyProduct(order.ID, "m1", "p2", 60, true, "")
	s.SubmitMerchantQuote(order.ID, models.MerchantQuote{MerchantID: "m1", EstimatedDeliveryTime: "60 mins", PaymentMethod: models.PaymentCOD})

	s.VerifyProduct(order.ID, "m2", "p1", 45, true, "")
	s.VerifyProduct(order.ID, "m2", "p2", 55, true, "")
	s.SubmitMerchantQuote(order.ID, models.MerchantQuote{MerchantID: "m2", EstimatedDeliveryTime: "40 mins", Notes: "free delivery", PaymentMethod: models.PaymentUPI})

	assert.Len(t, s.SubmittedQuotes(order.ID), 2)

	s.SelectMerchantQuote(order.ID, "m2")

	updated, _ := s.Order(order.ID)
	assert.Equal(t, models.StatusConfirmed, updated.Status)
	assert.Equal(t, "m2", updated.MerchantID)
	assert.Equal(t, "m2", updated.SelectedQuote)
	// 45 x 2 + 55 x 1
	assert.Equal(t, float64(145), *updated.Total)
	assert.Equal(t, "40 mins", updated.EstimatedDeliveryTime)
	assert.Equal(t, "free delivery", updated.QuoteNotes)
	assert.Equal(t, models.PaymentUPI, updated.PaymentMethod)
}

func TestSelectMerchantQuote_AcceptsUnsubmittedQuote(t *testing.T) {
	s := newTestStore(t)
	order := s.CreateOrder(CreateOrderInput{CustomerID: 1, Products: requestedProducts(), SelectedMerchants: []string{"m1"}})

	// Only verification has happened; the quote was never submitted. The
	// state machine still accepts the selection; keeping unsubmitted
	// quotes out of the customer's view is the projection's job.
	s.VerifyProduct(order.ID, "m1", "p1", 50, true, "")
	s.SelectMerchantQuote(order.ID, "m1")

	updated, _ := s.Order(order.ID)
	assert.Equal(t, models.StatusConfirmed, updated.Status)
	assert.Equal(t, "m1", updated.SelectedQuote)
}

func TestSelectMerchantQuote_MissingQuoteIsNoop(t *testing.T) {
	s := newTestStore(t)
	order := s.CreateOrder(CreateOrderInput{CustomerID: 1, Products: requestedProducts(), SelectedMerchants: []string{"m1"}})

	s.SelectMerchantQuote(order.ID, "m2")

	updated, _ := s.Order(order.ID)
	assert.Equal(t, models.StatusRequested, updated.Status)
	assert.Empty(t, updated.SelectedQuote)
}

func TestUpdateOrder_MergePatch(t *testing.T) {
	s := newTestStore(t)
	order := s.CreateOrder(CreateOrderInput{CustomerID: 1, Products: requestedProducts(), SelectedMerchants: []string{"m1"}})

	status := models.StatusProcessing
	address := "48 Brigade Road, Bengaluru"
	s.UpdateOrder(order.ID, OrderPatch{Status: &status, DeliveryAddress: &address})

	updated, _ := s.Order(order.ID)
	assert.Equal(t, models.StatusProcessing, updated.Status)
	assert.Equal(t, address, updated.DeliveryAddress)
	// Untouched fields survive the patch.
	assert.Equal(t, DefaultCustomerPhone, updated.CustomerPhone)
	assert.Nil(t, updated.Commission)
}

func TestUpdateOrder_CompletedWithTotalComputesCommission(t *testing.T) {
	s := newTestStore(t)
	order := s.CreateOrder(CreateOrderInput{CustomerID: 1, Products: requestedProducts(), SelectedMerchants: []string{"m1"}})

	status := models.StatusCompleted
	s.UpdateOrder(order.ID, OrderPatch{Status: &status, Total: floatPtr(200)})

	updated, _ := s.Order(order.ID)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.NotNil(t, updated.Commission)
	assert.InDelta(t, 10.0, *updated.Commission, 0.0001)
}

func TestUpdateOrder_CompletedWithoutTotalSkipsCommission(t *testing.T) {
	s := newTestStore(t)
	order := s.CreateOrder(CreateOrderInput{CustomerID: 1, Products: requestedProducts(), SelectedMerchants: []string{"m1"}})

	status := models.StatusCompleted
	s.UpdateOrder(order.ID, OrderPatch{Status: &status})

	updated, _ := s.Order(order.ID)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Nil(t, updated.Commission)
}

func TestUpdateOrder_UnknownOrderIsNoop(t *testing.T) {
	s := newTestStore(t)

	status := models.StatusCompleted
	s.UpdateOrder("ord-missing", OrderPatch{Status: &status, Total: floatPtr(100)})

	assert.Empty(t, s.Orders())
}
