package models

import "time"

// Units a product quantity can be expressed in.
const (
	UnitGram   = "gram"
	UnitKg     = "kg"
	UnitNumber = "number"
	UnitLiter  = "liter"
	UnitPiece  = "piece"
)

// Payment methods a merchant can offer on a quote.
const (
	PaymentCOD    = "COD"
	PaymentOnline = "Online"
	PaymentUPI    = "UPI"
)

// Order lifecycle statuses. Cancelled is declared for parity with the
// status union but no transition currently reaches it.
const (
	StatusRequested  = "requested"
	StatusQuoted     = "quoted"
	StatusConfirmed  = "confirmed"
	StatusProcessing = "processing"
	StatusDelivering = "delivering"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Product is a requested line item. Inside a cart only the request fields
// are meaningful; inside a merchant's quote record the verification fields
// (IsAvailable, UpdatedPrice, IsVerified, MerchantNotes) carry that
// merchant's per-product verification state.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	ExpectedPrice *float64 `json:"expected_price,omitempty"` // what the customer hopes to pay
	Quantity      float64  `json:"quantity"`
	Unit          string   `json:"unit"` // gram, kg, number, liter, piece
	IsAvailable   *bool    `json:"is_available,omitempty"`
	UpdatedPrice  *float64 `json:"updated_price,omitempty"`
	IsVerified    bool     `json:"is_verified"`
	MerchantNotes string   `json:"merchant_notes,omitempty"`
}

// MerchantQuote is one merchant's verification/quote record for an order.
// While IsQuoteSubmitted is false the record is verification in progress
// and must not surface as a visible quote. SubmittedAt is nil until the
// quote is actually submitted.
type MerchantQuote struct {
	MerchantID            string     `json:"merchant_id"`
	Products              []Product  `json:"products"`
	Total                 float64    `json:"total"`
	EstimatedDeliveryTime string     `json:"estimated_delivery_time,omitempty"`
	Notes                 string     `json:"notes,omitempty"`
	PaymentMethod         string     `json:"payment_method,omitempty"` // COD, Online, UPI
	SubmittedAt           *time.Time `json:"submitted_at,omitempty"`
	IsQuoteSubmitted      bool       `json:"is_quote_submitted"`
}

// Order is the aggregate transaction. It owns copies of its Products and
// MerchantQuotes; nothing in an Order shares memory with a merchant's
// inventory or a customer's live cart. Orders live only in the in-memory
// store and reset on restart.
type Order struct {
	ID                    string          `json:"id"`
	CustomerID            uint            `json:"customer_id"`
	MerchantID            string          `json:"merchant_id,omitempty"` // set once a quote is selected
	SelectedMerchants     []string        `json:"selected_merchants"`
	DeliveryBoyID         string          `json:"delivery_boy_id,omitempty"`
	Products              []Product       `json:"products"` // original request, immutable after creation
	MerchantQuotes        []MerchantQuote `json:"merchant_quotes"`
	SelectedQuote         string          `json:"selected_quote,omitempty"` // merchant ID of the chosen quote
	Status                string          `json:"status"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
	EstimatedDeliveryTime string          `json:"estimated_delivery_time,omitempty"`
	PaymentMethod         string          `json:"payment_method,omitempty"`
	Total                 *float64        `json:"total,omitempty"`
	Commission            *float64        `json:"commission,omitempty"`
	QuoteNotes            string          `json:"quote_notes,omitempty"`
	DeliveryAddress       string          `json:"delivery_address,omitempty"`
	CustomerPhone         string          `json:"customer_phone,omitempty"`
}

// QuoteFor returns the merchant's quote record on the order, submitted or
// not, along with whether one exists.
func (o *Order) QuoteFor(merchantID string) (*MerchantQuote, bool) {
	for i := range o.MerchantQuotes {
		if o.MerchantQuotes[i].MerchantID == merchantID {
			return &o.MerchantQuotes[i], true
		}
	}
	return nil, false
}

// SubmittedQuotes returns only the quotes that have actually been
// submitted. Verification-in-progress records are filtered out.
func (o *Order) SubmittedQuotes() []MerchantQuote {
	quotes := make([]MerchantQuote, 0, len(o.MerchantQuotes))
	for _, q := range o.MerchantQuotes {
		if q.IsQuoteSubmitted && q.SubmittedAt != nil {
			quotes = append(quotes, q)
		}
	}
	return quotes
}
