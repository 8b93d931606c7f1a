package store

import "github.com/kitchencart/kitchencart-api/models"

// Cart operations. Each customer has one cart, keyed by user ID. Carts are
// pre-order scratch space; converting a cart into an order snapshots the
// products and clears it.

// Cart returns a copy of the customer's current cart.
func (s *Store) Cart(customerID uint) []models.Product {
	var out []models.Product
	s.do(func(st *state) {
		out = cloneProducts(st.carts[customerID])
	})
	if out == nil {
		out = []models.Product{}
	}
	return out
}

// AddCartItem adds a product to the cart. If an item with the same ID is
// already present its quantity is increased by the incoming quantity;
// otherwise the product is appended. Always succeeds.
func (s *Store) AddCartItem(customerID uint, product models.Product) {
	s.do(func(st *state) {
		cart := st.carts[customerID]
		for i := range cart {
			if cart[i].ID == product.ID {
				cart[i].Quantity += product.Quantity
				return
			}
		}
		st.carts[customerID] = append(cart, cloneProduct(product))
	})
}

// RemoveCartItem deletes the matching entry. Absent product IDs are a
// no-op, not an error.
func (s *Store) RemoveCartItem(customerID uint, productID string) {
	s.do(func(st *state) {
		cart := st.carts[customerID]
		for i := range cart {
			if cart[i].ID == productID {
				st.carts[customerID] = append(cart[:i], cart[i+1:]...)
				return
			}
		}
	})
}

// SetCartQuantity sets the stored quantity exactly. A quantity of zero or
// less removes the item; the cart never holds a non-positive quantity.
// Absent product IDs are a no-op.
func (s *Store) SetCartQuantity(customerID uint, productID string, quantity float64) {
	if quantity <= 0 {
		s.RemoveCartItem(customerID, productID)
		return
	}
	s.do(func(st *state) {
		cart := st.carts[customerID]
		for i := range cart {
			if cart[i].ID == productID {
				cart[i].Quantity = quantity
				return
			}
		}
	})
}

// ClearCart empties the customer's cart.
func (s *Store) ClearCart(customerID uint) {
	s.do(func(st *state) {
		delete(st.carts, customerID)
	})
}
