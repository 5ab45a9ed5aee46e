package domain

import "time"

// CartItem is a product reference submitted at checkout. Price echoes
// what the buyer saw when the item was added; the purchase fails if it
// no longer matches the listing.
type CartItem struct {
	ProductID string `json:"product_id"`
	Price     string `json:"price"`
}

// CheckoutLine is the per-product confirmation returned after checkout.
type CheckoutLine struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
}

// Purchase records a completed checkout line.
type Purchase struct {
	ProductID   string
	BuyerID     string
	Price       string
	PurchasedAt time.Time
}
