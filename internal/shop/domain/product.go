package domain

import "time"

// Product is a listing in the shop. Price is kept as the exact decimal
// string the seller submitted; checkout compares it verbatim so a price
// change between listing and purchase is always detected.
type Product struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Price       string
	BuyerID     string // empty until sold
	CreatedAt   time.Time
	UpdatedAt   time.Time
	SoldAt      time.Time // zero until sold
}

// Sold reports whether the listing has been purchased.
func (p Product) Sold() bool {
	return p.BuyerID != ""
}

// ProductPage is a single page of listings plus cursor bookkeeping.
type ProductPage struct {
	Products      []Product
	Page          int
	PageCount     int
	TotalProducts int
}

func (pg ProductPage) HasNext() bool {
	return pg.Page < pg.PageCount
}

func (pg ProductPage) HasPrevious() bool {
	return pg.Page > 1
}
