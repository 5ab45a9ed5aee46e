package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrUserNotFound       = errors.New("invalid username")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
	ErrDuplicateUser      = errors.New("username already exists")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrProductNotFound    = errors.New("product not found")
	ErrNotProductOwner    = errors.New("not the product owner")
	ErrProductSold        = errors.New("product already sold")
	ErrOwnProduct         = errors.New("cannot buy your own product")
	ErrPriceChanged       = errors.New("product price has changed")
	ErrEmptyCart          = errors.New("cart is empty")
)

// ValidationError carries the first violated rule's message. Rules run
// in a fixed order so clients always see the same message for the same
// input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// PriceChangedError rejects a checkout line whose submitted price no
// longer matches the listing. It carries the listing's current price so
// clients can show what the item costs now.
type PriceChangedError struct {
	ProductID    string
	CurrentPrice string
}

func (e *PriceChangedError) Error() string {
	return fmt.Sprintf("price of product %s is now %s", e.ProductID, e.CurrentPrice)
}

// Is makes errors.Is(err, ErrPriceChanged) match the typed error.
func (e *PriceChangedError) Is(target error) bool { return target == ErrPriceChanged }

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
