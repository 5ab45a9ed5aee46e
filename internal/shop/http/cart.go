package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tradepost/internal/shop/domain"
	"github.com/aussiebroadwan/tradepost/internal/shop/service"
	"github.com/aussiebroadwan/tradepost/pkg/httpx"
	"github.com/aussiebroadwan/tradepost/pkg/slogx"
)

type CartHandler struct {
	CartService *service.CartService
}

type cartRequest struct {
	Products []domain.CartItem `json:"products"`
}

type cartResponse struct {
	UserID    string                `json:"userId"`
	CartItems []domain.CheckoutLine `json:"cartItems"`
}

type cartPriceItem struct {
	ID       string `json:"id"`
	NewPrice string `json:"newPrice"`
}

// cartPriceChanged reports the listing's current price when a checkout
// is rejected for price drift.
type cartPriceChanged struct {
	ProductIDs []cartPriceItem `json:"productIds"`
}

// ServeHTTP godoc
//
//	@Summary		Check out a cart
//	@Description	Purchases every product in the cart in one transaction.
//	@Description	Any bad item (unknown, already sold, own listing, or a
//	@Description	price that changed since it was added) fails the whole
//	@Description	batch and nothing is sold.
//	@Tags			Cart
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		cartRequest		true	"Cart contents"
//	@Success		200		{object}	httpx.Envelope	"userId, cartItems"
//	@Failure		400		{object}	httpx.Envelope	"rejected cart"
//	@Router			/api/shop/items/cart [post].
func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	buyerID := httpx.UserIDFromCtx(ctx)

	var req cartRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Checkout Unsuccessful", httpx.StatusFailed, "invalid request body")
		return
	}

	lines, err := h.CartService.Checkout(ctx, buyerID, req.Products)
	var priceErr *service.PriceChangedError
	switch {
	case err == nil:
		httpx.WriteSuccess(w, http.StatusOK, "Products added to cart", cartResponse{
			UserID:    buyerID,
			CartItems: lines,
		})
	case errors.Is(err, service.ErrProductNotFound):
		httpx.WriteFailure(w, http.StatusBadRequest, "Invalid ProductId", httpx.StatusFailed, "ProductId_Incorrect")
	case errors.Is(err, service.ErrOwnProduct):
		httpx.WriteFailure(w, http.StatusBadRequest, "Checkout Unsuccessful", httpx.StatusFailed, "You cannot buy your own product")
	case errors.Is(err, service.ErrProductSold):
		httpx.WriteFailure(w, http.StatusBadRequest, "Checkout Unsuccessful", httpx.StatusFailed, "Product is no longer available")
	case errors.As(err, &priceErr):
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.Envelope{
			Msg:    "Price has changed",
			Status: httpx.StatusFailed,
			Error:  "Price_changed",
			Data: cartPriceChanged{ProductIDs: []cartPriceItem{{
				ID:       priceErr.ProductID,
				NewPrice: priceErr.CurrentPrice,
			}}},
		})
	case errors.Is(err, service.ErrEmptyCart):
		httpx.WriteFailure(w, http.StatusBadRequest, "Checkout Unsuccessful", httpx.StatusFailed, err.Error())
	default:
		log.Error("checkout failed", "err", err)
		httpx.WriteFailure(w, http.StatusInternalServerError, "Internal server error", httpx.StatusFailed, "internal error")
	}
}
