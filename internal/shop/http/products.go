package http

import (
	"net/http"

	"github.com/aussiebroadwan/tradepost/internal/shop/service"
	"github.com/aussiebroadwan/tradepost/pkg/httpx"
	"github.com/aussiebroadwan/tradepost/pkg/slogx"
)

type ProductsHandler struct {
	ProductService *service.ProductService
}

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

// HandleList godoc
//
//	@Summary		Browse listings
//	@Description	Pages through products for sale. Works without a token;
//	@Description	logged-in callers never see their own listings.
//	@Tags			Products
//	@Produce		json
//	@Param			page		query		string		false	"page number"
//	@Param			page_size	query		string		false	"items per page"
//	@Success		200			{object}	pageJSON	"paginated listings"
//	@Router			/api/shop/items [get].
func (h *ProductsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	page, pageSize := pageParams(r)
	viewerID := httpx.UserIDFromCtx(ctx)

	result, err := h.ProductService.ListAvailable(ctx, viewerID, page, pageSize)
	if err != nil {
		log.Error("listing products failed", "err", err)
		httpx.WriteFailure(w, http.StatusBadRequest, "Error", httpx.StatusFailed, "No products found")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPageJSON(result))
}

// HandleCreate godoc
//
//	@Summary		List a product for sale
//	@Tags			Products
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		productRequest	true	"Product details"
//	@Success		201		{object}	httpx.Envelope	"the created product"
//	@Failure		400		{object}	httpx.Envelope	"invalid price or missing name"
//	@Router			/api/shop/items [post].
func (h *ProductsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Product not created", httpx.StatusFailed, "invalid request body")
		return
	}

	product, err := h.ProductService.Create(ctx, httpx.UserIDFromCtx(ctx), req.Name, req.Description, req.Price)
	switch {
	case err == nil:
		httpx.WriteSuccess(w, http.StatusCreated, "Product created successfully", toProductJSON(product))
	case service.IsValidation(err):
		httpx.WriteFailure(w, http.StatusBadRequest, "Product not created", httpx.StatusFailed, err.Error())
	default:
		log.Error("product create failed", "err", err)
		httpx.WriteFailure(w, http.StatusInternalServerError, "Product not created", httpx.StatusFailed, "internal error")
	}
}
