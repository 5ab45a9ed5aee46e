package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tradepost/internal/shop/service"
	"github.com/aussiebroadwan/tradepost/pkg/httpx"
	"github.com/aussiebroadwan/tradepost/pkg/slogx"
)

type ProductItemHandler struct {
	ProductService *service.ProductService
}

type productPatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
}

// writeProductError maps service failures for single-item operations.
func writeProductError(w http.ResponseWriter, err error, failMsg string) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		httpx.WriteFailure(w, http.StatusNotFound, "No product found", httpx.StatusFailed, "Product_not_found")
	case errors.Is(err, service.ErrNotProductOwner):
		httpx.WriteFailure(w, http.StatusForbidden, failMsg, httpx.StatusFailed, err.Error())
	case errors.Is(err, service.ErrProductSold):
		httpx.WriteFailure(w, http.StatusBadRequest, failMsg, httpx.StatusFailed, err.Error())
	case service.IsValidation(err):
		httpx.WriteFailure(w, http.StatusBadRequest, failMsg, httpx.StatusFailed, err.Error())
	default:
		httpx.WriteFailure(w, http.StatusInternalServerError, failMsg, httpx.StatusFailed, "internal error")
	}
}

// HandleGet godoc
//
//	@Summary		Get a product
//	@Tags			Products
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string			true	"Product ID"
//	@Success		200	{object}	httpx.Envelope	"product details"
//	@Failure		404	{object}	httpx.Envelope	"unknown product"
//	@Router			/api/shop/items/{id} [get].
func (h *ProductItemHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	product, err := h.ProductService.Get(ctx, r.PathValue("id"))
	if err != nil {
		writeProductError(w, err, "Invalid ID")
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Product details retrieved successfully", toProductJSON(product))
}

// HandleReplace godoc
//
//	@Summary		Replace a product
//	@Description	Overwrites name, description and price. Every field is
//	@Description	required; only the owner may modify an unsold listing.
//	@Tags			Products
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Product ID"
//	@Param			body	body		productRequest	true	"Replacement details"
//	@Success		200		{object}	httpx.Envelope	"the updated product"
//	@Failure		400		{object}	httpx.Envelope	"missing field or invalid price"
//	@Failure		403		{object}	httpx.Envelope	"not the owner"
//	@Failure		404		{object}	httpx.Envelope	"unknown product"
//	@Router			/api/shop/items/{id} [put].
func (h *ProductItemHandler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Product not updated", httpx.StatusFailed, "invalid request body")
		return
	}

	product, err := h.ProductService.Replace(ctx, r.PathValue("id"), httpx.UserIDFromCtx(ctx),
		req.Name, req.Description, req.Price)
	if err != nil {
		log.Info("product replace rejected", "err", err)
		writeProductError(w, err, "Product not updated")
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Product Updated", toProductJSON(product))
}

// HandlePatch godoc
//
//	@Summary		Update parts of a product
//	@Description	Updates only the provided fields; at least one is required.
//	@Tags			Products
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Product ID"
//	@Param			body	body		productPatchRequest	true	"Fields to update"
//	@Success		200		{object}	httpx.Envelope		"the updated product"
//	@Failure		400		{object}	httpx.Envelope		"no fields or invalid price"
//	@Failure		403		{object}	httpx.Envelope		"not the owner"
//	@Failure		404		{object}	httpx.Envelope		"unknown product"
//	@Router			/api/shop/items/{id} [patch].
func (h *ProductItemHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req productPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Product not updated", httpx.StatusFailed, "invalid request body")
		return
	}

	product, err := h.ProductService.Patch(ctx, r.PathValue("id"), httpx.UserIDFromCtx(ctx),
		req.Name, req.Description, req.Price)
	if err != nil {
		log.Info("product patch rejected", "err", err)
		writeProductError(w, err, "Product not updated")
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Product Updated", toProductJSON(product))
}

// HandleDelete godoc
//
//	@Summary		Delete a product
//	@Tags			Products
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string			true	"Product ID"
//	@Success		200	{object}	httpx.Envelope	"no data"
//	@Failure		403	{object}	httpx.Envelope	"not the owner"
//	@Failure		404	{object}	httpx.Envelope	"unknown product"
//	@Router			/api/shop/items/{id} [delete].
func (h *ProductItemHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.ProductService.Delete(ctx, r.PathValue("id"), httpx.UserIDFromCtx(ctx)); err != nil {
		writeProductError(w, err, "Error deleting product")
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Product Deleted", nil)
}
