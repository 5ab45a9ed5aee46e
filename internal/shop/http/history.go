package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/tradepost/internal/shop/domain"
	"github.com/aussiebroadwan/tradepost/internal/shop/service"
	"github.com/aussiebroadwan/tradepost/pkg/httpx"
	"github.com/aussiebroadwan/tradepost/pkg/slogx"
)

type HistoryHandler struct {
	ProductService *service.ProductService
}

func (h *HistoryHandler) serve(
	w http.ResponseWriter,
	r *http.Request,
	list func(ctx context.Context, userID string, page, pageSize int) (domain.ProductPage, error),
) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	page, pageSize := pageParams(r)
	result, err := list(ctx, httpx.UserIDFromCtx(ctx), page, pageSize)
	if err != nil {
		log.Error("history query failed", "err", err)
		httpx.WriteFailure(w, http.StatusBadRequest, "Error", httpx.StatusFailed, "internal error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPageJSON(result))
}

// HandleForSale godoc
//
//	@Summary		My listings for sale
//	@Tags			History
//	@Security		BearerAuth
//	@Produce		json
//	@Param			page		query		string		false	"page number"
//	@Param			page_size	query		string		false	"items per page"
//	@Success		200			{object}	pageJSON	"paginated unsold listings"
//	@Router			/api/shop/history/sale [get].
func (h *HistoryHandler) HandleForSale(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.ProductService.ListForSale)
}

// HandleSold godoc
//
//	@Summary		My sold products
//	@Tags			History
//	@Security		BearerAuth
//	@Produce		json
//	@Param			page		query		string		false	"page number"
//	@Param			page_size	query		string		false	"items per page"
//	@Success		200			{object}	pageJSON	"paginated sold listings"
//	@Router			/api/shop/history/sold [get].
func (h *HistoryHandler) HandleSold(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.ProductService.ListSold)
}

// HandlePurchased godoc
//
//	@Summary		My purchases
//	@Tags			History
//	@Security		BearerAuth
//	@Produce		json
//	@Param			page		query		string		false	"page number"
//	@Param			page_size	query		string		false	"items per page"
//	@Success		200			{object}	pageJSON	"paginated purchases"
//	@Router			/api/shop/history/purchased [get].
func (h *HistoryHandler) HandlePurchased(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.ProductService.ListPurchased)
}
