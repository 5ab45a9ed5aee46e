package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/aussiebroadwan/tradepost/internal/shop/domain"
)

// decodeJSON reads a JSON request body into dst. A malformed body
// surfaces as a plain error the handlers turn into a 400.
func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// productJSON is the client-facing listing shape.
type productJSON struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	Price       string    `json:"price"`
}

func toProductJSON(p domain.Product) productJSON {
	return productJSON{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		Price:       p.Price,
	}
}

// pageJSON is the pagination wrapper for listing and history endpoints.
// The mixed key casing is part of the public contract.
type pageJSON struct {
	HasNext       bool          `json:"hasNext"`
	HasPrevious   bool          `json:"hasPrevious"`
	Page          int           `json:"Page"`
	PageCount     int           `json:"PageCount"`
	TotalProducts int           `json:"TotalProducts"`
	Products      []productJSON `json:"Products"`
}

func toPageJSON(pg domain.ProductPage) pageJSON {
	products := make([]productJSON, 0, len(pg.Products))
	for _, p := range pg.Products {
		products = append(products, toProductJSON(p))
	}
	return pageJSON{
		HasNext:       pg.HasNext(),
		HasPrevious:   pg.HasPrevious(),
		Page:          pg.Page,
		PageCount:     pg.PageCount,
		TotalProducts: pg.TotalProducts,
		Products:      products,
	}
}

// pageParams pulls page/page_size query values with their defaults.
func pageParams(r *http.Request) (page, pageSize int) {
	page, pageSize = 1, 10
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = n
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			pageSize = n
		}
	}
	return page, pageSize
}
