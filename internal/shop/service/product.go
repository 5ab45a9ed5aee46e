package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/aussiebroadwan/tradepost/internal/shop/domain"
	"github.com/aussiebroadwan/tradepost/internal/shop/store"
	"github.com/aussiebroadwan/tradepost/pkg/idx"
	"github.com/aussiebroadwan/tradepost/pkg/slogx"
)

const DefaultPageSize = 10

// ProductService manages listings and the paginated views over them.
type ProductService struct {
	Store store.Store
}

// validatePrice accepts only strictly positive decimal strings. The
// submitted string is stored verbatim so checkout can compare exactly.
func validatePrice(price string) error {
	parsed, err := strconv.ParseFloat(price, 64)
	if err != nil || parsed <= 0 {
		return &ValidationError{Message: "Invalid Price"}
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, ownerID, name, description, price string) (domain.Product, error) {
	l := slogx.FromContext(ctx)

	if name == "" {
		return domain.Product{}, &ValidationError{Message: "name may not be empty"}
	}
	if err := validatePrice(price); err != nil {
		return domain.Product{}, err
	}

	now := time.Now().UTC()
	p := domain.Product{
		ID:          idx.New().String(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Price:       price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Products().CreateProduct(ctx, p); err != nil {
		return domain.Product{}, err
	}

	l.Info("product listed", slog.String("product_id", p.ID), slog.String("owner_id", ownerID))
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.Store.Products().GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Product{}, ErrProductNotFound
		}
		return domain.Product{}, err
	}
	return p, nil
}

// getOwned loads a product and checks the caller may modify it. Sold
// listings are frozen.
func (s *ProductService) getOwned(ctx context.Context, id, callerID string) (domain.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if p.OwnerID != callerID {
		return domain.Product{}, ErrNotProductOwner
	}
	if p.Sold() {
		return domain.Product{}, ErrProductSold
	}
	return p, nil
}

// Replace overwrites every mutable field; all of them are required.
func (s *ProductService) Replace(ctx context.Context, id, callerID, name, description, price string) (domain.Product, error) {
	if name == "" && description == "" && price == "" {
		return domain.Product{}, &ValidationError{Message: "All input are required."}
	}
	if name == "" {
		return domain.Product{}, &ValidationError{Message: "name may not be empty"}
	}
	if description == "" {
		return domain.Product{}, &ValidationError{Message: "description may not be empty"}
	}
	if price == "" {
		return domain.Product{}, &ValidationError{Message: "price may not be empty"}
	}
	if err := validatePrice(price); err != nil {
		return domain.Product{}, err
	}

	p, err := s.getOwned(ctx, id, callerID)
	if err != nil {
		return domain.Product{}, err
	}

	p.Name, p.Description, p.Price = name, description, price
	if err := s.Store.Products().ReplaceProduct(ctx, p); err != nil {
		return domain.Product{}, err
	}
	return s.Get(ctx, id)
}

// Patch updates only the provided fields; at least one is required.
func (s *ProductService) Patch(ctx context.Context, id, callerID string, name, description, price *string) (domain.Product, error) {
	if name == nil && description == nil && price == nil {
		return domain.Product{}, &ValidationError{Message: "At least one input is required."}
	}
	if price != nil {
		if err := validatePrice(*price); err != nil {
			return domain.Product{}, err
		}
	}

	if _, err := s.getOwned(ctx, id, callerID); err != nil {
		return domain.Product{}, err
	}

	if err := s.Store.Products().UpdateProductFields(ctx, id, name, description, price); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Product{}, ErrProductNotFound
		}
		return domain.Product{}, err
	}
	return s.Get(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id, callerID string) error {
	if _, err := s.getOwned(ctx, id, callerID); err != nil {
		return err
	}
	if err := s.Store.Products().DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

// pageOf normalizes pagination input and assembles a ProductPage.
func pageOf(products []domain.Product, page, pageSize, total int) domain.ProductPage {
	pageCount := (total + pageSize - 1) / pageSize
	return domain.ProductPage{
		Products:      products,
		Page:          page,
		PageCount:     pageCount,
		TotalProducts: total,
	}
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

// ListAvailable pages through unsold listings. A logged-in viewer never
// sees their own listings; anonymous viewers see everything unsold.
func (s *ProductService) ListAvailable(ctx context.Context, viewerID string, page, pageSize int) (domain.ProductPage, error) {
	page, pageSize = normalizePage(page, pageSize)

	total, err := s.Store.Products().CountAvailable(ctx, viewerID)
	if err != nil {
		return domain.ProductPage{}, err
	}
	products, err := s.Store.Products().ListAvailable(ctx, viewerID, (page-1)*pageSize, pageSize)
	if err != nil {
		return domain.ProductPage{}, err
	}
	return pageOf(products, page, pageSize, total), nil
}

// ListForSale pages through a seller's unsold listings.
func (s *ProductService) ListForSale(ctx context.Context, ownerID string, page, pageSize int) (domain.ProductPage, error) {
	page, pageSize = normalizePage(page, pageSize)

	total, err := s.Store.Products().CountForSaleBy(ctx, ownerID)
	if err != nil {
		return domain.ProductPage{}, err
	}
	products, err := s.Store.Products().ListForSaleBy(ctx, ownerID, (page-1)*pageSize, pageSize)
	if err != nil {
		return domain.ProductPage{}, err
	}
	return pageOf(products, page, pageSize, total), nil
}

// ListSold pages through a seller's sold listings.
func (s *ProductService) ListSold(ctx context.Context, ownerID string, page, pageSize int) (domain.ProductPage, error) {
	page, pageSize = normalizePage(page, pageSize)

	total, err := s.Store.Products().CountSoldBy(ctx, ownerID)
	if err != nil {
		return domain.ProductPage{}, err
	}
	products, err := s.Store.Products().ListSoldBy(ctx, ownerID, (page-1)*pageSize, pageSize)
	if err != nil {
		return domain.ProductPage{}, err
	}
	return pageOf(products, page, pageSize, total), nil
}

// ListPurchased pages through a buyer's purchases.
func (s *ProductService) ListPurchased(ctx context.Context, buyerID string, page, pageSize int) (domain.ProductPage, error) {
	page, pageSize = normalizePage(page, pageSize)

	total, err := s.Store.Products().CountPurchasedBy(ctx, buyerID)
	if err != nil {
		return domain.ProductPage{}, err
	}
	products, err := s.Store.Products().ListPurchasedBy(ctx, buyerID, (page-1)*pageSize, pageSize)
	if err != nil {
		return domain.ProductPage{}, err
	}
	return pageOf(products, page, pageSize, total), nil
}
