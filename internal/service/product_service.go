package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"billtrack/internal/dto"
	"billtrack/internal/model"
	"billtrack/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	productCachePrefix = "product:code:"
	productCacheTTL    = 5 * time.Minute
)

// ProductService is the catalog CRUD plus the cached price-lookup used by
// the billing frontend while composing a bill.
type ProductService interface {
	Create(ctx context.Context, companyID string, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, companyID string, id uuid.UUID) (*dto.ProductResponse, error)
	GetByCode(ctx context.Context, companyID, itemCode string) (*dto.ProductResponse, error)
	List(ctx context.Context, companyID string) ([]dto.ProductResponse, error)
	Update(ctx context.Context, companyID string, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, companyID string, id uuid.UUID) error
	Restock(ctx context.Context, companyID string, id uuid.UUID, quantity int) (*dto.ProductResponse, error)
}

type productService struct {
	products repository.ProductRepository
	cache    *redis.Client
}

func NewProductService(products repository.ProductRepository, cache *redis.Client) ProductService {
	return &productService{products: products, cache: cache}
}

func (s *productService) Create(ctx context.Context, companyID string, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := &model.Product{
		CompanyID: companyID,
		ItemCode:  req.ItemCode,
		ItemName:  req.ItemName,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		GST:       req.GST,
		HSN:       req.HSN,
		Active:    true,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, companyID, p.ItemCode)
	resp := toProductResponse(p)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, companyID string, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp := toProductResponse(p)
	return &resp, nil
}

// GetByCode serves the hot path of bill composition: read-through cache on
// item code. Cache failures degrade to the database silently.
func (s *productService) GetByCode(ctx context.Context, companyID, itemCode string) (*dto.ProductResponse, error) {
	key := productCachePrefix + companyID + ":" + itemCode

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
			var resp dto.ProductResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	p, err := s.products.FindByItemCode(ctx, companyID, itemCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	resp := toProductResponse(p)
	if s.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, key, data, productCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("product cache set failed")
			}
		}
	}
	return &resp, nil
}

func (s *productService) List(ctx context.Context, companyID string) ([]dto.ProductResponse, error) {
	products, err := s.products.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out, nil
}

func (s *productService) Update(ctx context.Context, companyID string, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.ItemName != nil {
		p.ItemName = *req.ItemName
	}
	if req.UnitPrice != nil {
		p.UnitPrice = *req.UnitPrice
	}
	if req.GST != nil {
		p.GST = *req.GST
	}
	if req.HSN != nil {
		p.HSN = *req.HSN
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, companyID, p.ItemCode)
	resp := toProductResponse(p)
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, companyID string, id uuid.UUID) error {
	p, err := s.products.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.products.SoftDelete(ctx, companyID, id); err != nil {
		return err
	}
	s.invalidate(ctx, companyID, p.ItemCode)
	return nil
}

// Restock resets the nominal quantity to the counted stock on hand.
func (s *productService) Restock(ctx context.Context, companyID string, id uuid.UUID, quantity int) (*dto.ProductResponse, error) {
	if err := s.products.Restock(ctx, companyID, id, quantity); err != nil {
		return nil, err
	}
	p, err := s.products.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.invalidate(ctx, companyID, p.ItemCode)
	resp := toProductResponse(p)
	return &resp, nil
}

func (s *productService) invalidate(ctx context.Context, companyID, itemCode string) {
	if s.cache == nil || itemCode == "" {
		return
	}
	if err := s.cache.Del(ctx, productCachePrefix+companyID+":"+itemCode).Err(); err != nil {
		log.Warn().Err(err).Str("item_code", itemCode).Msg("product cache invalidation failed")
	}
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        p.ID.String(),
		ItemCode:  p.ItemCode,
		ItemName:  p.ItemName,
		Quantity:  p.Quantity,
		UnitPrice: p.UnitPrice,
		GST:       p.GST,
		HSN:       p.HSN,
		Active:    p.Active,
	}
}
