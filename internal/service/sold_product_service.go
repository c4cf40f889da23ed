package service

import (
	"context"
	"time"

	"billtrack/internal/dto"
	"billtrack/internal/model"
	"billtrack/internal/repository"

	"github.com/google/uuid"
)

// SoldProductService records manual sale entries. Recording a sale never
// mutates the catalog; the reconciliation derives stock impact from the row.
type SoldProductService interface {
	Create(ctx context.Context, companyID string, req dto.CreateSoldProductRequest) (*dto.SoldProductResponse, error)
	List(ctx context.Context, companyID string) ([]dto.SoldProductResponse, error)
	Delete(ctx context.Context, companyID string, id uuid.UUID) error
}

type soldProductService struct {
	soldProducts repository.SoldProductRepository
}

func NewSoldProductService(soldProducts repository.SoldProductRepository) SoldProductService {
	return &soldProductService{soldProducts: soldProducts}
}

func (s *soldProductService) Create(ctx context.Context, companyID string, req dto.CreateSoldProductRequest) (*dto.SoldProductResponse, error) {
	soldDate := time.Now()
	if req.SoldDate != nil {
		soldDate = *req.SoldDate
	}

	sp := &model.SoldProduct{
		CompanyID: companyID,
		ItemCode:  req.ItemCode,
		ItemName:  req.ItemName,
		Quantity:  req.Quantity,
		Invoice:   req.Invoice,
		SoldDate:  soldDate,
	}
	if err := s.soldProducts.Create(ctx, sp); err != nil {
		return nil, err
	}
	resp := toSoldProductResponse(sp)
	return &resp, nil
}

func (s *soldProductService) List(ctx context.Context, companyID string) ([]dto.SoldProductResponse, error) {
	rows, err := s.soldProducts.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SoldProductResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toSoldProductResponse(&rows[i]))
	}
	return out, nil
}

func (s *soldProductService) Delete(ctx context.Context, companyID string, id uuid.UUID) error {
	return s.soldProducts.Delete(ctx, companyID, id)
}

func toSoldProductResponse(sp *model.SoldProduct) dto.SoldProductResponse {
	return dto.SoldProductResponse{
		ID:       sp.ID.String(),
		ItemCode: sp.ItemCode,
		ItemName: sp.ItemName,
		Quantity: sp.Quantity,
		Invoice:  sp.Invoice,
		SoldDate: sp.SoldDate,
	}
}
