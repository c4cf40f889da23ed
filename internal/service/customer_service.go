package service

import (
	"context"
	"errors"

	"billtrack/internal/dto"
	"billtrack/internal/model"
	"billtrack/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerService interface {
	Create(ctx context.Context, companyID string, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	Get(ctx context.Context, companyID string, id uuid.UUID) (*dto.CustomerResponse, error)
	List(ctx context.Context, companyID, search string) ([]dto.CustomerResponse, error)
	Update(ctx context.Context, companyID string, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Delete(ctx context.Context, companyID string, id uuid.UUID) error
}

type customerService struct {
	customers repository.CustomerRepository
}

func NewCustomerService(customers repository.CustomerRepository) CustomerService {
	return &customerService{customers: customers}
}

func (s *customerService) Create(ctx context.Context, companyID string, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c := &model.Customer{
		CompanyID: companyID,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		GSTIN:     req.GSTIN,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

func (s *customerService) Get(ctx context.Context, companyID string, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

func (s *customerService) List(ctx context.Context, companyID, search string) ([]dto.CustomerResponse, error) {
	customers, err := s.customers.List(ctx, companyID, search)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, toCustomerResponse(&customers[i]))
	}
	return out, nil
}

func (s *customerService) Update(ctx context.Context, companyID string, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.GSTIN != nil {
		c.GSTIN = *req.GSTIN
	}

	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

func (s *customerService) Delete(ctx context.Context, companyID string, id uuid.UUID) error {
	return s.customers.Delete(ctx, companyID, id)
}

func toCustomerResponse(c *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:      c.ID.String(),
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address,
		GSTIN:   c.GSTIN,
	}
}
