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

type StaffService interface {
	Create(ctx context.Context, companyID string, req dto.CreateStaffRequest) (*dto.StaffResponse, error)
	Get(ctx context.Context, companyID string, id uuid.UUID) (*dto.StaffResponse, error)
	List(ctx context.Context, companyID, department string) ([]dto.StaffResponse, error)
	Update(ctx context.Context, companyID string, id uuid.UUID, req dto.UpdateStaffRequest) (*dto.StaffResponse, error)
	Delete(ctx context.Context, companyID string, id uuid.UUID) error
}

type staffService struct {
	staff repository.StaffRepository
}

func NewStaffService(staff repository.StaffRepository) StaffService {
	return &staffService{staff: staff}
}

func (s *staffService) Create(ctx context.Context, companyID string, req dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	st := &model.Staff{
		CompanyID:  companyID,
		Name:       req.Name,
		Role:       req.Role,
		Department: req.Department,
		Phone:      req.Phone,
		Email:      req.Email,
		Salary:     req.Salary,
		Active:     true,
	}
	if err := s.staff.Create(ctx, st); err != nil {
		return nil, err
	}
	resp := toStaffResponse(st)
	return &resp, nil
}

func (s *staffService) Get(ctx context.Context, companyID string, id uuid.UUID) (*dto.StaffResponse, error) {
	st, err := s.staff.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp := toStaffResponse(st)
	return &resp, nil
}

func (s *staffService) List(ctx context.Context, companyID, department string) ([]dto.StaffResponse, error) {
	staff, err := s.staff.List(ctx, companyID, department)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StaffResponse, 0, len(staff))
	for i := range staff {
		out = append(out, toStaffResponse(&staff[i]))
	}
	return out, nil
}

func (s *staffService) Update(ctx context.Context, companyID string, id uuid.UUID, req dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	st, err := s.staff.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Role != nil {
		st.Role = *req.Role
	}
	if req.Department != nil {
		st.Department = *req.Department
	}
	if req.Phone != nil {
		st.Phone = *req.Phone
	}
	if req.Email != nil {
		st.Email = *req.Email
	}
	if req.Salary != nil {
		st.Salary = *req.Salary
	}
	if req.Active != nil {
		st.Active = *req.Active
	}

	if err := s.staff.Update(ctx, st); err != nil {
		return nil, err
	}
	resp := toStaffResponse(st)
	return &resp, nil
}

func (s *staffService) Delete(ctx context.Context, companyID string, id uuid.UUID) error {
	return s.staff.SoftDelete(ctx, companyID, id)
}

func toStaffResponse(st *model.Staff) dto.StaffResponse {
	return dto.StaffResponse{
		ID:         st.ID.String(),
		Name:       st.Name,
		Role:       st.Role,
		Department: st.Department,
		Phone:      st.Phone,
		Email:      st.Email,
		Salary:     st.Salary,
		Active:     st.Active,
	}
}
