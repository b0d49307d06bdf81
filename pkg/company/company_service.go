package company

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service interface {
	GetCurrentCompany(ctx context.Context) (Company, error)
	GetCompanyByUid(ctx context.Context, uid string) (Company, error)
	CreateCompany(ctx context.Context, c Company) (Company, error)
	UpdateCurrentCompany(ctx context.Context, name string, defaultWeeklyCapacity float64) (Company, error)
}

type ServiceImpl struct {
	repo Repo
	// fallbackCapacity applies when a company was created without a default.
	fallbackCapacity float64
}

func NewService(repo Repo, fallbackCapacity float64) *ServiceImpl {
	return &ServiceImpl{repo: repo, fallbackCapacity: fallbackCapacity}
}

func (s *ServiceImpl) GetCurrentCompany(ctx context.Context) (Company, error) {
	companyId, err := CurrentId(ctx)
	if err != nil {
		return Company{}, fmt.Errorf("failed to get current company: %w", err)
	}
	return s.repo.Get(ctx, companyId)
}

func (s *ServiceImpl) GetCompanyByUid(ctx context.Context, uid string) (Company, error) {
	return s.repo.GetByUid(ctx, uid)
}

func (s *ServiceImpl) CreateCompany(ctx context.Context, c Company) (Company, error) {
	if c.Uid == "" {
		c.Uid = uuid.NewString()
	}
	if c.DefaultWeeklyCapacity <= 0 {
		c.DefaultWeeklyCapacity = s.fallbackCapacity
	}
	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return Company{}, err
	}
	c.Id = id
	return c, nil
}

func (s *ServiceImpl) UpdateCurrentCompany(ctx context.Context, name string, defaultWeeklyCapacity float64) (Company, error) {
	current, err := s.GetCurrentCompany(ctx)
	if err != nil {
		return Company{}, err
	}
	if name != "" {
		current.Name = name
	}
	if defaultWeeklyCapacity > 0 {
		current.DefaultWeeklyCapacity = defaultWeeklyCapacity
	}
	ok, err := s.repo.Update(ctx, current)
	if err != nil {
		return Company{}, err
	}
	if !ok {
		return Company{}, ErrCompanyNotFound
	}
	return current, nil
}
