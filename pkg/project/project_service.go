package project

import (
	"context"
	"fmt"

	"github.com/staffpad/staffpad/pkg/company"
)

type Service interface {
	GetAllProjects(ctx context.Context) ([]Project, error)
	GetProject(ctx context.Context, id int) (Project, error)
	CreateProject(ctx context.Context, name string, code string) (Project, error)
	DeleteProject(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetAllProjects(ctx context.Context) ([]Project, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current company: %w", err)
	}
	return s.repo.GetAll(ctx, companyId)
}

func (s *ServiceImpl) GetProject(ctx context.Context, id int) (Project, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return Project{}, fmt.Errorf("failed to get current company: %w", err)
	}
	return s.repo.Get(ctx, companyId, id)
}

func (s *ServiceImpl) CreateProject(ctx context.Context, name string, code string) (Project, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return Project{}, fmt.Errorf("failed to get current company: %w", err)
	}
	p := Project{CompanyId: companyId, Name: name, Code: code}
	id, err := s.repo.Create(ctx, companyId, p)
	if err != nil {
		return Project{}, err
	}
	p.Id = id
	return p, nil
}

func (s *ServiceImpl) DeleteProject(ctx context.Context, id int) error {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current company: %w", err)
	}
	ok, err := s.repo.Delete(ctx, companyId, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProjectNotFound
	}
	return nil
}
