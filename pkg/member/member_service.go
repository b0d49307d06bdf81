package member

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/staffpad/staffpad/pkg/company"
)

type Service interface {
	GetAllMembers(ctx context.Context) ([]Member, error)
	GetMembersByType(ctx context.Context, memberType Type) ([]Member, error)
	GetMemberByUid(ctx context.Context, uid string) (Member, error)
	// InviteMember creates a pre-registered member; they become active when
	// they first sign in.
	InviteMember(ctx context.Context, displayName string, email string, weeklyCapacity *float64) (Member, error)
	UpdateMember(ctx context.Context, m Member) (Member, error)
	ActivateMember(ctx context.Context, uid string) (Member, error)
	DeleteMember(ctx context.Context, uid string) error
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetAllMembers(ctx context.Context) ([]Member, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current company: %w", err)
	}
	return s.repo.GetAll(ctx, companyId)
}

func (s *ServiceImpl) GetMembersByType(ctx context.Context, memberType Type) ([]Member, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current company: %w", err)
	}
	return s.repo.GetAllByType(ctx, companyId, memberType)
}

func (s *ServiceImpl) GetMemberByUid(ctx context.Context, uid string) (Member, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return Member{}, fmt.Errorf("failed to get current company: %w", err)
	}
	return s.repo.GetByUid(ctx, companyId, uid)
}

func (s *ServiceImpl) InviteMember(ctx context.Context, displayName string, email string, weeklyCapacity *float64) (Member, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return Member{}, fmt.Errorf("failed to get current company: %w", err)
	}
	m := Member{
		Uid:            uuid.NewString(),
		CompanyId:      companyId,
		DisplayName:    displayName,
		Email:          email,
		Type:           PreRegistered,
		WeeklyCapacity: weeklyCapacity,
	}
	id, err := s.repo.Create(ctx, companyId, m)
	if err != nil {
		return Member{}, err
	}
	m.Id = id
	return m, nil
}

func (s *ServiceImpl) UpdateMember(ctx context.Context, m Member) (Member, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return Member{}, fmt.Errorf("failed to get current company: %w", err)
	}
	ok, err := s.repo.Update(ctx, companyId, m)
	if err != nil {
		return Member{}, err
	}
	if !ok {
		return Member{}, ErrMemberNotFound
	}
	return m, nil
}

func (s *ServiceImpl) ActivateMember(ctx context.Context, uid string) (Member, error) {
	m, err := s.GetMemberByUid(ctx, uid)
	if err != nil {
		return Member{}, err
	}
	if m.Type == Active {
		return m, nil
	}
	m.Type = Active
	return s.UpdateMember(ctx, m)
}

func (s *ServiceImpl) DeleteMember(ctx context.Context, uid string) error {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current company: %w", err)
	}
	m, err := s.repo.GetByUid(ctx, companyId, uid)
	if err != nil {
		return err
	}
	ok, err := s.repo.Delete(ctx, companyId, m.Id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMemberNotFound
	}
	return nil
}
