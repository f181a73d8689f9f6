package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgarciab/retention-portal/internal/domain"
	"github.com/dgarciab/retention-portal/internal/repository"
)

type StaffMemberView struct {
	StaffID int64  `json:"staff_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Kind    string `json:"kind"`
}

type StaffListResult struct {
	Executives []StaffMemberView `json:"executives"`
	Analysts   []StaffMemberView `json:"analysts"`
}

type BindStaffResult struct {
	Member   StaffMemberView `json:"member"`
	Messages domain.Messages `json:"messages"`
}

type UnbindStaffResult struct {
	Messages domain.Messages `json:"messages"`
}

// StaffService manages the retention department roster: binding actor
// identities to executive or analyst records and listing the active pool
// the allocator draws from.
type StaffService interface {
	AssignExecutive(ctx context.Context, identityID int64, name, email string) (*BindStaffResult, error)
	AssignAnalyst(ctx context.Context, identityID int64, name, email string) (*BindStaffResult, error)
	RemoveExecutive(ctx context.Context, identityID int64) (*UnbindStaffResult, error)
	RemoveAnalyst(ctx context.Context, identityID int64) (*UnbindStaffResult, error)
	ListActiveStaff(ctx context.Context) (*StaffListResult, error)
}

type StaffServiceImpl struct {
	BaseService
	staff repository.StaffRepository
}

func NewStaffService(db Transactor, log *slog.Logger, staff repository.StaffRepository) *StaffServiceImpl {
	return &StaffServiceImpl{
		BaseService: NewBaseService(db, log),
		staff:       staff,
	}
}

func (s *StaffServiceImpl) AssignExecutive(ctx context.Context, identityID int64, name, email string) (*BindStaffResult, error) {
	const op = "internal.service.staff.AssignExecutive"
	log := s.log.With(slog.String("op", op), slog.Int64("identity_id", identityID))

	exec, err := s.staff.BindExecutive(ctx, identityID, name, email)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to bind executive: %w", op, err)
	}

	log.Info("executive bound", slog.Int64("staff_id", exec.ID))

	var msgs domain.Messages
	msgs.Success("Executive %s added to the retention pool.", exec.Name)

	return &BindStaffResult{
		Member: StaffMemberView{
			StaffID: exec.ID,
			Name:    exec.Name,
			Email:   exec.Email,
			Kind:    string(domain.StaffExecutive),
		},
		Messages: msgs,
	}, nil
}

func (s *StaffServiceImpl) AssignAnalyst(ctx context.Context, identityID int64, name, email string) (*BindStaffResult, error) {
	const op = "internal.service.staff.AssignAnalyst"
	log := s.log.With(slog.String("op", op), slog.Int64("identity_id", identityID))

	analyst, err := s.staff.BindAnalyst(ctx, identityID, name, email)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to bind analyst: %w", op, err)
	}

	log.Info("analyst bound", slog.Int64("staff_id", analyst.ID))

	var msgs domain.Messages
	msgs.Success("Analyst %s added to the retention pool.", analyst.Name)

	return &BindStaffResult{
		Member: StaffMemberView{
			StaffID: analyst.ID,
			Name:    analyst.Name,
			Email:   analyst.Email,
			Kind:    string(domain.StaffAnalyst),
		},
		Messages: msgs,
	}, nil
}

func (s *StaffServiceImpl) RemoveExecutive(ctx context.Context, identityID int64) (*UnbindStaffResult, error) {
	const op = "internal.service.staff.RemoveExecutive"
	log := s.log.With(slog.String("op", op), slog.Int64("identity_id", identityID))

	if err := s.staff.UnbindExecutive(ctx, identityID); err != nil {
		return nil, fmt.Errorf("%s: failed to unbind executive: %w", op, err)
	}

	log.Info("executive unbound")

	var msgs domain.Messages
	msgs.Success("Executive removed from the retention pool.")

	return &UnbindStaffResult{Messages: msgs}, nil
}

func (s *StaffServiceImpl) RemoveAnalyst(ctx context.Context, identityID int64) (*UnbindStaffResult, error) {
	const op = "internal.service.staff.RemoveAnalyst"
	log := s.log.With(slog.String("op", op), slog.Int64("identity_id", identityID))

	if err := s.staff.UnbindAnalyst(ctx, identityID); err != nil {
		return nil, fmt.Errorf("%s: failed to unbind analyst: %w", op, err)
	}

	log.Info("analyst unbound")

	var msgs domain.Messages
	msgs.Success("Analyst removed from the retention pool.")

	return &UnbindStaffResult{Messages: msgs}, nil
}

func (s *StaffServiceImpl) ListActiveStaff(ctx context.Context) (*StaffListResult, error) {
	const op = "internal.service.staff.ListActiveStaff"

	executives, err := s.staff.ListActiveExecutives(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list executives: %w", op, err)
	}

	analysts, err := s.staff.ListActiveAnalysts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list analysts: %w", op, err)
	}

	result := &StaffListResult{
		Executives: make([]StaffMemberView, len(executives)),
		Analysts:   make([]StaffMemberView, len(analysts)),
	}

	for i, exec := range executives {
		result.Executives[i] = StaffMemberView{
			StaffID: exec.ID,
			Name:    exec.Name,
			Email:   exec.Email,
			Kind:    string(domain.StaffExecutive),
		}
	}

	for i, analyst := range analysts {
		result.Analysts[i] = StaffMemberView{
			StaffID: analyst.ID,
			Name:    analyst.Name,
			Email:   analyst.Email,
			Kind:    string(domain.StaffAnalyst),
		}
	}

	return result, nil
}
