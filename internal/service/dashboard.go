package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgarciab/retention-portal/internal/repository"
)

type DashboardSummaryResult struct {
	TotalClients     int `json:"total_clients"`
	TotalRequests    int `json:"total_requests"`
	PendingRequests  int `json:"pending_requests"`
	ResolvedRequests int `json:"resolved_requests"`
}

// DashboardService aggregates the counters shown on the landing page.
type DashboardService interface {
	Summary(ctx context.Context) (*DashboardSummaryResult, error)
}

type DashboardServiceImpl struct {
	BaseService
	reports repository.ReportRepository
}

func NewDashboardService(db Transactor, log *slog.Logger, reports repository.ReportRepository) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		BaseService: NewBaseService(db, log),
		reports:     reports,
	}
}

func (s *DashboardServiceImpl) Summary(ctx context.Context) (*DashboardSummaryResult, error) {
	const op = "internal.service.dashboard.Summary"

	clients, err := s.reports.CountClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to count clients: %w", op, err)
	}

	requests, err := s.reports.CountRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to count requests: %w", op, err)
	}

	pending, err := s.reports.CountPendingRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to count pending requests: %w", op, err)
	}

	return &DashboardSummaryResult{
		TotalClients:     clients,
		TotalRequests:    requests,
		PendingRequests:  pending,
		ResolvedRequests: requests - pending,
	}, nil
}
