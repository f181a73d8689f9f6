package http

import (
	"context"

	"github.com/dgarciab/retention-portal/internal/domain"
	"github.com/dgarciab/retention-portal/internal/service"
	"github.com/stretchr/testify/mock"
)

type RequestServiceMock struct {
	mock.Mock
}

var _ service.RequestService = (*RequestServiceMock)(nil)

func (m *RequestServiceMock) CreateRequest(ctx context.Context, actor domain.Actor, input service.CreateRequestInput) (*service.CreateRequestResult, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.CreateRequestResult), args.Error(1)
}

func (m *RequestServiceMock) ListRequests(ctx context.Context, actor domain.Actor) (*service.RequestListResult, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.RequestListResult), args.Error(1)
}

func (m *RequestServiceMock) ViewRequest(ctx context.Context, actor domain.Actor, requestID int64) (*service.RequestDetailResult, error) {
	args := m.Called(ctx, actor, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.RequestDetailResult), args.Error(1)
}

func (m *RequestServiceMock) ChangeStatus(ctx context.Context, actor domain.Actor, requestID, statusID int64) (*service.ChangeStatusResult, error) {
	args := m.Called(ctx, actor, requestID, statusID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.ChangeStatusResult), args.Error(1)
}

func (m *RequestServiceMock) AddComment(ctx context.Context, actor domain.Actor, requestID int64, text string) (*service.CommentResult, error) {
	args := m.Called(ctx, actor, requestID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.CommentResult), args.Error(1)
}

func (m *RequestServiceMock) ListStatuses(ctx context.Context) ([]service.StatusView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]service.StatusView), args.Error(1)
}

type StaffServiceMock struct {
	mock.Mock
}

var _ service.StaffService = (*StaffServiceMock)(nil)

func (m *StaffServiceMock) AssignExecutive(ctx context.Context, identityID int64, name, email string) (*service.BindStaffResult, error) {
	args := m.Called(ctx, identityID, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.BindStaffResult), args.Error(1)
}

func (m *StaffServiceMock) AssignAnalyst(ctx context.Context, identityID int64, name, email string) (*service.BindStaffResult, error) {
	args := m.Called(ctx, identityID, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.BindStaffResult), args.Error(1)
}

func (m *StaffServiceMock) RemoveExecutive(ctx context.Context, identityID int64) (*service.UnbindStaffResult, error) {
	args := m.Called(ctx, identityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.UnbindStaffResult), args.Error(1)
}

func (m *StaffServiceMock) RemoveAnalyst(ctx context.Context, identityID int64) (*service.UnbindStaffResult, error) {
	args := m.Called(ctx, identityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.UnbindStaffResult), args.Error(1)
}

func (m *StaffServiceMock) ListActiveStaff(ctx context.Context) (*service.StaffListResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.StaffListResult), args.Error(1)
}

type DashboardServiceMock struct {
	mock.Mock
}

var _ service.DashboardService = (*DashboardServiceMock)(nil)

func (m *DashboardServiceMock) Summary(ctx context.Context) (*service.DashboardSummaryResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.DashboardSummaryResult), args.Error(1)
}

type ClientServiceMock struct {
	mock.Mock
}

var _ service.ClientService = (*ClientServiceMock)(nil)

func (m *ClientServiceMock) SearchClients(ctx context.Context, query string) ([]service.ClientView, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]service.ClientView), args.Error(1)
}

func (m *ClientServiceMock) CircuitsByClient(ctx context.Context, clientID int64) ([]service.CircuitView, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]service.CircuitView), args.Error(1)
}
