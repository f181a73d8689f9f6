package service

import (
	"context"
	"database/sql"

	"github.com/dgarciab/retention-portal/internal/domain"
	"github.com/dgarciab/retention-portal/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type CatalogRepositoryMock struct {
	mock.Mock
}

var _ repository.CatalogRepository = (*CatalogRepositoryMock)(nil)

func (m *CatalogRepositoryMock) GetStatusByName(ctx context.Context, name string) (*domain.RequestStatus, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.RequestStatus), args.Error(1)
}

func (m *CatalogRepositoryMock) GetStatusByID(ctx context.Context, id int64) (*domain.RequestStatus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.RequestStatus), args.Error(1)
}

func (m *CatalogRepositoryMock) GetLevelByPosition(ctx context.Context, position int) (*domain.ApprovalLevel, error) {
	args := m.Called(ctx, position)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ApprovalLevel), args.Error(1)
}

func (m *CatalogRepositoryMock) ListStatuses(ctx context.Context) ([]domain.RequestStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.RequestStatus), args.Error(1)
}

type ClientRepositoryMock struct {
	mock.Mock
}

var _ repository.ClientRepository = (*ClientRepositoryMock)(nil)

func (m *ClientRepositoryMock) GetClientByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *ClientRepositoryMock) SearchClients(ctx context.Context, query string, limit uint64) ([]domain.Client, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *ClientRepositoryMock) GetCircuitsByClient(ctx context.Context, clientID int64) ([]domain.Circuit, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Circuit), args.Error(1)
}

type StaffRepositoryMock struct {
	mock.Mock
}

var _ repository.StaffRepository = (*StaffRepositoryMock)(nil)

func (m *StaffRepositoryMock) CursorForUpdate(ctx context.Context, tx *sqlx.Tx) (int64, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *StaffRepositoryMock) SetCursor(ctx context.Context, tx *sqlx.Tx, value int64) error {
	args := m.Called(ctx, tx, value)
	return args.Error(0)
}

func (m *StaffRepositoryMock) FirstActiveExecutiveAfter(ctx context.Context, tx *sqlx.Tx, afterID int64) (*domain.Executive, error) {
	args := m.Called(ctx, tx, afterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Executive), args.Error(1)
}

func (m *StaffRepositoryMock) FirstActiveExecutive(ctx context.Context, tx *sqlx.Tx) (*domain.Executive, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Executive), args.Error(1)
}

func (m *StaffRepositoryMock) RandomActiveAnalyst(ctx context.Context) (*domain.Analyst, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Analyst), args.Error(1)
}

func (m *StaffRepositoryMock) ListActiveExecutives(ctx context.Context) ([]domain.Executive, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Executive), args.Error(1)
}

func (m *StaffRepositoryMock) ListActiveAnalysts(ctx context.Context) ([]domain.Analyst, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Analyst), args.Error(1)
}

func (m *StaffRepositoryMock) ExecutiveByIdentity(ctx context.Context, identityID int64) (*domain.Executive, error) {
	args := m.Called(ctx, identityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Executive), args.Error(1)
}

func (m *StaffRepositoryMock) BindExecutive(ctx context.Context, identityID int64, name, email string) (*domain.Executive, error) {
	args := m.Called(ctx, identityID, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Executive), args.Error(1)
}

func (m *StaffRepositoryMock) BindAnalyst(ctx context.Context, identityID int64, name, email string) (*domain.Analyst, error) {
	args := m.Called(ctx, identityID, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Analyst), args.Error(1)
}

func (m *StaffRepositoryMock) UnbindExecutive(ctx context.Context, identityID int64) error {
	args := m.Called(ctx, identityID)
	return args.Error(0)
}

func (m *StaffRepositoryMock) UnbindAnalyst(ctx context.Context, identityID int64) error {
	args := m.Called(ctx, identityID)
	return args.Error(0)
}

type RequestCommandRepositoryMock struct {
	mock.Mock
}

var _ repository.RequestCommandRepository = (*RequestCommandRepositoryMock)(nil)

func (m *RequestCommandRepositoryMock) CreateRequest(ctx context.Context, tx *sqlx.Tx, req *domain.Request) error {
	args := m.Called(ctx, tx, req)
	return args.Error(0)
}

func (m *RequestCommandRepositoryMock) LinkCircuits(ctx context.Context, tx *sqlx.Tx, requestID int64, circuitIDs []int64) error {
	args := m.Called(ctx, tx, requestID, circuitIDs)
	return args.Error(0)
}

func (m *RequestCommandRepositoryMock) GetRequestByIDWithLock(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Request, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *RequestCommandRepositoryMock) UpdateRequestStatus(ctx context.Context, tx *sqlx.Tx, requestID, statusID int64) error {
	args := m.Called(ctx, tx, requestID, statusID)
	return args.Error(0)
}

func (m *RequestCommandRepositoryMock) AppendStatusHistory(ctx context.Context, tx *sqlx.Tx, entry *domain.StatusHistoryEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *RequestCommandRepositoryMock) AddComment(ctx context.Context, requestID int64, author, body string) (*domain.Comment, error) {
	args := m.Called(ctx, requestID, author, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Comment), args.Error(1)
}

type RequestQueryRepositoryMock struct {
	mock.Mock
}

var _ repository.RequestQueryRepository = (*RequestQueryRepositoryMock)(nil)

func (m *RequestQueryRepositoryMock) GetRequestDetail(ctx context.Context, id int64) (*domain.RequestDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.RequestDetail), args.Error(1)
}

func (m *RequestQueryRepositoryMock) ListAll(ctx context.Context) ([]domain.RequestSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.RequestSummary), args.Error(1)
}

func (m *RequestQueryRepositoryMock) ListByCreator(ctx context.Context, identityID int64) ([]domain.RequestSummary, error) {
	args := m.Called(ctx, identityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.RequestSummary), args.Error(1)
}

func (m *RequestQueryRepositoryMock) ListByExecutive(ctx context.Context, executiveID int64) ([]domain.RequestSummary, error) {
	args := m.Called(ctx, executiveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.RequestSummary), args.Error(1)
}

func (m *RequestQueryRepositoryMock) GetCircuits(ctx context.Context, requestID int64) ([]domain.Circuit, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Circuit), args.Error(1)
}

func (m *RequestQueryRepositoryMock) GetComments(ctx context.Context, requestID int64) ([]domain.Comment, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *RequestQueryRepositoryMock) GetStatusHistory(ctx context.Context, requestID int64) ([]domain.StatusHistoryView, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.StatusHistoryView), args.Error(1)
}

type ReportRepositoryMock struct {
	mock.Mock
}

var _ repository.ReportRepository = (*ReportRepositoryMock)(nil)

func (m *ReportRepositoryMock) CountClients(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *ReportRepositoryMock) CountRequests(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *ReportRepositoryMock) CountPendingRequests(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type AllocatorServiceMock struct {
	mock.Mock
}

var _ AllocatorService = (*AllocatorServiceMock)(nil)

func (m *AllocatorServiceMock) AllocateExecutive(ctx context.Context, tx *sqlx.Tx) (*domain.Executive, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Executive), args.Error(1)
}

func (m *AllocatorServiceMock) AllocateAnalyst(ctx context.Context) (*domain.Analyst, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Analyst), args.Error(1)
}

type TransactorMock struct {
	mock.Mock
}

var _ Transactor = (*TransactorMock)(nil)

func (m *TransactorMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	var tx *sqlx.Tx

	args := m.Called(ctx, opts)
	if args.Get(0) != nil {
		tx = args.Get(0).(*sqlx.Tx)
	}

	return tx, args.Error(1)
}
