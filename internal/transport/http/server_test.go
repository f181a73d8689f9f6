package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/dgarciab/retention-portal/internal/apperrors"
	"github.com/dgarciab/retention-portal/internal/domain"
	"github.com/dgarciab/retention-portal/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestServer(
	rs *RequestServiceMock,
	ss *StaffServiceMock,
	ds *DashboardServiceMock,
	cs *ClientServiceMock,
) *Server {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return NewServer(logger, rs, ss, ds, cs)
}

func TestServer_PostRequests(t *testing.T) {
	testCases := []struct {
		name                 string
		requestBody          string
		setupMocks           func(rsm *RequestServiceMock)
		expectedStatusCode   int
		expectedResponseBody string
	}{
		{
			name:        "Success",
			requestBody: `{"client_id": 9, "circuit_ids": [100, 101], "observations": "client wants out", "deactivation_date": "2026-09-30"}`,
			setupMocks: func(rsm *RequestServiceMock) {
				rsm.On("CreateRequest", mock.Anything, mock.Anything, mock.MatchedBy(func(input service.CreateRequestInput) bool {
					return input.ClientID == 9 && len(input.CircuitIDs) == 2 && !input.DeactivationDate.IsZero()
				})).Return(&service.CreateRequestResult{
					RequestID:     42,
					ExecutiveName: "Ana",
					AnalystName:   "Dana",
					Messages: domain.Messages{
						{Severity: domain.SeveritySuccess, Text: "Request SOL-42 created and assigned to Ana."},
					},
				}, nil).Once()
			},
			expectedStatusCode:   http.StatusCreated,
			expectedResponseBody: `{"request_id":42,"executive_name":"Ana","analyst_name":"Dana","messages":[{"severity":"success","text":"Request SOL-42 created and assigned to Ana."}]}`,
		},
		{
			name:        "No circuits selected",
			requestBody: `{"client_id": 9, "circuit_ids": [], "deactivation_date": "2026-09-30"}`,
			setupMocks: func(rsm *RequestServiceMock) {
				rsm.On("CreateRequest", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, apperrors.ErrNoCircuitsSelected).Once()
			},
			expectedStatusCode:   http.StatusBadRequest,
			expectedResponseBody: `{"error":"at least one circuit must be selected"}`,
		},
		{
			name:                 "Malformed date",
			requestBody:          `{"client_id": 9, "circuit_ids": [100], "deactivation_date": "30/09/2026"}`,
			setupMocks:           func(rsm *RequestServiceMock) {},
			expectedStatusCode:   http.StatusBadRequest,
			expectedResponseBody: `{"error":"field 'DeactivationDate' must be a date formatted as YYYY-MM-DD"}`,
		},
		{
			name:                 "Invalid JSON body",
			requestBody:          `{invalid json}`,
			setupMocks:           func(rsm *RequestServiceMock) {},
			expectedStatusCode:   http.StatusBadRequest,
			expectedResponseBody: `{"error":"invalid request"}`,
		},
		{
			name:        "Unknown client",
			requestBody: `{"client_id": 404, "circuit_ids": [100], "deactivation_date": "2026-09-30"}`,
			setupMocks: func(rsm *RequestServiceMock) {
				rsm.On("CreateRequest", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, apperrors.ErrNotFound).Once()
			},
			expectedStatusCode:   http.StatusNotFound,
			expectedResponseBody: `{"error":"resource not found"}`,
		},
		{
			name:        "No active executives",
			requestBody: `{"client_id": 9, "circuit_ids": [100], "deactivation_date": "2026-09-30"}`,
			setupMocks: func(rsm *RequestServiceMock) {
				rsm.On("CreateRequest", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, &apperrors.NoActiveStaffError{Kind: "executive"}).Once()
			},
			expectedStatusCode: http.StatusConflict,
		},
		{
			name:        "Seed catalogs missing",
			requestBody: `{"client_id": 9, "circuit_ids": [100], "deactivation_date": "2026-09-30"}`,
			setupMocks: func(rsm *RequestServiceMock) {
				rsm.On("CreateRequest", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, &apperrors.CatalogMisconfiguredError{Entry: "status 'Registered'"}).Once()
			},
			expectedStatusCode:   http.StatusInternalServerError,
			expectedResponseBody: `{"error":"system catalogs are not configured, run the seed migration"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			requestServiceMock := new(RequestServiceMock)
			tc.setupMocks(requestServiceMock)

			server := newTestServer(requestServiceMock, new(StaffServiceMock), new(DashboardServiceMock), new(ClientServiceMock))

			req := httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set(actorIDHeader, "11")
			req.Header.Set(actorNameHeader, "Carla")
			req.Header.Set(actorRolesHeader, "commercial_executive")

			rr := httptest.NewRecorder()
			server.Routes().ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			if tc.expectedResponseBody != "" {
				assert.JSONEq(t, tc.expectedResponseBody, rr.Body.String())
			}
			requestServiceMock.AssertExpectations(t)
		})
	}
}

func TestServer_PostRequestStatus(t *testing.T) {
	testCases := []struct {
		name               string
		target             string
		requestBody        string
		setupMocks         func(rsm *RequestServiceMock)
		expectedStatusCode int
	}{
		{
			name:        "Success",
			target:      "/requests/42/status",
			requestBody: `{"status_id": 3}`,
			setupMocks: func(rsm *RequestServiceMock) {
				rsm.On("ChangeStatus", mock.Anything, mock.Anything, int64(42), int64(3)).
					Return(&service.ChangeStatusResult{RequestID: 42, Status: domain.StatusApproved, Changed: true}, nil).Once()
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:        "Unknown status id",
			target:      "/requests/42/status",
			requestBody: `{"status_id": 99}`,
			setupMocks: func(rsm *RequestServiceMock) {
				rsm.On("ChangeStatus", mock.Anything, mock.Anything, int64(42), int64(99)).
					Return(nil, apperrors.ErrInvalidStatus).Once()
			},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Non-numeric request id",
			target:             "/requests/abc/status",
			requestBody:        `{"status_id": 3}`,
			setupMocks:         func(rsm *RequestServiceMock) {},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			requestServiceMock := new(RequestServiceMock)
			tc.setupMocks(requestServiceMock)

			server := newTestServer(requestServiceMock, new(StaffServiceMock), new(DashboardServiceMock), new(ClientServiceMock))

			req := httptest.NewRequest(http.MethodPost, tc.target, strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set(actorIDHeader, "22")
			req.Header.Set(actorNameHeader, "Rita")
			req.Header.Set(actorRolesHeader, "retention_executive")

			rr := httptest.NewRecorder()
			server.Routes().ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			requestServiceMock.AssertExpectations(t)
		})
	}
}

func TestServer_GetDashboardSummary(t *testing.T) {
	dashboardServiceMock := new(DashboardServiceMock)
	dashboardServiceMock.On("Summary", mock.Anything).Return(&service.DashboardSummaryResult{
		TotalClients:     12,
		TotalRequests:    30,
		PendingRequests:  8,
		ResolvedRequests: 22,
	}, nil).Once()

	server := newTestServer(new(RequestServiceMock), new(StaffServiceMock), dashboardServiceMock, new(ClientServiceMock))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil)
	rr := httptest.NewRecorder()
	server.Routes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"total_clients":12,"total_requests":30,"pending_requests":8,"resolved_requests":22}`, rr.Body.String())
	dashboardServiceMock.AssertExpectations(t)
}

func TestServer_PostStaffBinding(t *testing.T) {
	testCases := []struct {
		name               string
		requestBody        string
		setupMocks         func(ssm *StaffServiceMock)
		expectedStatusCode int
	}{
		{
			name:        "Bind executive",
			requestBody: `{"identity_id": 7, "kind": "executive", "name": "Ana", "email": "ana@telco.example"}`,
			setupMocks: func(ssm *StaffServiceMock) {
				ssm.On("AssignExecutive", mock.Anything, int64(7), "Ana", "ana@telco.example").
					Return(&service.BindStaffResult{Member: service.StaffMemberView{StaffID: 2, Name: "Ana", Kind: "executive"}}, nil).Once()
			},
			expectedStatusCode: http.StatusCreated,
		},
		{
			name:        "Identity already bound",
			requestBody: `{"identity_id": 7, "kind": "analyst", "name": "Dana", "email": "dana@telco.example"}`,
			setupMocks: func(ssm *StaffServiceMock) {
				ssm.On("AssignAnalyst", mock.Anything, int64(7), "Dana", "dana@telco.example").
					Return(nil, &apperrors.IdentityAlreadyBoundError{IdentityID: 7, Kind: "analyst"}).Once()
			},
			expectedStatusCode: http.StatusConflict,
		},
		{
			name:               "Unknown kind rejected by validation",
			requestBody:        `{"identity_id": 7, "kind": "manager", "name": "Eve", "email": "eve@telco.example"}`,
			setupMocks:         func(ssm *StaffServiceMock) {},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			staffServiceMock := new(StaffServiceMock)
			tc.setupMocks(staffServiceMock)

			server := newTestServer(new(RequestServiceMock), staffServiceMock, new(DashboardServiceMock), new(ClientServiceMock))

			req := httptest.NewRequest(http.MethodPost, "/staff/bindings", strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")

			rr := httptest.NewRecorder()
			server.Routes().ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			staffServiceMock.AssertExpectations(t)
		})
	}
}

func TestServer_DeleteStaffBinding(t *testing.T) {
	t.Run("Staff member with assigned requests cannot be removed", func(t *testing.T) {
		staffServiceMock := new(StaffServiceMock)
		staffServiceMock.On("RemoveExecutive", mock.Anything, int64(7)).
			Return(nil, apperrors.ErrStaffInUse).Once()

		server := newTestServer(new(RequestServiceMock), staffServiceMock, new(DashboardServiceMock), new(ClientServiceMock))

		req := httptest.NewRequest(http.MethodDelete, "/staff/bindings/executive/7", nil)
		rr := httptest.NewRecorder()
		server.Routes().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		staffServiceMock.AssertExpectations(t)
	})

	t.Run("Unknown kind is a bad request", func(t *testing.T) {
		server := newTestServer(new(RequestServiceMock), new(StaffServiceMock), new(DashboardServiceMock), new(ClientServiceMock))

		req := httptest.NewRequest(http.MethodDelete, "/staff/bindings/manager/7", nil)
		rr := httptest.NewRecorder()
		server.Routes().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestServer_GetClientSearch(t *testing.T) {
	clientServiceMock := new(ClientServiceMock)
	clientServiceMock.On("SearchClients", mock.Anything, "acme").Return([]service.ClientView{
		{ClientID: 9, TaxID: "76543210-1", Name: "Acme Telco", Status: "active"},
	}, nil).Once()

	server := newTestServer(new(RequestServiceMock), new(StaffServiceMock), new(DashboardServiceMock), clientServiceMock)

	req := httptest.NewRequest(http.MethodGet, "/clients/search?q=acme", nil)
	rr := httptest.NewRecorder()
	server.Routes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Acme Telco")
	clientServiceMock.AssertExpectations(t)
}
