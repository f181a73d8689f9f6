// package http implements the HTTP transport layer for the service.
// It handles incoming requests, decodes them, calls the appropriate service methods,
// and encodes the responses.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dgarciab/retention-portal/internal/apperrors"
	"github.com/dgarciab/retention-portal/internal/domain"
	"github.com/dgarciab/retention-portal/internal/service"
	"github.com/dgarciab/retention-portal/internal/validation"
	"github.com/dgarciab/retention-portal/pkg/logger/sl"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the dependencies for the HTTP server, including the logger and service interfaces.
type Server struct {
	log              *slog.Logger
	requestService   service.RequestService
	staffService     service.StaffService
	dashboardService service.DashboardService
	clientService    service.ClientService
}

// NewServer creates a new instance of the HTTP server.
func NewServer(
	log *slog.Logger,
	rs service.RequestService,
	ss service.StaffService,
	ds service.DashboardService,
	cs service.ClientService,
) *Server {
	return &Server{
		log:              log,
		requestService:   rs,
		staffService:     ss,
		dashboardService: ds,
		clientService:    cs,
	}
}

// Routes sets up the router with all middleware and API endpoints.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)
	mux.Use(s.actorContext)

	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/requests", func(r chi.Router) {
		r.Post("/", s.PostRequests)
		r.Get("/", s.GetRequests)
		r.Get("/{requestID}", s.GetRequest)
		r.Post("/{requestID}/status", s.PostRequestStatus)
		r.Post("/{requestID}/comments", s.PostRequestComment)
	})

	mux.Get("/statuses", s.GetStatuses)
	mux.Get("/dashboard/summary", s.GetDashboardSummary)

	mux.Route("/clients", func(r chi.Router) {
		r.Get("/search", s.GetClientSearch)
		r.Get("/{clientID}/circuits", s.GetClientCircuits)
	})

	mux.Route("/staff", func(r chi.Router) {
		r.Get("/", s.GetStaff)
		r.Post("/bindings", s.PostStaffBinding)
		r.Delete("/bindings/{kind}/{identityID}", s.DeleteStaffBinding)
	})

	return mux
}

func (s *Server) PostRequests(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostRequests"

	var req createRequestRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	input := service.CreateRequestInput{
		ClientID:     req.ClientID,
		CircuitIDs:   req.CircuitIDs,
		Observations: req.Observations,
	}

	if req.DeactivationDate != "" {
		date, err := time.Parse(time.DateOnly, req.DeactivationDate)
		if err != nil {
			s.handleServiceError(w, r, op, fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err))
			return
		}

		input.DeactivationDate = date
	}

	result, err := s.requestService.CreateRequest(r.Context(), getActor(r.Context()), input)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, result)
}

func (s *Server) GetRequests(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetRequests"

	result, err := s.requestService.ListRequests(r.Context(), getActor(r.Context()))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, result)
}

func (s *Server) GetRequest(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetRequest"

	requestID, err := pathID(r, "requestID")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	result, err := s.requestService.ViewRequest(r.Context(), getActor(r.Context()), requestID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, result)
}

func (s *Server) PostRequestStatus(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostRequestStatus"

	requestID, err := pathID(r, "requestID")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req changeStatusRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	result, err := s.requestService.ChangeStatus(r.Context(), getActor(r.Context()), requestID, req.StatusID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, result)
}

func (s *Server) PostRequestComment(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostRequestComment"

	requestID, err := pathID(r, "requestID")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req addCommentRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	result, err := s.requestService.AddComment(r.Context(), getActor(r.Context()), requestID, req.Text)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, result)
}

func (s *Server) GetStatuses(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetStatuses"

	statuses, err := s.requestService.ListStatuses(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]service.StatusView{"statuses": statuses})
}

func (s *Server) GetDashboardSummary(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetDashboardSummary"

	summary, err := s.dashboardService.Summary(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, summary)
}

func (s *Server) GetClientSearch(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetClientSearch"

	clients, err := s.clientService.SearchClients(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]service.ClientView{"clients": clients})
}

func (s *Server) GetClientCircuits(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetClientCircuits"

	clientID, err := pathID(r, "clientID")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	circuits, err := s.clientService.CircuitsByClient(r.Context(), clientID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]service.CircuitView{"circuits": circuits})
}

func (s *Server) GetStaff(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetStaff"

	result, err := s.staffService.ListActiveStaff(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, result)
}

func (s *Server) PostStaffBinding(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostStaffBinding"

	var req bindStaffRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var (
		result *service.BindStaffResult
		err    error
	)

	switch domain.StaffKind(req.Kind) {
	case domain.StaffExecutive:
		result, err = s.staffService.AssignExecutive(r.Context(), req.IdentityID, req.Name, req.Email)
	case domain.StaffAnalyst:
		result, err = s.staffService.AssignAnalyst(r.Context(), req.IdentityID, req.Name, req.Email)
	}

	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, result)
}

func (s *Server) DeleteStaffBinding(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.DeleteStaffBinding"

	identityID, err := pathID(r, "identityID")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var result *service.UnbindStaffResult

	switch domain.StaffKind(chi.URLParam(r, "kind")) {
	case domain.StaffExecutive:
		result, err = s.staffService.RemoveExecutive(r.Context(), identityID)
	case domain.StaffAnalyst:
		result, err = s.staffService.RemoveAnalyst(r.Context(), identityID)
	default:
		err = fmt.Errorf("%w: unknown staff kind", apperrors.ErrInvalidRequest)
	}

	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, result)
}

// respond is a helper function to encode data to JSON and write it to the response.
// It centralizes setting the Content-Type header and writing the status code.
func (s *Server) respond(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

// respondError is a convenience wrapper around respond for sending simple error messages.
func (s *Server) respondError(w http.ResponseWriter, code int, message string) {
	s.respond(w, code, map[string]string{"error": message})
}

// decodeAndValidate is a helper that deserializes a JSON request body into a struct
// and then runs validation checks on it.
func (s *Server) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	if err := validation.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}

// decode is a helper function to decode a JSON request body.
func (s *Server) decode(body io.ReadCloser, v interface{}) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", apperrors.ErrInvalidRequest, name)
	}

	return id, nil
}

// handleServiceError provides centralized error handling for all HTTP handlers.
// It logs the internal error and maps it to a user-friendly HTTP response.
func (s *Server) handleServiceError(w http.ResponseWriter, _ *http.Request, op string, err error) {
	log := s.log.With(slog.String("op", op))
	log.Error("service error occurred", sl.Err(err))

	var (
		validationErr    *validation.ValidationError
		noStaffErr       *apperrors.NoActiveStaffError
		boundErr         *apperrors.IdentityAlreadyBoundError
		misconfiguredErr *apperrors.CatalogMisconfiguredError
	)

	switch {
	case errors.As(err, &validationErr):
		s.respondError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, apperrors.ErrInvalidRequest):
		s.respondError(w, http.StatusBadRequest, "invalid request")
	case errors.Is(err, apperrors.ErrNoCircuitsSelected):
		s.respondError(w, http.StatusBadRequest, apperrors.ErrNoCircuitsSelected.Error())
	case errors.Is(err, apperrors.ErrMissingDeactivationDate):
		s.respondError(w, http.StatusBadRequest, apperrors.ErrMissingDeactivationDate.Error())
	case errors.Is(err, apperrors.ErrEmptyComment):
		s.respondError(w, http.StatusBadRequest, apperrors.ErrEmptyComment.Error())
	case errors.Is(err, apperrors.ErrInvalidStatus):
		s.respondError(w, http.StatusBadRequest, apperrors.ErrInvalidStatus.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "resource not found")
	case errors.As(err, &boundErr):
		s.respondError(w, http.StatusConflict, boundErr.Error())
	case errors.Is(err, apperrors.ErrAlreadyExists):
		s.respondError(w, http.StatusConflict, "resource already exists")
	case errors.Is(err, apperrors.ErrStaffInUse):
		s.respondError(w, http.StatusConflict, apperrors.ErrStaffInUse.Error())
	case errors.As(err, &noStaffErr):
		s.respondError(w, http.StatusConflict, noStaffErr.Error())
	case errors.As(err, &misconfiguredErr):
		s.respondError(w, http.StatusInternalServerError, "system catalogs are not configured, run the seed migration")
	default:
		s.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
