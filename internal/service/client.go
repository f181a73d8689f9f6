package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgarciab/retention-portal/internal/domain"
	"github.com/dgarciab/retention-portal/internal/repository"
)

// defaultSearchLimit caps client search results for the typeahead selector.
const defaultSearchLimit = 10

type ClientView struct {
	ClientID     int64     `json:"client_id"`
	TaxID        string    `json:"tax_id"`
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
}

// ClientService serves the client lookups behind the request creation form.
type ClientService interface {
	SearchClients(ctx context.Context, query string) ([]ClientView, error)
	CircuitsByClient(ctx context.Context, clientID int64) ([]CircuitView, error)
}

type ClientServiceImpl struct {
	BaseService
	clients repository.ClientRepository
}

func NewClientService(db Transactor, log *slog.Logger, clients repository.ClientRepository) *ClientServiceImpl {
	return &ClientServiceImpl{
		BaseService: NewBaseService(db, log),
		clients:     clients,
	}
}

func (s *ClientServiceImpl) SearchClients(ctx context.Context, query string) ([]ClientView, error) {
	const op = "internal.service.client.SearchClients"

	clients, err := s.clients.SearchClients(ctx, query, defaultSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to search clients: %w", op, err)
	}

	views := make([]ClientView, len(clients))
	for i, client := range clients {
		views[i] = toClientView(client)
	}

	return views, nil
}

func (s *ClientServiceImpl) CircuitsByClient(ctx context.Context, clientID int64) ([]CircuitView, error) {
	const op = "internal.service.client.CircuitsByClient"

	if _, err := s.clients.GetClientByID(ctx, clientID); err != nil {
		return nil, fmt.Errorf("%s: failed to resolve client: %w", op, err)
	}

	circuits, err := s.clients.GetCircuitsByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get circuits: %w", op, err)
	}

	views := make([]CircuitView, len(circuits))
	for i, circuit := range circuits {
		views[i] = CircuitView{
			CircuitID:   circuit.ID,
			Name:        circuit.Name,
			ServiceType: circuit.ServiceType,
			Status:      circuit.Status,
			MonthlyRent: circuit.MonthlyRent,
		}
	}

	return views, nil
}

func toClientView(client domain.Client) ClientView {
	return ClientView{
		ClientID:     client.ID,
		TaxID:        client.TaxID,
		Name:         client.Name,
		Status:       client.Status,
		RegisteredAt: client.RegisteredAt,
	}
}
