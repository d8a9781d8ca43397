package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/hyukraeyo/reservation-app-sub000/internal/domain"
	catalogRepo "github.com/hyukraeyo/reservation-app-sub000/internal/infra/storage/catalog"
)

var (
	// ErrServiceNotFound is returned when the service is not in the catalog
	ErrServiceNotFound = errors.New("service not found")

	// ErrInternal is returned on internal service failures
	ErrInternal = errors.New("catalog service: internal error")
)

// Repository is the catalog storage interface
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.SalonService, error)
	List(ctx context.Context) ([]*domain.SalonService, error)
}

// Logger is the logging interface consumed by the service
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ServiceResponse is the catalog entry representation
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// ServiceListResponse is the whole catalog
type ServiceListResponse struct {
	Services []*ServiceResponse `json:"services"`
}

// Service exposes the read-only salon catalog
type Service struct {
	repo   Repository
	logger Logger
}

// NewService creates the catalog service
func NewService(repo Repository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns the whole catalog
func (s *Service) List(ctx context.Context) (*ServiceListResponse, error) {
	services, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &ServiceListResponse{Services: make([]*ServiceResponse, len(services))}
	for i, svc := range services {
		resp.Services[i] = &ServiceResponse{
			ID:              svc.ID,
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
		}
	}

	return resp, nil
}

// GetByID returns one catalog entry
func (s *Service) GetByID(ctx context.Context, id int64) (*ServiceResponse, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return &ServiceResponse{
		ID:              svc.ID,
		Name:            svc.Name,
		DurationMinutes: svc.DurationMinutes,
		Price:           svc.Price,
	}, nil
}
