package get_services

import (
	"context"

	catalogService "github.com/hyukraeyo/reservation-app-sub000/internal/service/catalog"
)

type CatalogService interface {
	List(ctx context.Context) (*catalogService.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
