package availability

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/availability/models"
)

type AvailabilityService interface {
	CreateWindow(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error)
	UpdateWindow(ctx context.Context, id int64, req *models.UpdateWindowRequest) (*models.WindowResponse, error)
	DeleteWindow(ctx context.Context, id int64) error
	GetWindow(ctx context.Context, id int64) (*models.WindowResponse, error)
	ListWindows(ctx context.Context, req *models.ListWindowsRequest) (*models.WindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
