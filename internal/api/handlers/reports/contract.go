package reports

import (
	"context"

	"github.com/m04kA/EquestrianHub/internal/service/admin/models"
)

type ReportService interface {
	Analytics(ctx context.Context) (*models.AnalyticsResponse, error)
	Customers(ctx context.Context) (*models.CustomerListResponse, error)
	CustomerSummary(ctx context.Context, userID int64) (*models.CustomerSummaryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
