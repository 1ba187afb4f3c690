package service

import (
	"context"
	"log/slog"

	"papapizza/internal/dal"
	"papapizza/internal/logger"
	"papapizza/internal/models"
)

type ReportService interface {
	GenerateDailySalesSummary(ctx context.Context) (models.SalesSummary, error)
}

type reportService struct {
	repo dal.ReportRepository
	log  *logger.Logger
}

func NewReportService(repo dal.ReportRepository, log *logger.Logger) ReportService {
	return &reportService{repo: repo, log: log}
}

// GenerateDailySalesSummary lists every recorded sale in payment order with
// the grand total.
func (s *reportService) GenerateDailySalesSummary(ctx context.Context) (models.SalesSummary, error) {
	sales, err := s.repo.GetSales(ctx)
	if err != nil {
		return models.SalesSummary{}, err
	}
	if len(sales) == 0 {
		return models.SalesSummary{}, models.ErrNoSales
	}

	total, err := s.repo.GetTotalSales(ctx)
	if err != nil {
		return models.SalesSummary{}, err
	}

	s.log.Info("sales_summarised", "daily sales summary generated",
		slog.Int("order_count", len(sales)),
		slog.String("total_sales", total.StringFixed(2)),
	)

	return models.SalesSummary{
		Entries:    sales,
		TotalSales: total,
		OrderCount: len(sales),
	}, nil
}
