package dal

import (
	"context"
	"fmt"

	"papapizza/internal/models"

	"github.com/shopspring/decimal"
)

type ReportRepository interface {
	RecordSale(ctx context.Context, entry models.SaleEntry) error
	GetSales(ctx context.Context) ([]models.SaleEntry, error)
	GetTotalSales(ctx context.Context) (decimal.Decimal, error)
}

// reportRepository is the append-only daily sales ledger. Entries are never
// removed, even when their order is.
type reportRepository struct {
	sales []models.SaleEntry
}

func NewReportRepository() ReportRepository {
	return &reportRepository{}
}

func (r *reportRepository) RecordSale(ctx context.Context, entry models.SaleEntry) error {
	for _, sale := range r.sales {
		if sale.OrderID == entry.OrderID {
			return fmt.Errorf("%w: %s", models.ErrSaleAlreadyRecorded, entry.OrderID)
		}
	}
	r.sales = append(r.sales, entry)
	return nil
}

func (r *reportRepository) GetSales(ctx context.Context) ([]models.SaleEntry, error) {
	sales := make([]models.SaleEntry, len(r.sales))
	copy(sales, r.sales)
	return sales, nil
}

func (r *reportRepository) GetTotalSales(ctx context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, sale := range r.sales {
		total = total.Add(sale.Amount)
	}
	return total, nil
}
