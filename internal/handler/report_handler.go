package handler

import (
	"context"

	"papapizza/internal/console"
	"papapizza/internal/service"
)

type ReportHandler struct {
	reportService service.ReportService
	console       *console.Console
	storeName     string
}

func NewReportHandler(reportService service.ReportService, c *console.Console, storeName string) *ReportHandler {
	return &ReportHandler{reportService: reportService, console: c, storeName: storeName}
}

// DailySummary handles `order summary`.
func (h *ReportHandler) DailySummary(ctx context.Context, args []string) error {
	summary, err := h.reportService.GenerateDailySalesSummary(ctx)
	if err != nil {
		return respondWithError(h.console, err)
	}

	for _, entry := range summary.Entries {
		h.console.Plain("order %s: %s", entry.OrderID,
			h.console.Sprint(console.StyleSuccess, "$"+entry.Amount.StringFixed(2)))
	}
	h.console.Success("total sales for today: $%s", summary.TotalSales.StringFixed(2))
	h.console.Success("thank you for using %s!", h.storeName)
	return nil
}
