package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receipt - the breakdown shown before payment
type Receipt struct {
	OrderID     uuid.UUID       `json:"order_id"`
	ServiceType ServiceType     `json:"service_type"`
	ItemCount   int             `json:"item_count"`
	RawCost     decimal.Decimal `json:"raw_cost"`
	Total       decimal.Decimal `json:"total"`
	Discounted  bool            `json:"discounted"`
	Extras      []string        `json:"extras"`
	Paid        bool            `json:"paid"`
}

// SaleEntry - one paid order in the daily ledger
type SaleEntry struct {
	OrderID    uuid.UUID       `json:"order_id"`
	Amount     decimal.Decimal `json:"amount"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// SalesSummary - for `order summary`
type SalesSummary struct {
	Entries    []SaleEntry     `json:"entries"`
	TotalSales decimal.Decimal `json:"total_sales"`
	OrderCount int             `json:"order_count"`
}
