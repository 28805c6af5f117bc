package response

import "github.com/shopspring/decimal"

type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CategoryID    int64           `json:"category_id"`
	CategoryName  *string         `json:"category_name,omitempty"`
	SKU           *string         `json:"sku"`
	Brand         *string         `json:"brand"`
	StockQuantity int32           `json:"stock_quantity"`
	ImageURL      *string         `json:"image_url"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     string          `json:"created_at"`
}

type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Slug        string  `json:"slug"`
}

const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"
)

type Health struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

func (h Health) Healthy() bool {
	return h.Status == HealthStatusHealthy
}
