package repository

import "github.com/jackc/pgx/v5/pgtype"

type ProductRow struct {
	ID            int64              `db:"id"`
	Name          string             `db:"name"`
	Description   *string            `db:"description"`
	Price         pgtype.Numeric     `db:"price"`
	CategoryID    int64              `db:"category_id"`
	SKU           *string            `db:"sku"`
	Brand         *string            `db:"brand"`
	StockQuantity int32              `db:"stock_quantity"`
	ImageURL      *string            `db:"image_url"`
	IsActive      bool               `db:"is_active"`
	CreatedAt     pgtype.Timestamptz `db:"created_at"`
	CategoryName  *string            `db:"category_name"`
}

type CategoryRow struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Slug        string  `db:"slug"`
}
