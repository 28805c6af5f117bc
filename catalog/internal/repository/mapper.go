package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alturino/catalog/catalog/pkg/response"
)

func (p ProductRow) Response() response.Product {
	price := decimal.Zero
	if p.Price.Valid && p.Price.Int != nil {
		price = decimal.NewFromBigInt(p.Price.Int, p.Price.Exp)
	}
	return response.Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         price,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
		SKU:           p.SKU,
		Brand:         p.Brand,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt.Time.UTC().Format(time.RFC3339Nano),
	}
}

func (c CategoryRow) Response() response.Category {
	return response.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Slug:        c.Slug,
	}
}

func ProductsResponse(rows []ProductRow) []response.Product {
	products := make([]response.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.Response())
	}
	return products
}

func CategoriesResponse(rows []CategoryRow) []response.Category {
	categories := make([]response.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, row.Response())
	}
	return categories
}
