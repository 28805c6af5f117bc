// Package query composes the parameterized product listing query.
package query

import (
	"fmt"
	"strings"
)

const selectProducts = `SELECT p.id, p.name, p.description, p.price, p.category_id, p.sku, p.brand,
       p.stock_quantity, p.image_url, p.is_active, p.created_at, c.name AS category_name
FROM products p
LEFT JOIN categories c ON p.category_id = c.id
WHERE p.is_active = true`

type Params struct {
	Skip       int
	Limit      int
	CategoryID *int64
	Search     *string
}

type Query struct {
	SQL  string
	Args []any
}

// BuildListProducts returns the active product listing for params. Each $n
// placeholder refers to Args[n-1]. The search term is bound once and
// referenced by both the name and the description predicate, so LIMIT and
// OFFSET always take the two slots right after the last bound filter.
func BuildListProducts(params Params) Query {
	var sb strings.Builder
	sb.WriteString(selectProducts)

	args := make([]any, 0, 4)
	n := 0

	if params.CategoryID != nil {
		n++
		fmt.Fprintf(&sb, " AND p.category_id = $%d", n)
		args = append(args, *params.CategoryID)
	}

	if params.Search != nil && *params.Search != "" {
		n++
		fmt.Fprintf(&sb, " AND (p.name ILIKE $%d OR p.description ILIKE $%d)", n, n)
		args = append(args, "%"+*params.Search+"%")
	}

	fmt.Fprintf(&sb, " ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, params.Limit, params.Skip)

	return Query{SQL: sb.String(), Args: args}
}
