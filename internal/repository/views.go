package repository

import (
	"database/sql"
	"fmt"

	"catalog-api/internal/model"
)

// itemViewSelect is the denormalizing join shared by every SQL backend.
// Backends append their own WHERE/ORDER clauses (SQLite and MySQL use ?
// placeholders, PostgreSQL uses $n).
const itemViewSelect = `
	SELECT i.id, i.name, i.description, i.price, i.available_stock, i.image_url, b.name, t.name
	FROM catalog_items i
	JOIN catalog_brands b ON b.id = i.brand_id
	JOIN catalog_types t ON t.id = i.type_id`

// scanItemViews drains a result set of itemViewSelect rows.
func scanItemViews(rows *sql.Rows) ([]model.ItemView, error) {
	items := []model.ItemView{}
	for rows.Next() {
		var v model.ItemView
		if err := rows.Scan(&v.ID, &v.Name, &v.Description, &v.Price,
			&v.AvailableStock, &v.ImageURL, &v.BrandName, &v.TypeName); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, v)
	}
	return items, rows.Err()
}
