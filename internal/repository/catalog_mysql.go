package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"catalog-api/internal/model"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

// MySQLCatalogRepository implements CatalogRepository using MySQL.
type MySQLCatalogRepository struct {
	db *sql.DB
}

// NewMySQLCatalogRepository creates a new MySQL catalog repository.
// dsn format: "user:password@tcp(host:port)/dbname?parseTime=true"
func NewMySQLCatalogRepository(dsn string) (*MySQLCatalogRepository, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	if err := createMySQLTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Println("[MySQLCatalogRepository] Initialized")
	return &MySQLCatalogRepository{db: db}, nil
}

// createMySQLTables creates the catalog tables. MySQL rejects multiple
// statements per Exec by default, so each table is created separately.
func createMySQLTables(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS catalog_brands (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS catalog_types (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS catalog_items (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			price DOUBLE NOT NULL,
			available_stock INT NOT NULL DEFAULT 0,
			image_url VARCHAR(1024) NOT NULL DEFAULT '',
			brand_id BIGINT NOT NULL,
			type_id BIGINT NOT NULL,
			INDEX idx_items_brand (brand_id),
			INDEX idx_items_type (type_id),
			CONSTRAINT fk_items_brand FOREIGN KEY (brand_id) REFERENCES catalog_brands(id),
			CONSTRAINT fk_items_type FOREIGN KEY (type_id) REFERENCES catalog_types(id)
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ListItems returns every catalog item as a denormalized view.
func (r *MySQLCatalogRepository) ListItems(ctx context.Context) ([]model.ItemView, error) {
	rows, err := r.db.QueryContext(ctx, itemViewSelect+` ORDER BY i.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	return scanItemViews(rows)
}

// GetItemByID returns a single item view, or (nil, nil) if absent.
func (r *MySQLCatalogRepository) GetItemByID(ctx context.Context, id int64) (*model.ItemView, error) {
	var v model.ItemView
	err := r.db.QueryRowContext(ctx, itemViewSelect+` WHERE i.id = ?`, id).
		Scan(&v.ID, &v.Name, &v.Description, &v.Price, &v.AvailableStock,
			&v.ImageURL, &v.BrandName, &v.TypeName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &v, nil
}

// ListItemsByBrand returns all items referencing the given brand.
func (r *MySQLCatalogRepository) ListItemsByBrand(ctx context.Context, brandID int64) ([]model.ItemView, error) {
	rows, err := r.db.QueryContext(ctx, itemViewSelect+` WHERE i.brand_id = ? ORDER BY i.id`, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items by brand: %w", err)
	}
	defer rows.Close()

	return scanItemViews(rows)
}

// ListItemsByType returns all items referencing the given type.
func (r *MySQLCatalogRepository) ListItemsByType(ctx context.Context, typeID int64) ([]model.ItemView, error) {
	rows, err := r.db.QueryContext(ctx, itemViewSelect+` WHERE i.type_id = ? ORDER BY i.id`, typeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items by type: %w", err)
	}
	defer rows.Close()

	return scanItemViews(rows)
}

func (r *MySQLCatalogRepository) checkReferences(ctx context.Context, brandID, typeID int64) error {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_brands WHERE id = ?`, brandID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check brand: %w", err)
	}
	if exists == 0 {
		return ErrBrandNotFound
	}

	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_types WHERE id = ?`, typeID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check type: %w", err)
	}
	if exists == 0 {
		return ErrTypeNotFound
	}
	return nil
}

// CreateItem inserts a new item and returns its view with the assigned id.
func (r *MySQLCatalogRepository) CreateItem(ctx context.Context, input model.ItemInput) (*model.ItemView, error) {
	if err := r.checkReferences(ctx, input.BrandID, input.TypeID); err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO catalog_items (name, description, price, available_stock, image_url, brand_id, type_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		input.Name, input.Description, input.Price, input.AvailableStock,
		input.ImageURL, input.BrandID, input.TypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted id: %w", err)
	}

	return r.GetItemByID(ctx, id)
}

// UpdateItem replaces an item's fields. Returns (nil, nil) if id is unknown.
func (r *MySQLCatalogRepository) UpdateItem(ctx context.Context, id int64, input model.ItemInput) (*model.ItemView, error) {
	if err := r.checkReferences(ctx, input.BrandID, input.TypeID); err != nil {
		return nil, err
	}

	// RowsAffected is 0 for no-op updates in MySQL, so check existence first.
	var exists int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_items WHERE id = ?`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check item: %w", err)
	}
	if exists == 0 {
		return nil, nil
	}

	_, err := r.db.ExecContext(ctx, `
		UPDATE catalog_items
		SET name = ?, description = ?, price = ?, available_stock = ?, image_url = ?, brand_id = ?, type_id = ?
		WHERE id = ?`,
		input.Name, input.Description, input.Price, input.AvailableStock,
		input.ImageURL, input.BrandID, input.TypeID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return r.GetItemByID(ctx, id)
}

// DeleteItem removes an item. Deleting a missing id is not an error.
func (r *MySQLCatalogRepository) DeleteItem(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM catalog_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// CreateBrand inserts a brand with a unique name.
func (r *MySQLCatalogRepository) CreateBrand(ctx context.Context, name string) (*model.CatalogBrand, error) {
	var exists int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_brands WHERE name = ?`, name).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check brand name: %w", err)
	}
	if exists > 0 {
		return nil, ErrDuplicateName
	}

	result, err := r.db.ExecContext(ctx, `INSERT INTO catalog_brands (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to insert brand: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &model.CatalogBrand{ID: id, Name: name}, nil
}

// ListBrands returns all brands ordered by id.
func (r *MySQLCatalogRepository) ListBrands(ctx context.Context) ([]model.CatalogBrand, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM catalog_brands ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	brands := []model.CatalogBrand{}
	for rows.Next() {
		var b model.CatalogBrand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

// CreateType inserts a type with a unique name.
func (r *MySQLCatalogRepository) CreateType(ctx context.Context, name string) (*model.CatalogType, error) {
	var exists int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_types WHERE name = ?`, name).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check type name: %w", err)
	}
	if exists > 0 {
		return nil, ErrDuplicateName
	}

	result, err := r.db.ExecContext(ctx, `INSERT INTO catalog_types (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to insert type: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &model.CatalogType{ID: id, Name: name}, nil
}

// ListTypes returns all types ordered by id.
func (r *MySQLCatalogRepository) ListTypes(ctx context.Context) ([]model.CatalogType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM catalog_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list types: %w", err)
	}
	defer rows.Close()

	types := []model.CatalogType{}
	for rows.Next() {
		var t model.CatalogType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// Stats returns statistics about the catalog database.
func (r *MySQLCatalogRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	counts := map[string]string{
		"total_items":  "SELECT COUNT(*) FROM catalog_items",
		"total_brands": "SELECT COUNT(*) FROM catalog_brands",
		"total_types":  "SELECT COUNT(*) FROM catalog_types",
	}
	for key, query := range counts {
		var count int64
		if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return nil, err
		}
		stats[key] = count
	}

	return stats, nil
}

// Close closes the database connection.
func (r *MySQLCatalogRepository) Close() error {
	return r.db.Close()
}

// Ensure MySQLCatalogRepository implements CatalogRepository
var _ CatalogRepository = (*MySQLCatalogRepository)(nil)
