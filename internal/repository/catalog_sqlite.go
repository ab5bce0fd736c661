package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"

	"catalog-api/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteCatalogRepository implements CatalogRepository using SQLite.
// Thread-safe with WAL mode for high-concurrency reads.
type SQLiteCatalogRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteCatalogRepository creates a new SQLite catalog repository.
// dbPath is the path to the SQLite database file (e.g., "./data/catalog.db")
func NewSQLiteCatalogRepository(dbPath string) (*SQLiteCatalogRepository, error) {
	// Open with WAL mode and other optimizations
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite connection pool settings
	db.SetMaxOpenConns(1) // SQLite only supports 1 writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0) // Keep connection alive

	if err := createSQLiteTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteCatalogRepository] Initialized with database: %s", dbPath)
	return &SQLiteCatalogRepository{db: db}, nil
}

// createSQLiteTables creates the catalog tables.
func createSQLiteTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS catalog_brands (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	);
	CREATE TABLE IF NOT EXISTS catalog_types (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	);
	CREATE TABLE IF NOT EXISTS catalog_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price REAL NOT NULL CHECK (price >= 0),
		available_stock INTEGER NOT NULL DEFAULT 0 CHECK (available_stock >= 0),
		image_url TEXT NOT NULL DEFAULT '',
		brand_id INTEGER NOT NULL REFERENCES catalog_brands(id),
		type_id INTEGER NOT NULL REFERENCES catalog_types(id)
	);
	CREATE INDEX IF NOT EXISTS idx_items_brand ON catalog_items(brand_id);
	CREATE INDEX IF NOT EXISTS idx_items_type ON catalog_items(type_id);
	`
	_, err := db.Exec(query)
	return err
}

// ListItems returns every catalog item as a denormalized view.
func (r *SQLiteCatalogRepository) ListItems(ctx context.Context) ([]model.ItemView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx, itemViewSelect+` ORDER BY i.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	return scanItemViews(rows)
}

// GetItemByID returns a single item view, or (nil, nil) if absent.
func (r *SQLiteCatalogRepository) GetItemByID(ctx context.Context, id int64) (*model.ItemView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

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
func (r *SQLiteCatalogRepository) ListItemsByBrand(ctx context.Context, brandID int64) ([]model.ItemView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx, itemViewSelect+` WHERE i.brand_id = ? ORDER BY i.id`, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items by brand: %w", err)
	}
	defer rows.Close()

	return scanItemViews(rows)
}

// ListItemsByType returns all items referencing the given type.
func (r *SQLiteCatalogRepository) ListItemsByType(ctx context.Context, typeID int64) ([]model.ItemView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx, itemViewSelect+` WHERE i.type_id = ? ORDER BY i.id`, typeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items by type: %w", err)
	}
	defer rows.Close()

	return scanItemViews(rows)
}

// checkReferences verifies the brand and type ids resolve to existing rows.
func (r *SQLiteCatalogRepository) checkReferences(ctx context.Context, brandID, typeID int64) error {
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
func (r *SQLiteCatalogRepository) CreateItem(ctx context.Context, input model.ItemInput) (*model.ItemView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

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

	return r.getItemViewLocked(ctx, id)
}

// UpdateItem replaces an item's fields. Returns (nil, nil) if id is unknown.
func (r *SQLiteCatalogRepository) UpdateItem(ctx context.Context, id int64, input model.ItemInput) (*model.ItemView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkReferences(ctx, input.BrandID, input.TypeID); err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE catalog_items
		SET name = ?, description = ?, price = ?, available_stock = ?, image_url = ?, brand_id = ?, type_id = ?
		WHERE id = ?`,
		input.Name, input.Description, input.Price, input.AvailableStock,
		input.ImageURL, input.BrandID, input.TypeID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}

	return r.getItemViewLocked(ctx, id)
}

// getItemViewLocked reads a single view while the write lock is held.
func (r *SQLiteCatalogRepository) getItemViewLocked(ctx context.Context, id int64) (*model.ItemView, error) {
	var v model.ItemView
	err := r.db.QueryRowContext(ctx, itemViewSelect+` WHERE i.id = ?`, id).
		Scan(&v.ID, &v.Name, &v.Description, &v.Price, &v.AvailableStock,
			&v.ImageURL, &v.BrandName, &v.TypeName)
	if err != nil {
		return nil, fmt.Errorf("failed to read back item: %w", err)
	}
	return &v, nil
}

// DeleteItem removes an item. Deleting a missing id is not an error.
func (r *SQLiteCatalogRepository) DeleteItem(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `DELETE FROM catalog_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// CreateBrand inserts a brand with a unique name.
func (r *SQLiteCatalogRepository) CreateBrand(ctx context.Context, name string) (*model.CatalogBrand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

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
func (r *SQLiteCatalogRepository) ListBrands(ctx context.Context) ([]model.CatalogBrand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

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
func (r *SQLiteCatalogRepository) CreateType(ctx context.Context, name string) (*model.CatalogType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

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
func (r *SQLiteCatalogRepository) ListTypes(ctx context.Context) ([]model.CatalogType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

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
func (r *SQLiteCatalogRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

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

	// Database file size (approximate from page count)
	var pageCount, pageSize int64
	r.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount)
	r.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
	stats["db_size_bytes"] = pageCount * pageSize

	return stats, nil
}

// Close closes the database connection.
func (r *SQLiteCatalogRepository) Close() error {
	return r.db.Close()
}

// Ensure SQLiteCatalogRepository implements CatalogRepository
var _ CatalogRepository = (*SQLiteCatalogRepository)(nil)
