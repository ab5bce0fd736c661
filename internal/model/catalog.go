package model

// CatalogItem represents a product in the catalog as persisted by the store.
type CatalogItem struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	AvailableStock int     `json:"availableStock"`
	ImageURL       string  `json:"imageUrl"`
	BrandID        int64   `json:"brandId"`
	TypeID         int64   `json:"typeId"`
}

// CatalogBrand represents a product brand. Names are unique.
type CatalogBrand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CatalogType represents a product type/category. Names are unique.
type CatalogType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItemView is the flattened read shape that crosses the cache and HTTP
// boundaries. Brand and type names are denormalized so the payload carries
// no nested object graph.
type ItemView struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	AvailableStock int     `json:"availableStock"`
	ImageURL       string  `json:"imageUrl"`
	BrandName      string  `json:"brandName"`
	TypeName       string  `json:"typeName"`
}

// ItemInput is the create/update request body for catalog items.
type ItemInput struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	AvailableStock int     `json:"availableStock"`
	ImageURL       string  `json:"imageUrl"`
	BrandID        int64   `json:"brandId"`
	TypeID         int64   `json:"typeId"`
}
