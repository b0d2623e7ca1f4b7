// model/product.go
package model

// Product mirrors the upstream product service's ItemDTO. The gateway
// holds a transient copy per list fetch; the upstream owns the record.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	PricePerDay float64 `json:"pricePerDay"`
	Available   bool    `json:"available"`
	OwnerID     string  `json:"ownerId,omitempty"`
	Stock       int     `json:"stock"`
}

// ProductFilter narrows /items/my queries. Zero-value fields mean
// "no constraint" and are omitted from the outgoing query string.
type ProductFilter struct {
	Name     string `json:"name" query:"name"`
	MinPrice string `json:"minPrice" query:"minPrice"`
	MaxPrice string `json:"maxPrice" query:"maxPrice"`
}
