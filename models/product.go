package models

import "time"

// Product carries two display fields computed at read time: Subcategory is
// the name of its direct category, Category the name of that category's
// parent.
type Product struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	CategoryID     int       `json:"category_id"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	ImageURL       string    `json:"image_url"`
	ImagePath      string    `json:"image_path,omitempty"`
	Specifications []string  `json:"specifications"`
	CreatedAt      time.Time `json:"created_at"`
	Subcategory    string    `json:"subcategory"`
	Category       string    `json:"category"`
}

type RelatedProductsResponse struct {
	SubcategoryRelated []Product `json:"subcategoryRelated"`
	CategoryRelated    []Product `json:"categoryRelated"`
	SubcategoryName    string    `json:"subcategoryName"`
	CategoryName       string    `json:"categoryName"`
}
