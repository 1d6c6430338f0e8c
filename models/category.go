package models

import "time"

// Category rows form a two-level hierarchy: a row with a non-nil ParentID is
// a subcategory of the row it references.
type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	ParentID  *int      `json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
}
