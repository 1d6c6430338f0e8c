package models

import "encoding/json"

type LoginRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captchaToken"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type CategoryRequest struct {
	Name     string `json:"name" form:"name"`
	ParentID *int   `json:"parent_id" form:"parent_id"`
}

// ProductRequest leaves Specifications raw: clients send either a JSON array
// of strings or a single comma-separated string, normalized by the
// controller. Anything else is rejected.
type ProductRequest struct {
	Name           string          `json:"name"`
	CategoryID     int             `json:"category_id"`
	Description    string          `json:"description"`
	Price          float64         `json:"price"`
	ImageURL       string          `json:"image_url"`
	ImagePath      string          `json:"image_path"`
	Specifications json.RawMessage `json:"specifications"`
}

type DeleteImageRequest struct {
	Path string `json:"path"`
}
