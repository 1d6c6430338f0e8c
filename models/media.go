package models

import "time"

type Partner struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Website   string    `json:"website"`
	ImageURL  string    `json:"image_url"`
	ImagePath string    `json:"image_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Banner struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	ImagePath string    `json:"image_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
