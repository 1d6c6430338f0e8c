package models

import "time"

// User records are created out-of-band (see cmd/hashpassword); the API only
// reads them during login.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
