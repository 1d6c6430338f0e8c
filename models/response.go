package models

// ErrorResponse is the single error body shape for every route.
type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UploadResponse struct {
	Message   string `json:"message"`
	Path      string `json:"path"`
	PublicURL string `json:"publicUrl"`
}
