package codes

// Success200 OK
// swagger:model
type Success200 struct {
	// Status text
	Status string `json:"status" example:"ok"`
}

// Error405 Method Not Allowed
// swagger:model
type Error405 struct {
	// Error text
	Message string `json:"message" example:"method not allowed"`
}

// Error500 Internal Server Error
// swagger:model
type Error500 struct {
	// Error text. Every failure kind shares it.
	Message string `json:"message" example:"An internal error occured"`
}
