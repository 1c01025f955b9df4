package validation

// ValidationError is one field-level failure reported back to the client
// in an AppError's details.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
