// Package web defines common components for a web application.
package web

import "github.com/go-playground/validator/v10"

// JSONError provides type for explicit json encoded error response.
type JSONError struct {
	Error string `json:"error"`
}

// Error wraps a given err into json frinedly struct.
func Error(err error) JSONError {
	return JSONError{Error: err.Error()}
}

// Response holds the common response type for all APIs.
type Response struct {
	Data  any       `json:"data,omitempty"`
	Error JSONError `json:"error,omitempty"`
}

// GetErrorMsg renders a human readable suffix for a failed validation,
// meant to be prepended with the field name.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " field is required"
	case "min":
		return " must be at least " + fe.Param()
	case "max":
		return " must not exceed " + fe.Param()
	case "uuid":
		return " must be a valid UUID"
	case "amount":
		return " must be a decimal with up to 3 fractional digits"
	}

	return " is invalid"
}
