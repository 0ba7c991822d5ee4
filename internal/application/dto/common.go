package dto

// Envelope campos presentes en todas las respuestas JSON.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP.
// Errors lista los mensajes por campo (400); Error lleva el diagnóstico para operadores (500).
type ErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// NewErrorResponse construye un cuerpo de error con success=false.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}
