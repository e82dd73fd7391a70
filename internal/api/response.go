// Package api defines the response bodies shared by every HTTP handler.
package api

// MessageResponse is the body of 401, 404 and 5xx responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse is the body of a 400 response: one message per failed field.
type ValidationErrorResponse struct {
	Errors []string `json:"errors"`
}

// Messages used by more than one handler.
const (
	MsgInternalServerError = "Internal Server Error"
	MsgRouteNotFound       = "Route Not Found"
	MsgInvalidJSON         = "Request body must be valid JSON."
	MsgTooManyRequests     = "Too Many Requests"
)
