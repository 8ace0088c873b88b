package types

// QueryRequest is the body accepted by POST /query.
// Question is a pointer so an absent or null field can be told apart from "".
type QueryRequest struct {
	Question *string `json:"question"`
}

// QueryResponse carries the completion text on success
type QueryResponse struct {
	Response string `json:"response"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status string `json:"status"`
}
