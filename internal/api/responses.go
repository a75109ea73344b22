package api

// ErrorResponse matches the `{"detail": ...}` error body the web client expects.
type ErrorResponse struct {
	Detail string `json:"detail" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
