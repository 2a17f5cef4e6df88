package api

import "time"

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status     string    `json:"status"`
	Users      int       `json:"users"`
	Posts      int       `json:"posts"`
	Comments   int       `json:"comments"`
	ServerTime time.Time `json:"server_time"`
}
