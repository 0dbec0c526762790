package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Name      string            `json:"name"`
	Age       int               `json:"age"`
	Email     string            `json:"email,omitempty"`
	Password  string            `json:"password"`
	Responses map[string]string `json:"responses,omitempty"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Age    int       `json:"age"`
	Streak int       `json:"streak"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	DB        string  `json:"database"`
	UptimeSec float64 `json:"uptime"`
}
