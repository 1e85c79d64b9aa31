package user

import "shopkeeper/internal/domain/user"

type registerInput struct {
	Body user.BaseRequest
}

type registerOutput struct {
	Body RegisterResponse
}

type RegisterResponse struct {
	ID     int    `json:"user_id"`
	Status string `json:"status"`
}

type loginInput struct {
	Body user.BaseRequest
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	Token  string `json:"token"`
	UserID int    `json:"user_id"`
	Status string `json:"status"`
}

type meInput struct{}

type meOutput struct {
	Body MeResponse
}

type MeResponse struct {
	UserID int    `json:"user_id"`
	Login  string `json:"login"`
	Status string `json:"status"`
}
