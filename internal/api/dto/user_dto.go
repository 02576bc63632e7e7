package dto

import (
	"time"

	"github.com/owenj053/netone-backend/internal/domain"
	"github.com/owenj053/netone-backend/internal/service"
)

// LoginRequest payload.
type LoginRequest struct {
	EngineerID string `json:"engineer_id" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token and its expiry.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// RegisterUserRequest payload.
type RegisterUserRequest struct {
	EngineerID string      `json:"engineer_id" validate:"required"`
	FullName   string      `json:"full_name" validate:"required"`
	Password   string      `json:"password" validate:"required,min=8"`
	Role       domain.Role `json:"role" validate:"required"`
}

// UpdateUserRequest payload, all fields optional.
type UpdateUserRequest struct {
	FullName *string      `json:"full_name"`
	Role     *domain.Role `json:"role"`
	Password *string      `json:"password" validate:"omitempty,min=8"`
}

// ToInput maps the request onto the service input.
func (r UpdateUserRequest) ToInput() service.UserUpdateInput {
	return service.UserUpdateInput{
		FullName: r.FullName,
		Role:     r.Role,
		Password: r.Password,
	}
}

// UserResponse never exposes the password hash.
type UserResponse struct {
	ID         int64       `json:"user_id"`
	EngineerID string      `json:"engineer_id"`
	FullName   string      `json:"full_name"`
	Role       domain.Role `json:"role"`
	CreatedAt  time.Time   `json:"created_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		EngineerID: user.EngineerID,
		FullName:   user.FullName,
		Role:       user.Role,
		CreatedAt:  user.CreatedAt,
	}
}

// NewUserListResponse maps a slice of users.
func NewUserListResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
