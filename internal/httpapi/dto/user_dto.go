package dto

import (
	"time"

	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/permission"
)

// UserContract selects which fields of a user payload are writable. The
// self contract treats email and role as read-only; the admin contract
// additionally permits role reassignment.
type UserContract int

const (
	UserContractSelf UserContract = iota
	UserContractAdmin
)

// UserContractFor picks the contract for the acting user. The self-service
// endpoint never calls this: it always uses UserContractSelf so that a user
// cannot promote their own role.
func UserContractFor(actor permission.Actor) UserContract {
	if actor.AdminTier() {
		return UserContractAdmin
	}
	return UserContractSelf
}

// CreateUserRequest for admin user creation
type CreateUserRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Username  *string `json:"username"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Bio       string  `json:"bio"`
	Role      string  `json:"role"`
}

// UpdateUserRequest for partial user updates; nil fields are left untouched
type UpdateUserRequest struct {
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Role      *string `json:"role"`
}

// Apply copies the writable fields of the request onto the user according
// to the contract. Email and role changes are silently dropped under the
// self contract rather than rejected, matching a partial-update semantic.
func (c UserContract) Apply(user *models.User, req UpdateUserRequest) {
	if req.Username != nil {
		user.Username = req.Username
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if c != UserContractAdmin {
		return
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
}

// UserResponse for returning user information
type UserResponse struct {
	ID         string    `json:"id"`
	Username   *string   `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Bio        string    `json:"bio"`
	Role       string    `json:"role"`
	DateJoined time.Time `json:"date_joined"`
}

// FromModelToUserResponse converts a User model to UserResponse DTO
func FromModelToUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Bio:        user.Bio,
		Role:       user.Role,
		DateJoined: user.CreatedAt,
	}
}

// PaginatedUserResponse for returning paginated users
type PaginatedUserResponse struct {
	Data       []UserResponse `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

// NewPaginatedUserResponse creates a paginated user response
func NewPaginatedUserResponse(data []UserResponse, total, page, pageSize int) *PaginatedUserResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedUserResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
