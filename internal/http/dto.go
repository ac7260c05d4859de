package httpapi

import (
	"time"

	"studylog-backend-go/internal/models"
)

type UserDTO struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"displayName"`
	Role        string     `json:"role"`
	Grade       *int       `json:"grade"`
	Class       *int       `json:"class"`
	Roster      *int       `json:"roster"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

func buildUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		Grade:       user.Grade,
		Class:       user.Class,
		Roster:      user.Roster,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	}
}
