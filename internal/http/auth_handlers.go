package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"studylog-backend-go/internal/models"
	"studylog-backend-go/internal/services"
)

type RegisterRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6"`
	DisplayName string  `json:"displayName" validate:"required"`
	Role        *string `json:"role" validate:"omitempty,oneof=student teacher"`
	Grade       *int    `json:"grade" validate:"omitempty,min=1,max=6"`
	Class       *int    `json:"class" validate:"omitempty,min=1"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string  `json:"token"`
	ExpiresAt int64   `json:"expiresAt"`
	User      UserDTO `json:"user"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeValid(r, &req); err != nil {
		WriteServiceError(w, err)
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	var exists bool
	if err := s.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = $1)`, email); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if exists {
		WriteError(w, http.StatusConflict, "User already exists")
		return
	}
	hash, err := s.Tokens.HashPassword(req.Password)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	role := models.RoleStudent
	if req.Role != nil {
		role = *req.Role
	}
	userID := uuid.NewString()
	now := time.Now().UTC()
	_, err = s.DB.Exec(`
INSERT INTO users (id, email, password_hash, display_name, role, grade, class, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8)
`, userID, email, hash, strings.TrimSpace(req.DisplayName), role, req.Grade, req.Class, now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	user, err := services.GetUser(s.DB, userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]UserDTO{"user": buildUserDTO(user)})
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeValid(r, &req); err != nil {
		WriteServiceError(w, err)
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user := models.User{}
	err := s.DB.Get(&user, `
SELECT id, email, password_hash, display_name, role, grade, class, roster, created_at, updated_at, last_login_at
FROM users
WHERE lower(email) = $1
`, email)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	if !s.Tokens.VerifyPassword(req.Password, user.PasswordHash) {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	token, expiresAt, err := s.Tokens.CreateToken(services.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Grade:  user.Grade,
		Class:  user.Class,
	})
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	_, _ = s.DB.Exec(`UPDATE users SET last_login_at = $1 WHERE id = $2`, time.Now().UTC(), user.ID)
	WriteJSON(w, http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      buildUserDTO(user),
	})
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	user, err := services.GetUser(s.DB, CurrentUserID(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]UserDTO{"user": buildUserDTO(user)})
}
