package model

import "time"

// User 使用者模型，password hash 不輸出到 JSON
type User struct {
	ID                  int       `json:"id" db:"id"`
	Username            string    `json:"username" db:"username"`
	Email               string    `json:"email" db:"email"`
	Phone               string    `json:"phone" db:"phone"`
	PasswordHash        string    `json:"-" db:"password_hash"`
	IsAdmin             bool      `json:"is_admin" db:"is_admin"`
	IsVerifiedOrganizer bool      `json:"is_verified_organizer" db:"is_verified_organizer"`
	IsBanned            bool      `json:"is_banned" db:"is_banned"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}

// CanManageEvent 管理員或主辦者本人才能管理活動，service 層以此強制授權
func (u *User) CanManageEvent(e *Event) bool {
	return u.IsAdmin || e.OrganizerID == u.ID
}

// RegisterUserRequest 註冊請求
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest 登入請求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse 登入響應
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}

type AdminUserUpdateParams struct {
	IsAdmin             *bool
	IsVerifiedOrganizer *bool
	IsBanned            *bool
}
