package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleDoctor  Role = "Doctor"
	RolePatient Role = "Patient"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// Storage keys shared by every session backend.
const (
	TokenKey  = "access_token"
	RoleKey   = "user_role"
	UserIDKey = "user_id"
)

// Session is the persisted login state. Empty strings mean "absent".
type Session struct {
	Token  string `json:"access_token"`
	Role   Role   `json:"role"`
	UserID string `json:"user_id"`
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

// swagger:model domain.LoginResponse
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	Role        Role   `json:"role"`
	UserID      UserID `json:"user_id"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserID accepts numbers, strings and null from the backend.
type UserID string

func (u *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || len(data) == 0 {
		*u = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("user_id: %w", err)
		}
		*u = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("user_id: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*u = UserID(strconv.FormatInt(i, 10))
		return nil
	}
	*u = UserID(n.String())
	return nil
}

func (u UserID) String() string {
	return string(u)
}

// TokenClaims holds what the client can read from a bearer token without
// verifying it.
type TokenClaims struct {
	Subject   string
	Role      Role
	Username  string
	ExpiresAt *int64
	IssuedAt  *int64
}
