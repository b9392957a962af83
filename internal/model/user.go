package model

import "time"

// Role values form a closed enumeration; anything else is rejected at the
// door by Validate and by the role-gated middleware.
const (
	RoleCandidate  = "Candidate"
	RoleHROfficer  = "HR Officer"
	RoleAdmin      = "Admin"
	RoleSuperAdmin = "Super Admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleCandidate, RoleHROfficer, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// User is the local account record. Authentication itself happens at the
// external identity provider; ExternalUID is the provider-issued subject this
// record is keyed by.
type User struct {
	ID          string    `json:"id"`
	ExternalUID string    `json:"-"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AuthUser is the public projection returned by user-facing endpoints.
type AuthUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func (u User) Public() AuthUser {
	return AuthUser{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role}
}

// TokenPair carries a freshly issued access/refresh pair. The handlers turn
// these into cookies; the values themselves never appear in response bodies.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
