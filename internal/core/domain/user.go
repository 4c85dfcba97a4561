package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User models an authenticated account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Role collapses the admin flag into the role string used by RBAC.
func (u *User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// CanAccess reports whether u may read or delete a resource owned by ownerID.
func (u *User) CanAccess(ownerID string) bool {
	if u == nil {
		return false
	}
	return u.IsAdmin || u.ID == ownerID
}
