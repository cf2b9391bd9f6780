package domain

import "time"

// Role represents the user's permission level in the system.
type Role string

const (
	// RoleAdmin can see every list, including the admin account's.
	RoleAdmin Role = "admin"
	// RoleManager can lock and edit catalog media.
	RoleManager Role = "manager"
	// RoleUser is a standard account.
	RoleUser Role = "user"
)

// AdminUsername is the reserved account whose lists only admins may view.
const AdminUsername = "admin"

// User represents an account.
type User struct {
	Entity
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Private      bool      `json:"private"`
	AddFeeling   bool      `json:"add_feeling"` // Rate with a 0-5 feeling instead of a 0-10 score
	ProfileViews int       `json:"profile_views"`
	LastSeen     time.Time `json:"last_seen"`

	// Views counts visits of each list by other users.
	Views map[MediaType]int `json:"views"`
}

// IsAdmin returns true if the user has administrative privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager returns true if the user may edit catalog media.
func (u *User) IsManager() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}

// Follow is a directed edge from a follower to a followed user.
type Follow struct {
	FollowerID string    `json:"follower_id"`
	FollowedID string    `json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}
