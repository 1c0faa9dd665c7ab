package models

// User represents a registered account.
// Maps to: users collection. The password field holds a bcrypt hash; the
// wire layout predates hashing, which is why the JSON key is still
// "password".
type User struct {
	// Sequential integer, 1-based, assigned as count+1 at creation
	ID int `json:"id"`

	// Unique, case-sensitive; uniqueness is enforced at registration time
	Username string `json:"username"`

	PasswordHash string `json:"password"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}

// PublicUser is the view of a user safe to return in API responses
type PublicUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Public strips credentials from a user
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
}
