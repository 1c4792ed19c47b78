package auth

import "github.com/isaacstephens/gymman-backend/internal/users"

// LoginInput carries the credentials presented at login.
type LoginInput struct {
	Username string
	Password string
}

// RegisterInput carries the public self-registration fields.
type RegisterInput struct {
	FirstName      string
	LastName       string
	Email          string
	Username       string
	Password       string
	PasswordRepeat string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string        `json:"token"`
	User  users.Summary `json:"user"`
}
