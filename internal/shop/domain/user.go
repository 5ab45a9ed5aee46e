package domain

import "time"

// User is a registered account. PasswordHash is the argon2id PHC string
// and never leaves the service layer.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the representation safe to return to clients.
type PublicUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u User) Public() PublicUser {
	return PublicUser{Username: u.Username, Email: u.Email}
}
