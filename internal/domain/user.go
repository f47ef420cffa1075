package domain

import "time"

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}

// Token is the persistent API credential issued to a user when the account is created.
type Token struct {
	Key       string
	UserID    int64
	CreatedAt time.Time
}
