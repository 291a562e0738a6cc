package model

import "time"

// User represents a registered shop customer.
type User struct {
	ID           int64
	Username     string
	FirstName    string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile holds additional contact data, created empty on registration.
type Profile struct {
	UserID   int64
	FullName string
	Email    string
	Phone    string
}
