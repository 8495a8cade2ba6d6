// Package model defines domain entities used by services and repositories.
package model

import "time"

// User represents an account. The password hash is opaque and never serialized.
type User struct {
	Username     string    `json:"username"` // unique, immutable PK
	PasswordHash string    `json:"-"`        // bcrypt digest
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	JoinAt       time.Time `json:"join_at"`       // set once at creation
	LastLoginAt  time.Time `json:"last_login_at"` // touched on each successful login
}

// UserSummary is the public projection of a user used in listings and message views.
type UserSummary struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// Message is a directed message as stored.
type Message struct {
	ID           int64      `json:"id"` // assigned by the store, monotonically
	FromUsername string     `json:"from_username"`
	ToUsername   string     `json:"to_username"`
	Body         string     `json:"body"`
	SentAt       time.Time  `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at,omitempty"` // nil until marked read by the recipient
}

// MessageView is a message joined with user summaries. From or To is nil in
// listings where that side is already implied by the query.
type MessageView struct {
	ID     int64        `json:"id"`
	Body   string       `json:"body"`
	SentAt time.Time    `json:"sent_at"`
	ReadAt *time.Time   `json:"read_at"`
	From   *UserSummary `json:"from_user,omitempty"`
	To     *UserSummary `json:"to_user,omitempty"`
}
