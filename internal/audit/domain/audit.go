package domain

import "time"

// Entry is one recorded auth event: register, login, login_failure, logout,
// or password_change. Metadata never contains passwords, hashes, or raw
// tokens.
type Entry struct {
	ID        string
	UserID    string
	Action    string
	IP        string
	Metadata  string
	CreatedAt time.Time
}
