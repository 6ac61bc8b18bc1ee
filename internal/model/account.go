package model

import (
	"regexp"
	"time"
)

// Account represents a registered user record as stored in the
// `accounts` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags.
//
// Fields:
//  ID             – primary key identifier of the account.
//  Username       – unique username, compared case-insensitively.
//  PasswordHash   – bcrypt hashed password.
//  IsActive       – whether the account may authenticate at all.
//  IsAdmin        – grants override on listing update/delete.
//  FailedAttempts – consecutive failed login attempts since last success.
//  LockUntil      – when set and in the future, logins are rejected.
//  LastLogin      – timestamp of the last successful authentication.
//  CreatedAt      – timestamp of creation.
//  UpdatedAt      – timestamp of last update.
type Account struct {
	ID             uint64     // accounts.id
	Username       string     // accounts.username
	PasswordHash   string     // accounts.password_hash
	IsActive       bool       // accounts.is_active
	IsAdmin        bool       // accounts.is_admin
	FailedAttempts int        // accounts.failed_attempts
	LockUntil      *time.Time // accounts.lock_until (nullable)
	LastLogin      *time.Time // accounts.last_login (nullable)
	CreatedAt      time.Time  // accounts.created_at
	UpdatedAt      time.Time  // accounts.updated_at
}

// usernamePattern restricts usernames to letters, digits and underscores.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidateUsername checks the registration rules for a username and
// returns one message per violated rule. An empty slice means the
// username is acceptable. Length bounds are 3 to 30 characters.
func ValidateUsername(username string) []string {
	var msgs []string
	if len(username) < 3 {
		msgs = append(msgs, "username must be at least 3 characters long")
	}
	if len(username) > 30 {
		msgs = append(msgs, "username cannot be longer than 30 characters")
	}
	if username != "" && !usernamePattern.MatchString(username) {
		msgs = append(msgs, "username can only contain letters, numbers, and underscores")
	}
	return msgs
}

// ValidatePassword enforces a minimal password policy. The hash layer
// imposes its own upper bound (bcrypt ignores input beyond 72 bytes),
// so only emptiness and a floor are checked here.
func ValidatePassword(password string) []string {
	var msgs []string
	if password == "" {
		msgs = append(msgs, "password is required")
	} else if len(password) < 8 {
		msgs = append(msgs, "password must be at least 8 characters long")
	}
	return msgs
}
