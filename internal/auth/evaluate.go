// Package auth contains the login decision logic. Evaluate is a pure
// function over an account snapshot: it decides whether a submitted
// password is accepted and describes the counter/lock changes the
// caller must persist. Keeping persistence out of the evaluator lets
// the lockout rules be tested without a database or a hash library.
package auth

import (
	"time"

	"github.com/findmycamp/api/internal/model"
)

// Defaults for the lockout policy: the fifth consecutive failure locks
// the account for fifteen minutes.
const (
	DefaultMaxAttempts = 5
	DefaultLockWindow  = 15 * time.Minute
)

// Verifier reports whether a plaintext secret matches a stored hash.
// Production code passes utils.VerifyPassword; tests pass a plain
// string comparison.
type Verifier func(hash, secret string) bool

// Outcome classifies the result of a login evaluation.
type Outcome int

const (
	// Accepted means the credentials are valid and a session may be bound.
	Accepted Outcome = iota
	// RejectedUnknownUser means no account matched the identifier. The
	// user-facing message must be indistinguishable from RejectedBadSecret.
	RejectedUnknownUser
	// RejectedBadSecret means the password did not match.
	RejectedBadSecret
	// RejectedLocked means the account is within its lockout window.
	RejectedLocked
	// RejectedDeactivated means the account has been disabled by an admin.
	RejectedDeactivated
)

// Mutation describes the account changes an evaluation calls for. At
// most one of the counter fields is set. IncrementAttempts is relative
// on purpose: the store must apply it as an atomic `failed_attempts + 1`
// so concurrent attempts cannot under-count.
type Mutation struct {
	ResetAttempts     bool       // failed_attempts := 0, lock cleared, last_login := now
	IncrementAttempts bool       // failed_attempts += 1 (atomic at the store)
	FreshWindow       bool       // failed_attempts := 1, lock cleared (expired lock, wrong secret)
	LockUntil         *time.Time // set together with IncrementAttempts when the limit is reached
}

// IsZero reports whether the mutation requires no persistence at all.
func (m Mutation) IsZero() bool {
	return !m.ResetAttempts && !m.IncrementAttempts && !m.FreshWindow && m.LockUntil == nil
}

// Decision is the full result of evaluating one login attempt.
type Decision struct {
	Outcome    Outcome
	RetryAfter time.Duration // only set for RejectedLocked
	Mutation   Mutation
}

// Policy carries the tunable lockout parameters.
type Policy struct {
	MaxAttempts int           // failures that trigger a lock
	LockWindow  time.Duration // how long a lock lasts
}

// DefaultPolicy returns the stock 5-attempts / 15-minutes policy.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: DefaultMaxAttempts, LockWindow: DefaultLockWindow}
}

// Evaluate decides a single login attempt against an account snapshot.
// account is nil when the identifier resolved to nothing. The check
// order is fixed: unknown user, then active flag, then lock, then the
// password itself, so a deactivated-and-locked account always reports
// deactivated and an attempt against a locked account never reaches
// the verifier (and never extends the lock).
func Evaluate(account *model.Account, secret string, now time.Time, verify Verifier, p Policy) Decision {
	if account == nil {
		return Decision{Outcome: RejectedUnknownUser}
	}
	if !account.IsActive {
		return Decision{Outcome: RejectedDeactivated}
	}
	if account.LockUntil != nil && account.LockUntil.After(now) {
		return Decision{
			Outcome:    RejectedLocked,
			RetryAfter: account.LockUntil.Sub(now),
		}
	}

	if verify(account.PasswordHash, secret) {
		return Decision{
			Outcome:  Accepted,
			Mutation: Mutation{ResetAttempts: true},
		}
	}

	// A lock that has already elapsed means the previous attempt window
	// is over; a wrong password starts a fresh count at one rather than
	// continuing where the locked-out streak left off.
	if account.LockUntil != nil && !account.LockUntil.After(now) {
		return Decision{
			Outcome:  RejectedBadSecret,
			Mutation: Mutation{FreshWindow: true},
		}
	}

	d := Decision{
		Outcome:  RejectedBadSecret,
		Mutation: Mutation{IncrementAttempts: true},
	}
	if account.FailedAttempts+1 >= p.MaxAttempts {
		until := now.Add(p.LockWindow)
		d.Mutation.LockUntil = &until
	}
	return d
}
