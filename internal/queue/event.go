// Package queue defines message payloads exchanged over the message broker.
package queue

// Audit event kinds published by the API. Consumers switch on Kind.
const (
	KindAccountLocked  = "account.locked"
	KindListingDeleted = "listing.deleted"
)

// AuditEvent is published to the security.audit queue when something an
// operator should be able to review later happens: an account getting
// locked out, or a listing being removed (possibly by an admin who is
// not its author). It carries enough information for downstream
// consumers to log or alert without querying the primary database.
type AuditEvent struct {
	Kind string `json:"kind"`

	// account.locked fields
	AccountID      uint64 `json:"account_id,omitempty"`
	Username       string `json:"username,omitempty"`
	FailedAttempts int    `json:"failed_attempts,omitempty"`
	LockedUntil    string `json:"locked_until,omitempty"`
	ClientIP       string `json:"client_ip,omitempty"`

	// listing.deleted fields
	ListingID    uint64 `json:"listing_id,omitempty"`
	ListingTitle string `json:"listing_title,omitempty"`
	ActorID      uint64 `json:"actor_id,omitempty"`
	ActorIsAdmin bool   `json:"actor_is_admin,omitempty"`

	OccurredAt string `json:"occurred_at"`
}
