package queue

import (
	"strings"
	"testing"
)

func TestFormatAuditLine_AccountLocked(t *testing.T) {
	t.Parallel()

	line, err := formatAuditLine(AuditEvent{
		Kind:           KindAccountLocked,
		AccountID:      7,
		Username:       "camper",
		FailedAttempts: 5,
		LockedUntil:    "2025-06-01 09:15:00",
		ClientIP:       "203.0.113.9",
		OccurredAt:     "2025-06-01 09:00:00",
	})
	if err != nil {
		t.Fatalf("formatAuditLine error: %v", err)
	}
	for _, want := range []string{"Account locked", "account_id=7", `username="camper"`, "failed_attempts=5"} {
		if !strings.Contains(line, want) {
			t.Fatalf("line %q missing %q", line, want)
		}
	}
	if !strings.HasSuffix(line, "\n") {
		t.Fatal("line must end with a newline")
	}
}

func TestFormatAuditLine_ListingDeleted(t *testing.T) {
	t.Parallel()

	line, err := formatAuditLine(AuditEvent{
		Kind:         KindListingDeleted,
		ListingID:    3,
		ListingTitle: "Bear Creek",
		ActorID:      1,
		ActorIsAdmin: true,
		OccurredAt:   "2025-06-01 10:00:00",
	})
	if err != nil {
		t.Fatalf("formatAuditLine error: %v", err)
	}
	for _, want := range []string{"Listing deleted", "listing_id=3", "admin=true"} {
		if !strings.Contains(line, want) {
			t.Fatalf("line %q missing %q", line, want)
		}
	}
}

func TestFormatAuditLine_UnknownKind(t *testing.T) {
	t.Parallel()

	if _, err := formatAuditLine(AuditEvent{Kind: "mystery"}); err == nil {
		t.Fatal("unknown kind must error")
	}
}
