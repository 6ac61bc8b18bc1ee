package auth

import (
	"testing"
	"time"

	"github.com/findmycamp/api/internal/model"
)

// plainVerify compares the "hash" and the secret directly so the
// decision logic can be exercised without bcrypt.
func plainVerify(hash, secret string) bool { return hash == secret }

func activeAccount(attempts int, lockUntil *time.Time) *model.Account {
	return &model.Account{
		ID:             1,
		Username:       "camper",
		PasswordHash:   "hunter2secret",
		IsActive:       true,
		FailedAttempts: attempts,
		LockUntil:      lockUntil,
	}
}

func TestEvaluate_UnknownUser(t *testing.T) {
	t.Parallel()

	d := Evaluate(nil, "whatever", time.Now(), plainVerify, DefaultPolicy())
	if d.Outcome != RejectedUnknownUser {
		t.Fatalf("outcome = %v, want RejectedUnknownUser", d.Outcome)
	}
	if !d.Mutation.IsZero() {
		t.Fatalf("unknown user must not mutate anything: %+v", d.Mutation)
	}
}

func TestEvaluate_DeactivatedBeforeLockAndSecret(t *testing.T) {
	t.Parallel()

	now := time.Now()
	lock := now.Add(10 * time.Minute)
	acct := activeAccount(5, &lock)
	acct.IsActive = false

	// Even with a live lock and the correct password, deactivated wins.
	d := Evaluate(acct, "hunter2secret", now, plainVerify, DefaultPolicy())
	if d.Outcome != RejectedDeactivated {
		t.Fatalf("outcome = %v, want RejectedDeactivated", d.Outcome)
	}
	if !d.Mutation.IsZero() {
		t.Fatalf("deactivated must not mutate the counter: %+v", d.Mutation)
	}
}

func TestEvaluate_LockedRejectsCorrectSecret(t *testing.T) {
	t.Parallel()

	now := time.Now()
	lock := now.Add(14 * time.Minute)
	acct := activeAccount(5, &lock)

	d := Evaluate(acct, "hunter2secret", now, plainVerify, DefaultPolicy())
	if d.Outcome != RejectedLocked {
		t.Fatalf("outcome = %v, want RejectedLocked", d.Outcome)
	}
	if d.RetryAfter != 14*time.Minute {
		t.Fatalf("retry after = %v, want 14m", d.RetryAfter)
	}
	// Attempts while locked never extend the lock or touch the counter.
	if !d.Mutation.IsZero() {
		t.Fatalf("locked rejection must not mutate anything: %+v", d.Mutation)
	}
}

func TestEvaluate_SuccessResetsCounterAndLock(t *testing.T) {
	t.Parallel()

	for _, attempts := range []int{0, 1, 4} {
		d := Evaluate(activeAccount(attempts, nil), "hunter2secret", time.Now(), plainVerify, DefaultPolicy())
		if d.Outcome != Accepted {
			t.Fatalf("attempts=%d: outcome = %v, want Accepted", attempts, d.Outcome)
		}
		if !d.Mutation.ResetAttempts {
			t.Fatalf("attempts=%d: success must reset the counter", attempts)
		}
		if d.Mutation.IncrementAttempts || d.Mutation.FreshWindow || d.Mutation.LockUntil != nil {
			t.Fatalf("attempts=%d: unexpected extra mutation %+v", attempts, d.Mutation)
		}
	}
}

func TestEvaluate_WrongSecretIncrements(t *testing.T) {
	t.Parallel()

	d := Evaluate(activeAccount(2, nil), "nope", time.Now(), plainVerify, DefaultPolicy())
	if d.Outcome != RejectedBadSecret {
		t.Fatalf("outcome = %v, want RejectedBadSecret", d.Outcome)
	}
	if !d.Mutation.IncrementAttempts {
		t.Fatal("wrong secret must increment the counter")
	}
	if d.Mutation.LockUntil != nil {
		t.Fatalf("third failure must not lock yet: %v", d.Mutation.LockUntil)
	}
}

func TestEvaluate_FifthFailureLocksForWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	d := Evaluate(activeAccount(4, nil), "nope", now, plainVerify, DefaultPolicy())
	if d.Outcome != RejectedBadSecret {
		t.Fatalf("outcome = %v, want RejectedBadSecret", d.Outcome)
	}
	if !d.Mutation.IncrementAttempts {
		t.Fatal("fifth failure must still be a relative increment")
	}
	if d.Mutation.LockUntil == nil {
		t.Fatal("fifth failure must set the lock")
	}
	if want := now.Add(15 * time.Minute); !d.Mutation.LockUntil.Equal(want) {
		t.Fatalf("lock until = %v, want %v", d.Mutation.LockUntil, want)
	}
}

// Scenario from the hardened login flow: four failures on record, a
// fifth wrong attempt at T locks until T+15m; the correct password one
// minute later is still rejected with roughly fourteen minutes to wait.
func TestEvaluate_LockoutScenario(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	acct := activeAccount(4, nil)

	d := Evaluate(acct, "nope", start, plainVerify, DefaultPolicy())
	if d.Outcome != RejectedBadSecret || d.Mutation.LockUntil == nil {
		t.Fatalf("fifth failure: got %+v", d)
	}

	// Apply the mutation the way a caller would.
	acct.FailedAttempts++
	acct.LockUntil = d.Mutation.LockUntil

	d = Evaluate(acct, "hunter2secret", start.Add(time.Minute), plainVerify, DefaultPolicy())
	if d.Outcome != RejectedLocked {
		t.Fatalf("attempt while locked: outcome = %v, want RejectedLocked", d.Outcome)
	}
	if d.RetryAfter != 14*time.Minute {
		t.Fatalf("retry after = %v, want 14m", d.RetryAfter)
	}
}

func TestEvaluate_ExpiredLockWrongSecretStartsFreshWindow(t *testing.T) {
	t.Parallel()

	now := time.Now()
	expired := now.Add(-time.Second)
	d := Evaluate(activeAccount(5, &expired), "nope", now, plainVerify, DefaultPolicy())
	if d.Outcome != RejectedBadSecret {
		t.Fatalf("outcome = %v, want RejectedBadSecret", d.Outcome)
	}
	if !d.Mutation.FreshWindow {
		t.Fatal("expired lock with wrong secret must restart the window at one")
	}
	if d.Mutation.IncrementAttempts || d.Mutation.LockUntil != nil {
		t.Fatalf("fresh window must not also increment or lock: %+v", d.Mutation)
	}
}

func TestEvaluate_ExpiredLockCorrectSecretAccepts(t *testing.T) {
	t.Parallel()

	now := time.Now()
	expired := now.Add(-time.Minute)
	d := Evaluate(activeAccount(5, &expired), "hunter2secret", now, plainVerify, DefaultPolicy())
	if d.Outcome != Accepted {
		t.Fatalf("outcome = %v, want Accepted", d.Outcome)
	}
	if !d.Mutation.ResetAttempts {
		t.Fatal("success after an expired lock must reset the counter")
	}
}

func TestEvaluate_CustomPolicy(t *testing.T) {
	t.Parallel()

	p := Policy{MaxAttempts: 3, LockWindow: time.Minute}
	now := time.Now()
	d := Evaluate(activeAccount(2, nil), "nope", now, plainVerify, p)
	if d.Mutation.LockUntil == nil {
		t.Fatal("third failure must lock under a 3-attempt policy")
	}
	if want := now.Add(time.Minute); !d.Mutation.LockUntil.Equal(want) {
		t.Fatalf("lock until = %v, want %v", d.Mutation.LockUntil, want)
	}
}

// Five consecutive failures starting from a clean account end with a
// locked account, replaying each mutation between attempts.
func TestEvaluate_FiveFailuresEndToEnd(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	acct := activeAccount(0, nil)

	for i := 0; i < 5; i++ {
		d := Evaluate(acct, "nope", now, plainVerify, DefaultPolicy())
		if d.Outcome != RejectedBadSecret {
			t.Fatalf("attempt %d: outcome = %v", i+1, d.Outcome)
		}
		if !d.Mutation.IncrementAttempts {
			t.Fatalf("attempt %d: expected increment", i+1)
		}
		acct.FailedAttempts++
		if d.Mutation.LockUntil != nil {
			acct.LockUntil = d.Mutation.LockUntil
		}
		now = now.Add(time.Second)
	}

	if acct.LockUntil == nil {
		t.Fatal("account must be locked after five failures")
	}
	d := Evaluate(acct, "hunter2secret", now, plainVerify, DefaultPolicy())
	if d.Outcome != RejectedLocked {
		t.Fatalf("sixth attempt with correct secret: outcome = %v, want RejectedLocked", d.Outcome)
	}
}
