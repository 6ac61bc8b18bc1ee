package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/findmycamp/api/internal/model"
	"github.com/findmycamp/api/internal/utils"
)

// AccountRepo provides data access to the accounts table. Usernames
// are normalized to lower case on every write and lookup so the
// unique index enforces case-insensitive uniqueness.
type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

// ErrUsernameExists wraps ErrConflict so callers can match either the
// specific collision or the general conflict class.
var ErrUsernameExists = fmt.Errorf("username already exists: %w", ErrConflict)

const accountColumns = "id,username,password_hash,is_active,is_admin,failed_attempts,lock_until,last_login,created_at,updated_at"

func scanAccount(row *sql.Row) (model.Account, error) {
	var (
		a         model.Account
		lockUntil sql.NullTime
		lastLogin sql.NullTime
	)
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.IsActive, &a.IsAdmin,
		&a.FailedAttempts, &lockUntil, &lastLogin, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return model.Account{}, err
	}
	if lockUntil.Valid {
		t := lockUntil.Time
		a.LockUntil = &t
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		a.LastLogin = &t
	}
	return a, nil
}

// Create inserts an account and returns its ID. A duplicate username
// surfaces as ErrUsernameExists rather than a generic failure.
func (r *AccountRepo) Create(ctx context.Context, username, password string, cost int) (uint64, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO accounts (username, password_hash) VALUES (?,?)",
		username, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches an account by normalized username.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (model.Account, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	return scanAccount(r.DB.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE username=? LIMIT 1", username))
}

// GetByID fetches an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id uint64) (model.Account, error) {
	return scanAccount(r.DB.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id=? LIMIT 1", id))
}

// RecordSuccess applies the accepted-login mutation: the attempt
// counter returns to zero, any lock is cleared and last_login is set.
func (r *AccountRepo) RecordSuccess(ctx context.Context, id uint64, now time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE accounts SET failed_attempts=0, lock_until=NULL, last_login=? WHERE id=?",
		now.UTC(), id)
	return err
}

// RecordFailure applies the wrong-password mutation as one atomic
// statement. The increment is relative (failed_attempts + 1) and the
// lock decision re-evaluates the stored counter inside the UPDATE, so
// concurrent attempts cannot under-count or miss the lock threshold.
func (r *AccountRepo) RecordFailure(ctx context.Context, id uint64, maxAttempts int, lockUntil time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE accounts
		 SET lock_until = CASE WHEN failed_attempts + 1 >= ? THEN ? ELSE lock_until END,
		     failed_attempts = failed_attempts + 1
		 WHERE id = ?`,
		maxAttempts, lockUntil.UTC(), id)
	return err
}

// RecordFreshWindow handles a wrong password after an expired lock:
// the counter restarts at one and the stale lock timestamp goes away.
func (r *AccountRepo) RecordFreshWindow(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE accounts SET failed_attempts=1, lock_until=NULL WHERE id=?", id)
	return err
}

// SetAdmin toggles the admin flag.
func (r *AccountRepo) SetAdmin(ctx context.Context, id uint64, isAdmin bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE accounts SET is_admin=? WHERE id=?", isAdmin, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SetActive toggles the active flag. Deactivated accounts are rejected
// at login before any lock or password check.
func (r *AccountRepo) SetActive(ctx context.Context, id uint64, isActive bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE accounts SET is_active=? WHERE id=?", isActive, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes an account together with its favorite edges and
// refresh tokens in a single transaction, so no listing is left
// claiming a saver that no longer exists.
func (r *AccountRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM favorites WHERE account_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM refresh_tokens WHERE account_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM accounts WHERE id=?", id)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

// requireRow maps a zero-row Exec result onto sql.ErrNoRows so
// handlers can answer 404 instead of silently succeeding.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
