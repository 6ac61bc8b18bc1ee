package handler

import (
	"context"      // provides context with cancellation for DB calls
	"database/sql" // SQL database interactions
	"net/http"     // HTTP status codes and primitives
	"strings"      // string manipulation utilities
	"time"         // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/findmycamp/api/internal/auth"       // login decision logic
	"github.com/findmycamp/api/internal/config"     // app configuration
	"github.com/findmycamp/api/internal/model"      // account model and validation
	"github.com/findmycamp/api/internal/queue"      // audit event payloads
	"github.com/findmycamp/api/internal/repository" // DB repositories
	queuepub "github.com/findmycamp/api/internal/service"
	"github.com/findmycamp/api/internal/utils" // helper functions (hashing, token issuing)
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Accounts *repository.AccountRepo
	Tokens   *repository.TokenRepo
	Policy   auth.Policy
}

func NewAuthHandler(cfg config.Config, a *repository.AccountRepo, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{
		Cfg:      cfg,
		Accounts: a,
		Tokens:   t,
		Policy:   auth.Policy{MaxAttempts: cfg.LockMaxAttempts, LockWindow: cfg.LockWindow},
	}
}

// ----- DTOs -----

type registerReq struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type accountPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}
type authResp struct {
	Account accountPart `json:"account"`
	Access  tokenPart   `json:"access"`
	Refresh tokenPart   `json:"refresh"`
}

// invalidCredentials is the single message used for both an unknown
// username and a wrong password, so responses do not reveal which half
// of the pair was wrong.
const invalidCredentials = "invalid username or password"

// Register: validate, create account and return tokens immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))

	var details []string
	details = append(details, model.ValidateUsername(req.Username)...)
	details = append(details, model.ValidatePassword(req.Password)...)
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		details = append(details, "passwords do not match")
	}
	if len(details) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "details": details})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Accounts.Create(ctx, req.Username, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrUsernameExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create account failed"})
	}

	return h.issueTokens(c, ctx, http.StatusCreated, accountPart{ID: id, Username: req.Username})
}

// Login: run the lockout evaluator against the stored account, persist
// whatever mutation it calls for, and only then answer the client.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var acct *model.Account
	found, err := h.Accounts.GetByUsername(ctx, req.Username)
	switch {
	case err == sql.ErrNoRows:
		acct = nil
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	default:
		acct = &found
	}

	now := time.Now().UTC()
	d := auth.Evaluate(acct, req.Password, now, utils.VerifyPassword, h.Policy)

	if err := h.applyMutation(ctx, acct, d.Mutation, now); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update account failed"})
	}
	if d.Mutation.LockUntil != nil {
		h.publishLockout(acct, d.Mutation.LockUntil, c.RealIP(), now)
	}

	switch d.Outcome {
	case auth.Accepted:
		return h.issueTokens(c, ctx, http.StatusOK,
			accountPart{ID: acct.ID, Username: acct.Username, IsAdmin: acct.IsAdmin})
	case auth.RejectedLocked:
		retry := int(d.RetryAfter.Round(time.Second) / time.Second)
		return c.JSON(http.StatusLocked, echo.Map{
			"error":       "account is locked, please try again later",
			"retry_after": retry,
		})
	case auth.RejectedDeactivated:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account is deactivated"})
	default:
		// Unknown username and wrong password share one message.
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": invalidCredentials})
	}
}

// applyMutation persists the evaluator's decision. The failure path
// passes the would-be lock expiry down so the repository can apply the
// threshold check inside a single atomic UPDATE.
func (h *AuthHandler) applyMutation(ctx context.Context, acct *model.Account, m auth.Mutation, now time.Time) error {
	if acct == nil || m.IsZero() {
		return nil
	}
	switch {
	case m.ResetAttempts:
		return h.Accounts.RecordSuccess(ctx, acct.ID, now)
	case m.FreshWindow:
		return h.Accounts.RecordFreshWindow(ctx, acct.ID)
	case m.IncrementAttempts:
		return h.Accounts.RecordFailure(ctx, acct.ID, h.Policy.MaxAttempts, now.Add(h.Policy.LockWindow))
	}
	return nil
}

// publishLockout emits an account.locked audit event. Delivery is best
// effort in the background: a broker outage must not affect the login
// response.
func (h *AuthHandler) publishLockout(acct *model.Account, until *time.Time, ip string, now time.Time) {
	ev := queue.AuditEvent{
		Kind:           queue.KindAccountLocked,
		AccountID:      acct.ID,
		Username:       acct.Username,
		FailedAttempts: acct.FailedAttempts + 1,
		LockedUntil:    until.UTC().Format("2006-01-02 15:04:05"),
		ClientIP:       ip,
		OccurredAt:     now.Format("2006-01-02 15:04:05"),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queuepub.PublishAudit(ctx, ev)
	}()
}

// issueTokens creates an access/refresh pair for the account and writes
// the standard auth response.
func (h *AuthHandler) issueTokens(c echo.Context, ctx context.Context, status int, acct accountPart) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, acct.ID, acct.IsAdmin, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	if err := h.Tokens.StoreRefresh(ctx, acct.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}
	return c.JSON(status, authResp{
		Account: acct,
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	})
}

// Refresh: validate by hash, revoke old, issue new pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	acctID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	acct, err := h.Accounts.GetByID(ctx, acctID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load account failed"})
	}
	if !acct.IsActive {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account is deactivated"})
	}

	return h.issueTokens(c, ctx, http.StatusOK,
		accountPart{ID: acct.ID, Username: acct.Username, IsAdmin: acct.IsAdmin})
}

// Logout: revoke the refresh token named in the body, or all of the
// current account's tokens when called with a bearer token and no body.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	_ = c.Bind(&req)
	refreshToken := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if refreshToken != "" {
		hash := utils.HashRefreshRaw(refreshToken)
		if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
		}
		return c.NoContent(http.StatusNoContent)
	}

	// No body token: fall back to the JWT identity set by the middleware.
	id, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "provide refresh_token or Authorization header"})
	}
	if err := h.Tokens.RevokeAllForAccount(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me: simple protected endpoint returning the caller's identity claims.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"account_id": c.Get("account_id"),
		"is_admin":   c.Get("is_admin"),
	})
}
