package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"sync"

	apperrors "github.com/formdesk/formdesk/internal/errors"

	domainauth "github.com/formdesk/formdesk/internal/domain/auth"
	"github.com/formdesk/formdesk/internal/domain/record"
	"github.com/formdesk/formdesk/internal/ports"
)

// User-visible messages for failed operations. Cached data is preserved
// whenever one of these is set.
const (
	msgFetchFailed  = "Failed to fetch records. Please try again later."
	msgCreateFailed = "Failed to create record."
	msgUpdateFailed = "Failed to update record."
	msgDeleteFailed = "Failed to delete record."
)

// DashboardControllerOptions groups dependencies for a controller.
type DashboardControllerOptions struct {
	API    ports.RecordAPI
	Logger *slog.Logger
}

// DashboardController sequences the dashboard's side effects for one
// session: fetch-then-render, full refetch after every successful
// mutation, and no speculative local edits. It tolerates responses that
// resolve after deactivation by discarding them.
type DashboardController struct {
	api    ports.RecordAPI
	logger *slog.Logger

	mu          sync.Mutex
	cred        domainauth.Credential
	role        domainauth.Role
	records     []record.Record
	listLoading bool
	errMsg      string
	fieldErrs   map[string]string
	// epoch counts activations and refreshes; a response whose epoch no
	// longer matches is stale and must not write state.
	epoch  uint64
	active bool
	// confirmTokens holds pending delete confirmations keyed by record ID.
	confirmTokens map[string]string
}

// View is an immutable snapshot of controller state for rendering.
type View struct {
	Records     []record.Record
	Loading     bool
	Error       string
	FieldErrors map[string]string
	IsAdmin     bool
}

// NewDashboardController constructs an inactive controller.
func NewDashboardController(opts DashboardControllerOptions) *DashboardController {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardController{
		api:           opts.API,
		logger:        logger,
		confirmTokens: make(map[string]string),
	}
}

// Bind points the controller at the session's current credential and
// role. Called on every activation because role can change mid-session.
func (c *DashboardController) Bind(sess domainauth.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cred = sess.Token
	c.role = sess.User.Role
}

// IsAdmin reports whether mutation affordances should be offered.
// This gates UX only; the server remains the authority.
func (c *DashboardController) IsAdmin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.role == domainauth.RoleAdmin
}

// Activate marks the controller live and runs the initial fetch.
func (c *DashboardController) Activate(ctx context.Context) {
	c.mu.Lock()
	c.active = true
	c.mu.Unlock()
	c.Refresh(ctx)
}

// Deactivate detaches the controller from its view. In-flight
// responses arriving afterwards are discarded without error.
func (c *DashboardController) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
	c.epoch++
}

// Refresh replaces the cached sequence from a full list fetch. On
// failure the previous cache stays visible behind an error message;
// a failed refresh never clears the table.
func (c *DashboardController) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.listLoading = true
	c.errMsg = ""
	c.epoch++
	epoch := c.epoch
	cred := c.cred
	c.mu.Unlock()

	records, err := c.api.List(ctx, cred)

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch || !c.active {
		// Superseded or deactivated while in flight; drop the response.
		return
	}
	c.listLoading = false
	if err != nil {
		c.logger.WarnContext(ctx, "list records failed", "error", err)
		c.errMsg = msgFetchFailed
		return
	}
	c.records = records
	c.errMsg = ""
}

// Create validates and issues the mutation, then resynchronizes with a
// full refetch. On failure cached state is left untouched.
func (c *DashboardController) Create(ctx context.Context, fields record.Fields) error {
	if errs := fields.Validate(); len(errs) > 0 {
		c.setFieldErrors(errs)
		return apperrors.Validation("invalid record fields", errs)
	}
	c.setFieldErrors(nil)

	cred := c.credential()
	if _, err := c.api.Create(ctx, cred, fields); err != nil {
		c.setError(msgCreateFailed)
		return apperrors.Wrap(err, apperrors.ErrCodeUpstream, "create record")
	}
	c.Refresh(ctx)
	return nil
}

// Update validates and issues the mutation, then resynchronizes.
func (c *DashboardController) Update(ctx context.Context, id string, fields record.Fields) error {
	if errs := fields.Validate(); len(errs) > 0 {
		c.setFieldErrors(errs)
		return apperrors.Validation("invalid record fields", errs)
	}
	c.setFieldErrors(nil)

	cred := c.credential()
	if _, err := c.api.Update(ctx, cred, id, fields); err != nil {
		c.setError(msgUpdateFailed)
		return apperrors.Wrap(err, apperrors.ErrCodeUpstream, "update record")
	}
	c.Refresh(ctx)
	return nil
}

// BeginDelete issues a confirmation token for the record. The deletion
// request is not sent until Delete is called with a matching token.
func (c *DashboardController) BeginDelete(id string) string {
	token := randomToken()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirmTokens[id] = token
	return token
}

// Delete issues the deletion once the confirmation token matches, then
// resynchronizes. A missing or mismatched token is a validation error
// and no request is sent.
func (c *DashboardController) Delete(ctx context.Context, id, confirm string) error {
	c.mu.Lock()
	expected, ok := c.confirmTokens[id]
	if ok && confirm == expected {
		delete(c.confirmTokens, id)
	}
	c.mu.Unlock()
	if !ok || confirm != expected {
		return apperrors.Validation("delete not confirmed", nil)
	}

	cred := c.credential()
	if err := c.api.Delete(ctx, cred, id); err != nil {
		c.setError(msgDeleteFailed)
		return apperrors.Wrap(err, apperrors.ErrCodeUpstream, "delete record")
	}
	c.Refresh(ctx)
	return nil
}

// Snapshot returns a copy of the current state for rendering.
func (c *DashboardController) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	records := make([]record.Record, len(c.records))
	copy(records, c.records)
	fieldErrs := make(map[string]string, len(c.fieldErrs))
	for k, v := range c.fieldErrs {
		fieldErrs[k] = v
	}
	return View{
		Records:     records,
		Loading:     c.listLoading,
		Error:       c.errMsg,
		FieldErrors: fieldErrs,
		IsAdmin:     c.role == domainauth.RoleAdmin,
	}
}

func (c *DashboardController) credential() domainauth.Credential {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cred
}

func (c *DashboardController) setError(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = msg
}

func (c *DashboardController) setFieldErrors(errs map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fieldErrs = errs
}

func randomToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "confirm"
	}
	return hex.EncodeToString(b)
}

// DashboardManager hands out one controller per session.
type DashboardManager struct {
	api    ports.RecordAPI
	logger *slog.Logger

	mu          sync.Mutex
	controllers map[string]*DashboardController
}

// NewDashboardManager constructs an empty manager.
func NewDashboardManager(api ports.RecordAPI, logger *slog.Logger) *DashboardManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardManager{
		api:         api,
		logger:      logger,
		controllers: make(map[string]*DashboardController),
	}
}

// ForSession returns the controller bound to the session, creating it
// on first use. The binding is refreshed each call so a role change
// after role selection is picked up.
func (m *DashboardManager) ForSession(sess domainauth.Session) *DashboardController {
	m.mu.Lock()
	ctrl, ok := m.controllers[sess.ID]
	if !ok {
		ctrl = NewDashboardController(DashboardControllerOptions{API: m.api, Logger: m.logger})
		m.controllers[sess.ID] = ctrl
	}
	m.mu.Unlock()

	ctrl.Bind(sess)
	return ctrl
}

// Drop deactivates and forgets the session's controller, if any.
func (m *DashboardManager) Drop(sessionID string) {
	m.mu.Lock()
	ctrl, ok := m.controllers[sessionID]
	delete(m.controllers, sessionID)
	m.mu.Unlock()
	if ok {
		ctrl.Deactivate()
	}
}
