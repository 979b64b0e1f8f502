package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formdesk/formdesk/internal/adapters/memstore"
	domainauth "github.com/formdesk/formdesk/internal/domain/auth"
	"github.com/formdesk/formdesk/internal/ingest"
)

func newAuthHandlers(t *testing.T, svc AuthServiceInterface, store *memstore.Store) *AuthHandlers {
	t.Helper()
	return &AuthHandlers{
		Svc:      svc,
		Ingestor: ingest.NewIngestor(ingest.Options{Sessions: store, SessionTTL: time.Hour, Logger: testLogger()}),
		LoginURL: func(state string) string { return "https://id.example.com/authorize?state=" + state },
		Renderer: testRenderer(t),
		Logger:   testLogger(),
	}
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}

func TestRoot_CallbackCreatesSessionAndRedirects(t *testing.T) {
	store := memstore.New()
	h := newAuthHandlers(t, newFakeAuthService(), store)

	target := "/?token=abc123&user=" + url.QueryEscape(`{"id":"1","email":"a@b.com"}`)
	rec := httptest.NewRecorder()
	h.Root(rec, httptest.NewRequest(http.MethodGet, target, nil))

	// Redirecting away strips the callback parameters from the URL.
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/role-selection", rec.Header().Get("Location"))

	cookie := sessionCookieFrom(t, rec)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	saved, err := store.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, domainauth.Credential("abc123"), saved.Token)
}

func TestRoot_CallbackWithRoleGoesToDashboard(t *testing.T) {
	store := memstore.New()
	h := newAuthHandlers(t, newFakeAuthService(), store)

	target := "/?token=abc123&user=" + url.QueryEscape(`{"id":"1","email":"a@b.com","role":"admin"}`)
	rec := httptest.NewRecorder()
	h.Root(rec, httptest.NewRequest(http.MethodGet, target, nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestRoot_MalformedPayloadFailsClosed(t *testing.T) {
	store := memstore.New()
	h := newAuthHandlers(t, newFakeAuthService(), store)
	ctx := context.Background()

	// Seed an existing session referenced by the cookie.
	existing := domainauth.Session{
		ID:        "existing",
		Token:     "old",
		User:      domainauth.User{ID: "u0", Email: "old@example.com"},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, existing))

	req := httptest.NewRequest(http.MethodGet, "/?token=abc123&user=not-json", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "existing"})
	rec := httptest.NewRecorder()
	h.Root(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	// Session cleared and cookie expired.
	_, err := store.Get(ctx, "existing")
	assert.Error(t, err)
	cookie := sessionCookieFrom(t, rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestRoot_NoCallbackForwardsToLogin(t *testing.T) {
	h := newAuthHandlers(t, newFakeAuthService(), memstore.New())

	rec := httptest.NewRecorder()
	h.Root(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Nil(t, sessionCookieFrom(t, rec))
}

func TestLoginPage(t *testing.T) {
	h := newAuthHandlers(t, newFakeAuthService(), memstore.New())

	rec := httptest.NewRecorder()
	h.LoginPage(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "https://id.example.com/authorize?state=")
}

func TestLoginPage_AuthenticatedUserSkipsProvider(t *testing.T) {
	svc := newFakeAuthService()
	svc.add(guardSession(domainauth.RoleAdmin))
	h := newAuthHandlers(t, svc, memstore.New())

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-1"})
	rec := httptest.NewRecorder()
	h.LoginPage(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestLoginPage_SessionWithoutRoleGoesToRoleSelection(t *testing.T) {
	svc := newFakeAuthService()
	svc.add(guardSession(domainauth.RoleUnassigned))
	h := newAuthHandlers(t, svc, memstore.New())

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-1"})
	rec := httptest.NewRecorder()
	h.LoginPage(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/role-selection", rec.Header().Get("Location"))
}

func TestLoginPage_UnusableStoredSessionRendersLogin(t *testing.T) {
	svc := newFakeAuthService()
	sess := guardSession(domainauth.RoleAdmin)
	sess.Token = ""
	svc.add(sess)
	h := newAuthHandlers(t, svc, memstore.New())

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-1"})
	rec := httptest.NewRecorder()
	h.LoginPage(rec, req)

	// A stored pair the guard rejects must not bounce the browser back
	// to /login in a loop; it gets the login page and a cleared cookie.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://id.example.com/authorize?state=")

	cookie := sessionCookieFrom(t, rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestSelectRole_Success(t *testing.T) {
	svc := newFakeAuthService()
	sess := guardSession(domainauth.RoleUnassigned)
	svc.add(sess)
	h := newAuthHandlers(t, svc, memstore.New())

	form := url.Values{"role": {"admin"}}
	req := httptest.NewRequest(http.MethodPost, "/role-selection", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = req.WithContext(SetSessionInContext(req.Context(), &sess))

	rec := httptest.NewRecorder()
	h.SelectRole(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	assert.Equal(t, domainauth.RoleAdmin, svc.sessions["sess-1"].User.Role)
}

func TestSelectRole_UnrecognizedRoleRerenders(t *testing.T) {
	svc := newFakeAuthService()
	sess := guardSession(domainauth.RoleUnassigned)
	svc.add(sess)
	h := newAuthHandlers(t, svc, memstore.New())

	form := url.Values{"role": {"superuser"}}
	req := httptest.NewRequest(http.MethodPost, "/role-selection", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = req.WithContext(SetSessionInContext(req.Context(), &sess))

	rec := httptest.NewRecorder()
	h.SelectRole(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Role must be one of: admin, guest")
	assert.Equal(t, domainauth.RoleUnassigned, svc.sessions["sess-1"].User.Role)
}

func TestSelectRole_UpstreamFailureRerendersWithMessage(t *testing.T) {
	svc := newFakeAuthService()
	sess := guardSession(domainauth.RoleUnassigned)
	svc.add(sess)
	svc.assignErr = assert.AnError
	h := newAuthHandlers(t, svc, memstore.New())

	form := url.Values{"role": {"guest"}}
	req := httptest.NewRequest(http.MethodPost, "/role-selection", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = req.WithContext(SetSessionInContext(req.Context(), &sess))

	rec := httptest.NewRecorder()
	h.SelectRole(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to set role. Please try again.")
}

func TestSelectRole_WithoutSessionRedirectsToLogin(t *testing.T) {
	h := newAuthHandlers(t, newFakeAuthService(), memstore.New())

	req := httptest.NewRequest(http.MethodPost, "/role-selection", nil)
	rec := httptest.NewRecorder()
	h.SelectRole(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestLogout(t *testing.T) {
	svc := newFakeAuthService()
	svc.add(guardSession(domainauth.RoleAdmin))
	h := newAuthHandlers(t, svc, memstore.New())

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-1"})
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Equal(t, []string{"sess-1"}, svc.logoutCalls)

	cookie := sessionCookieFrom(t, rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestLogout_UpstreamFailureStillClearsCookie(t *testing.T) {
	svc := newFakeAuthService()
	svc.add(guardSession(domainauth.RoleAdmin))
	svc.logoutErr = assert.AnError
	h := newAuthHandlers(t, svc, memstore.New())

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-1"})
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	cookie := sessionCookieFrom(t, rec)
	require.NotNil(t, cookie)
	assert.Negative(t, cookie.MaxAge)
}

func TestLogout_WithoutCookie(t *testing.T) {
	svc := newFakeAuthService()
	h := newAuthHandlers(t, svc, memstore.New())

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, svc.logoutCalls)
}

func TestSetSessionCookie_SecureBehindProxy(t *testing.T) {
	h := &AuthHandlers{}
	sess := guardSession(domainauth.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	h.setSessionCookie(rec, req, sess)

	cookie := sessionCookieFrom(t, rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Positive(t, cookie.MaxAge)
}
