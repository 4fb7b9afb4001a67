package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"taskflow/internal/models"
)

func TestRegister_Success(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodPost, "/register", url.Values{
		"username":         {"alice"},
		"email":            {"alice@x.com"},
		"password":         {"pw1"},
		"confirm_password": {"pw1"},
	})

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))

	var user models.User
	require.NoError(t, env.db.Where("username = ?", "alice").First(&user).Error)
	require.Equal(t, "alice@x.com", user.Email)
	require.NotEqual(t, "pw1", user.PasswordHash)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	env := setupTestEnv(t)
	env.signup("alice", "alice@x.com", "pw1")

	w := env.do(http.MethodPost, "/register", url.Values{
		"username":         {"alice"},
		"email":            {"other@x.com"},
		"password":         {"pw2"},
		"confirm_password": {"pw2"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Username already exists. Please choose another.")

	var count int64
	env.db.Model(&models.User{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	env.signup("alice", "alice@x.com", "pw1")

	w := env.do(http.MethodPost, "/register", url.Values{
		"username":         {"bob"},
		"email":            {"alice@x.com"},
		"password":         {"pw2"},
		"confirm_password": {"pw2"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Email already exists. Please choose another.")

	var count int64
	env.db.Model(&models.User{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodPost, "/register", url.Values{
		"username":         {"alice"},
		"email":            {"alice@x.com"},
		"password":         {"pw1"},
		"confirm_password": {"pw2"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Passwords must match.")

	var count int64
	env.db.Model(&models.User{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestRegister_RedirectsWhenAuthenticated(t *testing.T) {
	env := setupTestEnv(t)
	env.signup("alice", "alice@x.com", "pw1")
	env.login("alice@x.com", "pw1")

	w := env.do(http.MethodGet, "/register", nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestLogin_SuccessRedirectsToDashboard(t *testing.T) {
	env := setupTestEnv(t)
	env.signup("alice", "alice@x.com", "pw1")

	w := env.do(http.MethodPost, "/login", url.Values{
		"email":    {"alice@x.com"},
		"password": {"pw1"},
	})

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/dashboard", w.Header().Get("Location"))
	require.NotEmpty(t, w.Result().Cookies(), "expected session cookie to be set")
}

func TestLogin_HonorsNextParameter(t *testing.T) {
	env := setupTestEnv(t)
	env.signup("alice", "alice@x.com", "pw1")

	w := env.do(http.MethodPost, "/login?next=%2Ftask%2Fnew", url.Values{
		"email":    {"alice@x.com"},
		"password": {"pw1"},
	})

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/task/new", w.Header().Get("Location"))
}

func TestLogin_RejectsExternalNextTarget(t *testing.T) {
	env := setupTestEnv(t)
	env.signup("alice", "alice@x.com", "pw1")

	w := env.do(http.MethodPost, "/login?next=%2F%2Fevil.example", url.Values{
		"email":    {"alice@x.com"},
		"password": {"pw1"},
	})

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/dashboard", w.Header().Get("Location"))
}

// The failure message must not reveal whether the email is registered.
func TestLogin_FailureMessagesAreIdentical(t *testing.T) {
	env := setupTestEnv(t)
	env.signup("alice", "alice@x.com", "pw1")

	const message = "Login failed. Please check email and password."

	wrongPassword := env.do(http.MethodPost, "/login", url.Values{
		"email":    {"alice@x.com"},
		"password": {"nope"},
	})
	require.Equal(t, http.StatusOK, wrongPassword.Code)
	require.Contains(t, wrongPassword.Body.String(), message)

	env.clearSession()

	unknownEmail := env.do(http.MethodPost, "/login", url.Values{
		"email":    {"nobody@x.com"},
		"password": {"pw1"},
	})
	require.Equal(t, http.StatusOK, unknownEmail.Code)
	require.Contains(t, unknownEmail.Body.String(), message)
}

func TestLogout_EndsSession(t *testing.T) {
	env := setupTestEnv(t)
	env.signup("alice", "alice@x.com", "pw1")
	env.login("alice@x.com", "pw1")

	w := env.do(http.MethodGet, "/logout", nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))

	// The cleared session no longer grants access.
	w = env.do(http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Contains(t, w.Header().Get("Location"), "/login")
}
