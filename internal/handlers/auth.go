package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"taskflow/internal/constants"
	"taskflow/internal/flash"
	"taskflow/internal/forms"
	"taskflow/internal/middleware"
	"taskflow/internal/services"
	"taskflow/internal/webpages"
)

// AuthHandler serves the registration, login and logout pages.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	if _, ok := middleware.CurrentUserID(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	h.renderRegister(c, forms.RegistrationForm{}, forms.FieldErrors{})
}

// Register validates the submission and creates the account.
func (h *AuthHandler) Register(c *gin.Context) {
	if _, ok := middleware.CurrentUserID(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	var form forms.RegistrationForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderRegister(c, form, forms.Translate(err))
		return
	}

	_, err := h.authService.Signup(services.SignupInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	switch {
	case err == nil:
		flash.Success(c, "Your account has been created! You can now log in.")
		c.Redirect(http.StatusFound, "/login")
	case errors.Is(err, services.ErrUsernameTaken):
		fieldErrors := forms.FieldErrors{}
		fieldErrors.Add("username", "Username already exists. Please choose another.")
		h.renderRegister(c, form, fieldErrors)
	case errors.Is(err, services.ErrEmailTaken):
		fieldErrors := forms.FieldErrors{}
		fieldErrors.Add("email", "Email already exists. Please choose another.")
		h.renderRegister(c, form, fieldErrors)
	default:
		webpages.InternalError(c)
	}
}

func (h *AuthHandler) renderRegister(c *gin.Context, form forms.RegistrationForm, fieldErrors forms.FieldErrors) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"Title":   "Register",
		"Form":    form,
		"Errors":  fieldErrors,
		"Flashes": flash.Take(c),
	})
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if _, ok := middleware.CurrentUserID(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	h.renderLogin(c, forms.LoginForm{}, forms.FieldErrors{})
}

// Login verifies credentials and establishes the session. Unknown email and
// wrong password produce the same flash message.
func (h *AuthHandler) Login(c *gin.Context) {
	if _, ok := middleware.CurrentUserID(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	var form forms.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderLogin(c, form, forms.Translate(err))
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			flash.Danger(c, "Login failed. Please check email and password.")
			h.renderLogin(c, form, forms.FieldErrors{})
			return
		}
		webpages.InternalError(c)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		webpages.InternalError(c)
		return
	}

	c.Redirect(http.StatusFound, safeNext(c.Query("next")))
}

func (h *AuthHandler) renderLogin(c *gin.Context, form forms.LoginForm, fieldErrors forms.FieldErrors) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Title":   "Login",
		"Form":    form,
		"Next":    c.Query("next"),
		"Errors":  fieldErrors,
		"Flashes": flash.Take(c),
	})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		webpages.InternalError(c)
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

// safeNext accepts only site-relative redirect targets.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/dashboard"
}
