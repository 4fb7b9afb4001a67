package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskflow/internal/constants"
	"taskflow/internal/database"
	"taskflow/internal/models"
	"taskflow/internal/repository"
	"taskflow/internal/services"
)

type testEnv struct {
	t           *testing.T
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	taskService *services.TaskService

	// cookies carries the session across requests, like a browser would.
	cookies map[string]*http.Cookie
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Task{})
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)

	r := gin.New()
	r.LoadHTMLGlob("../../web/templates/*.html")
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	RegisterRoutes(r, NewAuthHandler(authService), NewTaskHandler(taskService))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return &testEnv{
		t:           t,
		db:          db,
		router:      r,
		authService: authService,
		taskService: taskService,
		cookies:     map[string]*http.Cookie{},
	}
}

// do performs a request carrying the accumulated session cookies and keeps
// any cookies the response sets.
func (e *testEnv) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	e.t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for _, c := range e.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		e.cookies[c.Name] = c
	}

	return w
}

// signup creates an account directly through the service.
func (e *testEnv) signup(username, email, password string) *models.User {
	e.t.Helper()

	user, err := e.authService.Signup(services.SignupInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(e.t, err)
	return user
}

// login authenticates through the login route so the session cookie is real.
func (e *testEnv) login(email, password string) {
	e.t.Helper()

	w := e.do(http.MethodPost, "/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	require.Equal(e.t, http.StatusFound, w.Code)
}

// logout drops the collected cookies, simulating a fresh browser.
func (e *testEnv) clearSession() {
	e.cookies = map[string]*http.Cookie{}
}
