package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsa-mehek/LinkingLink-client/internal/auth"
	"github.com/parsa-mehek/LinkingLink-client/internal/models"
	"github.com/parsa-mehek/LinkingLink-client/internal/server"
	"github.com/parsa-mehek/LinkingLink-client/pkg/api"
	"github.com/parsa-mehek/LinkingLink-client/pkg/logger"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewLogger(io.Discard, logger.LevelDebug, "test")
	repo := server.NewMemoryRepository()

	handler := api.NewHandler(
		auth.NewJWTManager(testSecret),
		server.NewUserService(repo, log),
		server.NewProgressService(repo, log),
		time.Hour,
		log,
	)

	return handler.InitRoutes()
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func registerDemo(t *testing.T, router http.Handler) models.AuthResponse {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		Name:     "Demo User",
		Email:    "demo@example.com",
		Password: "Passw0rd!demo",
		UserID:   "demo_user",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp
}

func TestRegister(t *testing.T) {
	router := newTestRouter(t)

	resp := registerDemo(t, router)

	assert.NotEmpty(t, resp.AccessToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, "demo_user", resp.User.UserID)
	assert.Equal(t, "Demo User", resp.User.Name)
	assert.Empty(t, resp.User.Password)
}

func TestRegister_Conflict(t *testing.T) {
	router := newTestRouter(t)
	registerDemo(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		Name:     "Other",
		Email:    "DEMO@example.com",
		Password: "Passw0rd!other",
		UserID:   "other_user",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}

func TestRegister_BadRequest(t *testing.T) {
	router := newTestRouter(t)

	testCases := []struct {
		name string
		body any
	}{
		{name: "MissingFields", body: map[string]string{"userId": "demo_user"}},
		{name: "InvalidEmail", body: models.RegisterRequest{
			Name: "Demo", Email: "not-an-email", Password: "Passw0rd!demo", UserID: "demo_user",
		}},
		{name: "ShortPassword", body: models.RegisterRequest{
			Name: "Demo", Email: "demo@example.com", Password: "123", UserID: "demo_user",
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	router := newTestRouter(t)
	registerDemo(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", models.LoginRequest{
		UserID:   "demo_user",
		Password: "Passw0rd!demo",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, "demo@example.com", resp.User.Email)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router := newTestRouter(t)
	registerDemo(t, router)

	testCases := []struct {
		name string
		req  models.LoginRequest
	}{
		{name: "WrongPassword", req: models.LoginRequest{UserID: "demo_user", Password: "wrong"}},
		{name: "UnknownUser", req: models.LoginRequest{UserID: "ghost", Password: "Passw0rd!demo"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", tc.req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestMe(t *testing.T) {
	router := newTestRouter(t)
	token := registerDemo(t, router).AccessToken

	rec := doJSON(t, router, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.MeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "demo_user", resp.User.UserID)
	assert.NotEmpty(t, resp.User.CreatedAt)
}

func TestMe_Unauthorized(t *testing.T) {
	router := newTestRouter(t)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "NoToken", token: ""},
		{name: "Garbage", token: "not-a-jwt"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodGet, "/api/auth/me", tc.token, nil)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	router := newTestRouter(t)
	token := registerDemo(t, router).AccessToken

	rec := doJSON(t, router, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProgress(t *testing.T) {
	router := newTestRouter(t)
	token := registerDemo(t, router).AccessToken

	rec := doJSON(t, router, http.MethodGet, "/api/progress", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/progress", token, models.ProgressRequest{
		Subject:        "Math",
		MinutesStudied: 45,
		Notes:          "algebra",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.ProgressCreated
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.Entry.ID)
	assert.Equal(t, "Math", created.Entry.Subject)
	assert.Equal(t, 45, created.Entry.MinutesStudied)
	assert.NotEmpty(t, created.Entry.Date)

	rec = doJSON(t, router, http.MethodGet, "/api/progress", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list models.ProgressList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, created.Entry, list.Items[0])
}

func TestProgress_Validation(t *testing.T) {
	router := newTestRouter(t)
	token := registerDemo(t, router).AccessToken

	testCases := []struct {
		name string
		body any
	}{
		{name: "ZeroMinutes", body: map[string]any{"subject": "Math", "minutesStudied": 0}},
		{name: "NegativeMinutes", body: map[string]any{"subject": "Math", "minutesStudied": -5}},
		{name: "MissingSubject", body: map[string]any{"minutesStudied": 10}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/progress", token, tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestProgress_RequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/progress", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProgress_IsolatedPerUser(t *testing.T) {
	router := newTestRouter(t)
	demoToken := registerDemo(t, router).AccessToken

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		Name: "Other", Email: "other@example.com", Password: "Passw0rd!other", UserID: "other_user",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var other models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &other))

	rec = doJSON(t, router, http.MethodPost, "/api/progress", demoToken, models.ProgressRequest{
		Subject: "Math", MinutesStudied: 20,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/progress", other.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
}

func TestRequestID(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))

	rec = doJSON(t, router, http.MethodGet, "/api/health", "", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
