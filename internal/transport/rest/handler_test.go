package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rentaroom/config"
	"rentaroom/internal/domain"
	"rentaroom/internal/ratelimit"
	"rentaroom/internal/repository/repotest"
	"rentaroom/internal/service"
	"rentaroom/internal/storage"
	"rentaroom/internal/transport/websocket"
)

const testBaseURL = "http://localhost:3000"

var testPNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type testApp struct {
	router   *gin.Engine
	services *service.Services
	bookings *websocket.BookingHub
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Name:        "rent-a-room-api",
		Version:     "2.1.0",
		JWT:         config.JWTConfig{SigningKey: "test-key", TokenTTL: time.Hour},
		Uploads:     config.UploadsConfig{BaseURL: testBaseURL, MaxMB: 1},
		RateLimit:   config.RateLimitConfig{Window: 15 * time.Minute, General: 200, Auth: 20},
	}
}

func setupApp(t *testing.T, cfg *config.Config, limiter *ratelimit.Limiter) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	files, err := storage.NewLocalStorage(filepath.Join(t.TempDir(), "uploads"), zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	bookings := websocket.NewBookingHub(zap.NewNop())
	go bookings.Run(ctx)

	services := service.NewServices(service.Deps{
		Repos:       repotest.NewStore().Repositories(),
		Logger:      zap.NewNop(),
		Config:      cfg,
		FileStorage: files,
		Notifier:    bookings,
	})

	router := gin.New()
	NewHandler(services, files, limiter, bookings, zap.NewNop(), cfg).InitRoutes(router)

	return &testApp{router: router, services: services, bookings: bookings}
}

func (a *testApp) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) adminToken(t *testing.T) string {
	t.Helper()
	admin, _, err := a.services.User.EnsureAdmin(context.Background(), "Admin", "admin@admin.com", "admin0000")
	require.NoError(t, err)
	token, err := a.services.Auth.IssueToken(*admin)
	require.NoError(t, err)
	return token
}

func (a *testApp) userToken(t *testing.T) string {
	t.Helper()
	resp, err := a.services.Auth.Register(context.Background(), domain.RegisterRequest{Name: "Guest", Email: "guest@example.com", Password: "pw"})
	require.NoError(t, err)
	return resp.Token
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	return decodeBody[errorResponseBody](t, w).Error
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func loftBody() map[string]any {
	return map[string]any{
		"name":     map[string]any{"en": "Loft"},
		"location": map[string]any{"en": "Dushanbe"},
		"type":     map[string]any{"en": "Apartment"},
		"rooms":    2,
		"price":    500,
	}
}

func TestHealth(t *testing.T) {
	app := setupApp(t, testConfig(), nil)

	w := app.do(t, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody[healthResponse](t, w)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "rent-a-room-api", body.Service)
	assert.Equal(t, "2.1.0", body.Version)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestUnknownRoute(t *testing.T) {
	app := setupApp(t, testConfig(), nil)

	w := app.do(t, http.MethodGet, "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Route not found", errorMessage(t, w))
}

func TestCORSPreflight(t *testing.T) {
	app := setupApp(t, testConfig(), nil)

	w := app.do(t, http.MethodOptions, "/listings", nil, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCreateListing_JSON(t *testing.T) {
	app := setupApp(t, testConfig(), nil)

	w := app.do(t, http.MethodPost, "/listings", loftBody(), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	listing := decodeBody[domain.Listing](t, w)
	assert.Positive(t, listing.ID)
	assert.Equal(t, domain.I18nText{En: "Loft"}, listing.Name)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, map[string]any{"en": "Loft", "ru": "", "tj": ""}, raw["name"])
}

func TestCreateListing_Validation(t *testing.T) {
	app := setupApp(t, testConfig(), nil)

	body := loftBody()
	delete(body, "name")
	w := app.do(t, http.MethodPost, "/listings", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "name.en is required", errorMessage(t, w))

	w = app.do(t, http.MethodPost, "/listings", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "name.en is required", errorMessage(t, w))
}

func TestCreateListing_MultipartWithImage(t *testing.T) {
	app := setupApp(t, testConfig(), nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", `{"en":"Loft","ru":"Лофт"}`))
	require.NoError(t, mw.WriteField("locationEn", "Dushanbe"))
	require.NoError(t, mw.WriteField("type", "Apartment"))
	require.NoError(t, mw.WriteField("rooms", "3"))
	require.NoError(t, mw.WriteField("price", "750"))
	part, err := mw.CreateFormFile("image", "room.png")
	require.NoError(t, err)
	_, err = part.Write(testPNG)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/listings", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	listing := decodeBody[domain.Listing](t, w)
	assert.Equal(t, domain.I18nText{En: "Loft", Ru: "Лофт"}, listing.Name)
	assert.Equal(t, domain.I18nText{En: "Apartment", Ru: "Apartment", Tj: "Apartment"}, listing.Type)
	assert.Equal(t, int64(3), listing.Rooms)
	assert.Equal(t, int64(750), listing.Price)
	require.True(t, strings.HasPrefix(listing.Image, testBaseURL+"/uploads/"), listing.Image)

	w = app.do(t, http.MethodGet, strings.TrimPrefix(listing.Image, testBaseURL), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, testPNG, w.Body.Bytes())
}

func TestGetUpload_Missing(t *testing.T) {
	app := setupApp(t, testConfig(), nil)

	w := app.do(t, http.MethodGet, "/uploads/listing_missing.png", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodGet, "/uploads/../config.go", nil, "")
	assert.NotEqual(t, http.StatusOK, w.Code)
}

func TestGetListing(t *testing.T) {
	app := setupApp(t, testConfig(), nil)

	w := app.do(t, http.MethodGet, "/listings/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid id", errorMessage(t, w))

	w = app.do(t, http.MethodGet, "/listings/99", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Listing not found", errorMessage(t, w))

	created := decodeBody[domain.Listing](t, app.do(t, http.MethodPost, "/listings", loftBody(), ""))
	w = app.do(t, http.MethodGet, "/listings/"+itoa(created.ID), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decodeBody[domain.Listing](t, w).ID)
}

func TestUpdateListing_Partial(t *testing.T) {
	app := setupApp(t, testConfig(), nil)

	created := decodeBody[domain.Listing](t, app.do(t, http.MethodPost, "/listings", loftBody(), ""))

	for _, method := range []string{http.MethodPatch, http.MethodPut} {
		w := app.do(t, method, "/listings/"+itoa(created.ID), map[string]any{"price": "900"}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		updated := decodeBody[domain.Listing](t, w)
		assert.Equal(t, int64(900), updated.Price)
		assert.Equal(t, created.Name, updated.Name)
		assert.Equal(t, created.Rooms, updated.Rooms)
	}

	w := app.do(t, http.MethodPatch, "/listings/"+itoa(created.ID), map[string]any{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No fields to update", errorMessage(t, w))

	w = app.do(t, http.MethodPatch, "/listings/12345", map[string]any{"price": 1}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteListing(t *testing.T) {
	app := setupApp(t, testConfig(), nil)

	created := decodeBody[domain.Listing](t, app.do(t, http.MethodPost, "/listings", loftBody(), ""))

	w := app.do(t, http.MethodDelete, "/listings/"+itoa(created.ID), nil, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())

	w = app.do(t, http.MethodDelete, "/listings/"+itoa(created.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Listing not found", errorMessage(t, w))
}

func TestListingStats_Empty(t *testing.T) {
	app := setupApp(t, testConfig(), nil)

	w := app.do(t, http.MethodGet, "/listings/stats", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":0,"cities":[],"types":[],"minPrice":0,"maxPrice":0}`, w.Body.String())
}

func TestCreateMessage(t *testing.T) {
	app := setupApp(t, testConfig(), nil)

	w := app.do(t, http.MethodPost, "/messages", map[string]any{
		"listingId": 1,
		"name":      "Farrukh",
		"phone":     "+992900000000",
		"message":   "Hello",
		"status":    "ACCEPTED",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	msg := decodeBody[domain.Message](t, w)
	assert.Equal(t, domain.MessageStatusPending, msg.Status)
	assert.Equal(t, 1, msg.Days)
	assert.Nil(t, msg.UserID)

	w = app.do(t, http.MethodPost, "/messages", map[string]any{"listingId": 1, "name": "A"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "listingId, name, phone, message are required", errorMessage(t, w))
}

func TestMessages_AdminGuard(t *testing.T) {
	app := setupApp(t, testConfig(), nil)

	w := app.do(t, http.MethodGet, "/messages", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No token provided", errorMessage(t, w))

	w = app.do(t, http.MethodGet, "/messages", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired token", errorMessage(t, w))

	w = app.do(t, http.MethodGet, "/messages", nil, app.userToken(t))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Admin access required", errorMessage(t, w))

	w = app.do(t, http.MethodGet, "/messages", nil, app.adminToken(t))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestMessages_AdminWorkflow(t *testing.T) {
	app := setupApp(t, testConfig(), nil)
	token := app.adminToken(t)

	listing := decodeBody[domain.Listing](t, app.do(t, http.MethodPost, "/listings", loftBody(), ""))
	created := decodeBody[domain.Message](t, app.do(t, http.MethodPost, "/messages", map[string]any{
		"listingId": listing.ID,
		"name":      "Farrukh",
		"phone":     "+992900000000",
		"message":   "Hello",
		"days":      "4",
	}, ""))
	assert.Equal(t, 4, created.Days)

	path := "/messages/" + itoa(created.ID)

	w := app.do(t, http.MethodPatch, path, map[string]any{"status": "CANCELLED"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "status must be PENDING, ACCEPTED or REJECTED", errorMessage(t, w))

	w = app.do(t, http.MethodPatch, path, map[string]any{"status": "ACCEPTED"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.MessageStatusAccepted, decodeBody[domain.Message](t, w).Status)

	w = app.do(t, http.MethodGet, path, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	withRelations := decodeBody[domain.MessageWithRelations](t, w)
	require.NotNil(t, withRelations.Listing)
	assert.Equal(t, "Loft", withRelations.Listing.NameEn)
	assert.Nil(t, withRelations.User)

	w = app.do(t, http.MethodDelete, path, nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = app.do(t, http.MethodPatch, path, map[string]any{"status": "REJECTED"}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Message not found", errorMessage(t, w))
}

func TestAuthFlow(t *testing.T) {
	app := setupApp(t, testConfig(), nil)

	w := app.do(t, http.MethodPost, "/auth/register", map[string]any{
		"name":     "Nigora",
		"email":    "nigora@example.com",
		"password": "secret",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	registered := decodeBody[domain.AuthResponse](t, w)
	assert.NotEmpty(t, registered.Token)
	assert.NotContains(t, w.Body.String(), "password")

	w = app.do(t, http.MethodPost, "/auth/register", map[string]any{
		"name":     "Other",
		"email":    "nigora@example.com",
		"password": "secret",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already registered", errorMessage(t, w))

	w = app.do(t, http.MethodPost, "/auth/login", map[string]any{"email": "nigora@example.com", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", errorMessage(t, w))

	w = app.do(t, http.MethodPost, "/auth/login", map[string]any{"email": "nigora@example.com", "password": "secret"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	token := decodeBody[domain.AuthResponse](t, w).Token

	w = app.do(t, http.MethodGet, "/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nigora@example.com", decodeBody[domain.User](t, w).Email)

	w = app.do(t, http.MethodPatch, "/auth/me", map[string]any{"name": "Nigora S.", "phone": "+992"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	me := decodeBody[domain.User](t, w)
	assert.Equal(t, "Nigora S.", me.Name)
	assert.Equal(t, "+992", me.Phone)
}

func TestUsers_AdminCRUD(t *testing.T) {
	app := setupApp(t, testConfig(), nil)
	token := app.adminToken(t)

	w := app.do(t, http.MethodPost, "/users", map[string]any{
		"name":     "Manager",
		"email":    "manager@example.com",
		"password": "pw",
		"isAdmin":  true,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody[domain.User](t, w)
	assert.True(t, created.IsAdmin)

	w = app.do(t, http.MethodGet, "/users", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]domain.User](t, w), 2)

	path := "/users/" + itoa(created.ID)
	w = app.do(t, http.MethodPatch, path, map[string]any{"isAdmin": false, "phone": "123"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody[domain.User](t, w)
	assert.False(t, updated.IsAdmin)
	assert.Equal(t, "123", updated.Phone)

	w = app.do(t, http.MethodDelete, path, nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = app.do(t, http.MethodGet, path, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", errorMessage(t, w))
}

func TestAuthRateLimit(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})

	cfg := testConfig()
	cfg.RateLimit.Auth = 2
	app := setupApp(t, cfg, ratelimit.New(rdb, cfg.RateLimit.Window, zap.NewNop()))

	login := map[string]any{"email": "nobody@example.com", "password": "x"}
	for i := 0; i < 2; i++ {
		w := app.do(t, http.MethodPost, "/auth/login", login, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := app.do(t, http.MethodPost, "/auth/login", login, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many auth attempts, please try again later.", errorMessage(t, w))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// the general limit is separate
	w = app.do(t, http.MethodGet, "/listings", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
