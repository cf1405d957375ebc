package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"wastewise/internal/auth"
	"wastewise/internal/db"
	apperrors "wastewise/internal/errors"
	"wastewise/internal/handler"
	"wastewise/internal/middleware"
	"wastewise/internal/model"
	"wastewise/internal/repository"
	"wastewise/internal/service"
)

type testServer struct {
	e        *echo.Echo
	db       *gorm.DB
	activity *service.ActivityLogger
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	gormDB, err := db.NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB, false))

	tokens, err := auth.NewTokenService("router-test-secret")
	require.NoError(t, err)

	users := repository.NewUserRepository(gormDB)
	entries := repository.NewWasteEntryRepository(gormDB)
	collections := repository.NewWasteCollectionRepository(gormDB)
	donations := repository.NewFoodDonationRepository(gormDB)
	activityLogs := repository.NewActivityLogRepository(gormDB)

	activity := service.NewActivityLogger(activityLogs)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	e := echo.New()
	Register(e, Handlers{
		Auth:       handler.NewAuthHandler(service.NewAuthService(users, tokens, hasher, activity)),
		Waste:      handler.NewWasteHandler(service.NewWasteService(entries, nil, activity)),
		Collection: handler.NewCollectionHandler(service.NewCollectionService(entries, collections, nil, activity)),
		Donation:   handler.NewDonationHandler(service.NewDonationService(donations, nil, activity)),
		Report:     handler.NewReportHandler(service.NewReportService(entries, collections, donations, nil, time.Minute)),
		Admin:      handler.NewAdminHandler(service.NewAdminService(users, entries, collections, donations, activityLogs)),
		Health:     handler.NewHealthHandler(gormDB),
	}, tokens, middleware.NewIPRateLimiter(1000, 1000), middleware.NewMetrics())

	srv := &testServer{e: e, db: gormDB, activity: activity}
	t.Cleanup(func() {
		activity.Close()
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return srv
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) signupAndLogin(t *testing.T, username, role string) handler.LoginResponse {
	t.Helper()
	email := username + "@example.com"
	rec := s.do(t, http.MethodPost, "/api/auth/signup", "", handler.SignupRequest{
		Username: username, Email: email, Password: "pw123456", Role: role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", handler.LoginRequest{Email: email, Password: "pw123456"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login handler.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	return login
}

func (s *testServer) addWaste(t *testing.T, token, description, category string, quantity float64) uint {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/waste/addWaste", token, handler.AddWasteRequest{
		Description: description, Category: category, Quantity: decimal.NewFromFloat(quantity),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp handler.AddWasteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.EntryID
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestSignupLoginAndLogWaste(t *testing.T) {
	srv := newTestServer(t)

	alice := srv.signupAndLogin(t, "alice", model.RoleRestaurant)
	assert.Equal(t, model.RoleRestaurant, alice.Role)
	assert.NotEmpty(t, alice.Token)

	bob := srv.signupAndLogin(t, "bob", model.RoleRestaurant)

	srv.addWaste(t, alice.Token, "peels", "Food", 5)

	mine := decode[[]model.WasteEntry](t, srv.do(t, http.MethodGet, "/api/waste-entries", alice.Token, nil))
	require.Len(t, mine, 1)
	assert.Equal(t, "peels", mine[0].Description)
	assert.Equal(t, model.EntryStatusPending, mine[0].Status)

	theirs := decode[[]model.WasteEntry](t, srv.do(t, http.MethodGet, "/api/waste-entries", bob.Token, nil))
	assert.Empty(t, theirs)
}

func TestRequestCollectionOwnership(t *testing.T) {
	srv := newTestServer(t)
	alice := srv.signupAndLogin(t, "alice", model.RoleRestaurant)
	bob := srv.signupAndLogin(t, "bob", model.RoleRestaurant)
	entryID := srv.addWaste(t, alice.Token, "peels", "Food", 5)

	rec := srv.do(t, http.MethodPost, "/api/request-collection", bob.Token, handler.RequestCollectionRequest{
		WasteEntryID: handler.FlexibleID(entryID), Description: "mine now",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/request-collection", alice.Token, handler.RequestCollectionRequest{
		WasteEntryID: handler.FlexibleID(entryID), Description: "please collect",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotZero(t, decode[handler.RequestCollectionResponse](t, rec).CollectionID)

	rec = srv.do(t, http.MethodPost, "/api/request-collection", alice.Token, handler.RequestCollectionRequest{
		WasteEntryID: handler.FlexibleID(entryID),
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	mine := decode[[]model.WasteCollection](t, srv.do(t, http.MethodGet, "/api/collections", alice.Token, nil))
	require.Len(t, mine, 1)
	assert.Equal(t, "please collect", mine[0].Description)
}

func TestCollectorMarksPickupOnce(t *testing.T) {
	srv := newTestServer(t)
	alice := srv.signupAndLogin(t, "alice", model.RoleRestaurant)
	carl := srv.signupAndLogin(t, "carl", model.RoleWasteCollector)
	entryID := srv.addWaste(t, alice.Token, "peels", "Food", 5)
	rec := srv.do(t, http.MethodPost, "/api/request-collection", alice.Token, handler.RequestCollectionRequest{
		WasteEntryID: handler.FlexibleID(entryID), Description: "please collect",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Restaurants cannot see the collector queue.
	rec = srv.do(t, http.MethodGet, "/api/collector/pickup-requests", alice.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	pickups := decode[[]model.PendingPickup](t, srv.do(t, http.MethodGet, "/api/collector/pickup-requests", carl.Token, nil))
	require.Len(t, pickups, 1)
	assert.Equal(t, "alice", pickups[0].RequestedBy)
	assert.Equal(t, entryID, pickups[0].WasteEntryID)

	path := fmt.Sprintf("/api/collector/mark-collected/%d", pickups[0].ID)
	rec = srv.do(t, http.MethodPost, path, carl.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodPost, path, carl.Token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "ALREADY_COLLECTED", decode[apperrors.ErrorResponse](t, rec).Code)

	history := decode[[]model.WasteCollection](t, srv.do(t, http.MethodGet, "/api/collector/history", carl.Token, nil))
	require.Len(t, history, 1)
	assert.Equal(t, model.CollectionStatusCollected, history[0].Status)
	require.NotNil(t, history[0].CollectorName)
	assert.Equal(t, "carl", *history[0].CollectorName)

	var collected int64
	require.NoError(t, srv.db.Model(&model.WasteCollection{}).Where("status = ?", model.CollectionStatusCollected).Count(&collected).Error)
	assert.Equal(t, int64(1), collected)

	pickups = decode[[]model.PendingPickup](t, srv.do(t, http.MethodGet, "/api/collector/pickup-requests", carl.Token, nil))
	assert.Empty(t, pickups)

	rec = srv.do(t, http.MethodPost, "/api/collector/mark-collected/9999", carl.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	srv := newTestServer(t)
	srv.signupAndLogin(t, "alice", model.RoleRestaurant)

	wrongPassword := srv.do(t, http.MethodPost, "/api/auth/login", "", handler.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	unknownEmail := srv.do(t, http.MethodPost, "/api/auth/login", "", handler.LoginRequest{Email: "nobody@example.com", Password: "wrong"})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())

	malformed := srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "not-an-email", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, malformed.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), malformed.Body.String())

	missing := srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "alice@example.com"})
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}

func TestNumericFieldsAcceptStrings(t *testing.T) {
	srv := newTestServer(t)
	alice := srv.signupAndLogin(t, "alice", model.RoleRestaurant)

	rec := srv.do(t, http.MethodPost, "/api/waste/addWaste", alice.Token, map[string]interface{}{
		"description": "peels", "category": "Food", "quantity": "5",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	entryID := decode[handler.AddWasteResponse](t, rec).EntryID

	rec = srv.do(t, http.MethodPost, "/api/waste/addWaste", alice.Token, map[string]interface{}{
		"description": "rinds", "category": "Food", "quantity": "2.25",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodPost, "/api/request-collection", alice.Token, map[string]interface{}{
		"waste_entry_id": fmt.Sprintf("%d", entryID), "description": "please collect",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodPost, "/api/food-donations", alice.Token, map[string]interface{}{
		"description": "bread", "quantity": "3", "donor_name": "Alice", "contact": "555-0101",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	summary := decode[service.Summary](t, srv.do(t, http.MethodGet, "/api/reports/summary", alice.Token, nil))
	assert.InDelta(t, 7.25, summary.TotalWaste, 1e-9)

	tests := []struct {
		name string
		path string
		body map[string]interface{}
	}{
		{"zero quantity string", "/api/waste/addWaste", map[string]interface{}{"description": "x", "category": "Food", "quantity": "0"}},
		{"non-numeric quantity", "/api/waste/addWaste", map[string]interface{}{"description": "x", "category": "Food", "quantity": "five"}},
		{"missing donation quantity", "/api/food-donations", map[string]interface{}{"description": "x", "donor_name": "A", "contact": "c"}},
		{"non-numeric entry id", "/api/request-collection", map[string]interface{}{"waste_entry_id": "abc"}},
		{"negative entry id", "/api/request-collection", map[string]interface{}{"waste_entry_id": "-1"}},
		{"missing entry id", "/api/request-collection", map[string]interface{}{"description": "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodPost, tt.path, alice.Token, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, "VALIDATION_ERROR", decode[apperrors.ErrorResponse](t, rec).Code)
		})
	}
}

func TestSignupValidation(t *testing.T) {
	srv := newTestServer(t)
	srv.signupAndLogin(t, "alice", model.RoleRestaurant)

	tests := []struct {
		name           string
		body           handler.SignupRequest
		expectedStatus int
		expectedCode   string
	}{
		{"duplicate email", handler.SignupRequest{Username: "alice2", Email: "alice@example.com", Password: "pw123456", Role: model.RoleUser}, http.StatusConflict, "DUPLICATE_EMAIL"},
		{"unknown role", handler.SignupRequest{Username: "x", Email: "x@example.com", Password: "pw123456", Role: "superuser"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing username", handler.SignupRequest{Email: "y@example.com", Password: "pw123456", Role: model.RoleUser}, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodPost, "/api/auth/signup", "", tt.body)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedCode, decode[apperrors.ErrorResponse](t, rec).Code)
		})
	}
}

func TestAuthGateOnRoutes(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/waste-entries", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/waste-entries", "forged.token.value", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = srv.do(t, http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAddWasteValidation(t *testing.T) {
	srv := newTestServer(t)
	alice := srv.signupAndLogin(t, "alice", model.RoleRestaurant)

	for _, body := range []map[string]interface{}{
		{"description": "peels", "category": "Food", "quantity": 0},
		{"description": "peels", "category": "Food", "quantity": -2},
		{"description": "", "category": "Food", "quantity": 1},
		{"description": "peels", "quantity": 1},
	} {
		rec := srv.do(t, http.MethodPost, "/api/waste/addWaste", alice.Token, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestDonationFlow(t *testing.T) {
	srv := newTestServer(t)
	resto := srv.signupAndLogin(t, "resto", model.RoleRestaurant)
	ngo := srv.signupAndLogin(t, "foodbank", model.RoleNGO)

	rec := srv.do(t, http.MethodPost, "/api/food-donations", resto.Token, handler.CreateDonationRequest{
		Description: "30 loaves", Quantity: decimal.NewFromInt(30), DonorName: "Resto", Contact: "555-0100",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	donationID := decode[handler.CreateDonationResponse](t, rec).DonationID

	rec = srv.do(t, http.MethodGet, "/api/food-donations/pending", resto.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	pending := decode[[]model.FoodDonation](t, srv.do(t, http.MethodGet, "/api/food-donations/pending", ngo.Token, nil))
	require.Len(t, pending, 1)

	path := fmt.Sprintf("/api/food-donations/mark-collected/%d", donationID)
	rec = srv.do(t, http.MethodPost, path, resto.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = srv.do(t, http.MethodPost, path, ngo.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = srv.do(t, http.MethodPost, path, ngo.Token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	history := decode[[]model.FoodDonation](t, srv.do(t, http.MethodGet, "/api/food-donations/history", ngo.Token, nil))
	require.Len(t, history, 1)
	require.NotNil(t, history[0].CollectedBy)
	assert.Equal(t, "foodbank", *history[0].CollectedBy)

	mine := decode[[]model.FoodDonation](t, srv.do(t, http.MethodGet, "/api/food-donations", resto.Token, nil))
	require.Len(t, mine, 1)
	assert.Equal(t, model.DonationStatusCollected, mine[0].Status)
}

func TestReportsAreOwnerScoped(t *testing.T) {
	srv := newTestServer(t)
	alice := srv.signupAndLogin(t, "alice", model.RoleRestaurant)
	bob := srv.signupAndLogin(t, "bob", model.RoleRestaurant)

	srv.addWaste(t, alice.Token, "peels", "organic", 4)
	srv.addWaste(t, alice.Token, "bottles", "plastic", 4)
	srv.addWaste(t, alice.Token, "cans", "metal", 1.5)
	srv.addWaste(t, bob.Token, "glass", "glass", 100)

	summary := decode[service.Summary](t, srv.do(t, http.MethodGet, "/api/reports/summary", alice.Token, nil))
	assert.InDelta(t, 9.5, summary.TotalWaste, 1e-9)
	assert.Equal(t, int64(3), summary.TotalEntries)
	assert.Equal(t, "organic", summary.CommonCategory)
	assert.Equal(t, []string{"metal", "organic", "plastic"}, summary.WasteByCategory.Labels)

	empty := srv.signupAndLogin(t, "carol", model.RoleUser)
	summary = decode[service.Summary](t, srv.do(t, http.MethodGet, "/api/reports/summary", empty.Token, nil))
	assert.Equal(t, service.NoCategory, summary.CommonCategory)
	assert.Zero(t, summary.TotalWaste)

	dashboard := decode[service.Dashboard](t, srv.do(t, http.MethodGet, "/api/dashboard", bob.Token, nil))
	assert.Equal(t, int64(1), dashboard.WasteEntries)

	activities := decode[[]model.Activity](t, srv.do(t, http.MethodGet, "/api/dashboard/activities", alice.Token, nil))
	assert.Len(t, activities, 3)

	totals := decode[[]service.CategoryTotal](t, srv.do(t, http.MethodGet, "/api/reports/waste", bob.Token, nil))
	require.Len(t, totals, 1)
	assert.Equal(t, "glass", totals[0].Category)
}

func TestAdminRoutes(t *testing.T) {
	srv := newTestServer(t)
	admin := srv.signupAndLogin(t, "root", model.RoleAdmin)
	resto := srv.signupAndLogin(t, "resto", model.RoleRestaurant)
	srv.addWaste(t, resto.Token, "peels", "organic", 2)

	rec := srv.do(t, http.MethodGet, "/api/admin/stats", resto.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	stats := decode[service.Stats](t, srv.do(t, http.MethodGet, "/api/admin/stats", admin.Token, nil))
	assert.Equal(t, int64(1), stats.WasteEntries)
	assert.Equal(t, int64(1), stats.Users[model.RoleRestaurant])

	users := decode[[]model.User](t, srv.do(t, http.MethodGet, "/api/admin/users?role=restaurant", admin.Token, nil))
	require.Len(t, users, 1)
	assert.Equal(t, "resto", users[0].Username)

	rec = srv.do(t, http.MethodGet, "/api/admin/users?role=wizard", admin.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	srv.activity.Close()
	logs := decode[[]model.ActivityLog](t, srv.do(t, http.MethodGet, "/api/admin/activity?limit=10", admin.Token, nil))
	assert.NotEmpty(t, logs)
}

func TestProfile(t *testing.T) {
	srv := newTestServer(t)
	alice := srv.signupAndLogin(t, "alice", model.RoleNGO)

	user := decode[model.User](t, srv.do(t, http.MethodGet, "/api/auth/me", alice.Token, nil))
	assert.Equal(t, alice.ID, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotContains(t, srv.do(t, http.MethodGet, "/api/auth/me", alice.Token, nil).Body.String(), "password")
}
