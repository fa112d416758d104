package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/parking-service/internal/api/http"
	"github.com/spec-kit/parking-service/internal/api/http/handlers"
	"github.com/spec-kit/parking-service/internal/auth"
	"github.com/spec-kit/parking-service/internal/config"
	"github.com/spec-kit/parking-service/internal/events"
	"github.com/spec-kit/parking-service/internal/observability"
	"github.com/spec-kit/parking-service/internal/pricing"
	"github.com/spec-kit/parking-service/internal/repository"
	"github.com/spec-kit/parking-service/internal/service"
)

type apiFixture struct {
	app   *fiber.App
	users repository.UserRepository
	auth  *service.AuthService
}

func newAPIFixture(t *testing.T, capacity int) *apiFixture {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	users := repository.NewUserRepository()
	dispatcher := events.NewInMemoryDispatcher(logger)

	authCfg := config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
	}
	authService := service.NewAuthService(authCfg, users, logger)

	alloc := service.NewAllocationService(capacity, service.AllocationDependencies{
		UserRepo:   users,
		Pricing:    pricing.NewEngine(5, 2, nil),
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	reports := service.NewReportService(alloc, nil)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("parking-service", "test", nil),
		Users:          handlers.NewUsersHandler(authService),
		Parking:        handlers.NewParkingHandler(alloc),
		Reports:        handlers.NewReportsHandler(reports),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), users),
	})
	return &apiFixture{app: app, users: users, auth: authService}
}

func (f *apiFixture) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload
}

func (f *apiFixture) registerDriver(t *testing.T, email, plate string) string {
	t.Helper()
	resp := f.request(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Test Driver",
		"email":    email,
		"password": "hunter2",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	token := body["data"].(map[string]any)["auth"].(map[string]any)["token"].(string)

	if plate != "" {
		resp = f.request(t, http.MethodPost, "/vehicles/", token, map[string]string{"license_plate": plate})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}
	return token
}

func TestParkingFlow_EndToEnd(t *testing.T) {
	f := newAPIFixture(t, 1)
	token := f.registerDriver(t, "alice@example.com", "AAA-1")

	// park
	resp := f.request(t, http.MethodPost, "/parking/park", token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	spaceID := int(body["data"].(map[string]any)["space_id"].(float64))
	require.Equal(t, 1, spaceID)

	// availability reflects the occupancy
	resp = f.request(t, http.MethodGet, "/parking/availability", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	availability := decodeBody(t, resp)["data"].(map[string]any)
	require.Equal(t, 1.0, availability["occupied"])
	require.Equal(t, 0.0, availability["available"])

	// a second park of the same vehicle conflicts
	resp = f.request(t, http.MethodPost, "/parking/park", token, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, "CONFLICT", decodeBody(t, resp)["error"].(map[string]any)["code"])

	// vacate and settle
	resp = f.request(t, http.MethodPost, fmt.Sprintf("/parking/spaces/%d/vacate", spaceID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.request(t, http.MethodPost, "/parking/payments", token, map[string]string{"license_plate": "AAA-1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	payment := decodeBody(t, resp)["data"].(map[string]any)
	require.Equal(t, "COMPLETED", payment["status"])
	require.GreaterOrEqual(t, payment["amount"].(float64), 0.0)
}

func TestParkingFlow_LotFull(t *testing.T) {
	f := newAPIFixture(t, 1)
	alice := f.registerDriver(t, "alice@example.com", "AAA-1")
	bob := f.registerDriver(t, "bob@example.com", "BBB-2")

	resp := f.request(t, http.MethodPost, "/parking/park", alice, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.request(t, http.MethodPost, "/parking/park", bob, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, "EXHAUSTED", decodeBody(t, resp)["error"].(map[string]any)["code"])
}

func TestParking_RequiresAuthentication(t *testing.T) {
	f := newAPIFixture(t, 1)

	resp := f.request(t, http.MethodPost, "/parking/park", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestReservation_ValidatesTimestamps(t *testing.T) {
	f := newAPIFixture(t, 1)
	token := f.registerDriver(t, "alice@example.com", "")

	resp := f.request(t, http.MethodPost, "/parking/reservations", token, map[string]string{
		"start_time": "2025-03-10 10:00",
		"end_time":   "2025-03-10 10:00",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "INVALID_RANGE", decodeBody(t, resp)["error"].(map[string]any)["code"])

	resp = f.request(t, http.MethodPost, "/parking/reservations", token, map[string]string{
		"start_time": "not-a-time",
		"end_time":   "2025-03-10 10:00",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = f.request(t, http.MethodPost, "/parking/reservations", token, map[string]string{
		"start_time": "2025-03-10 10:00",
		"end_time":   "2025-03-10 12:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	reservation := decodeBody(t, resp)["data"].(map[string]any)
	require.Equal(t, 1.0, reservation["space_id"])
	require.NotEmpty(t, reservation["reservation_id"])
}

func TestReports_OperatorOnly(t *testing.T) {
	f := newAPIFixture(t, 1)
	driver := f.registerDriver(t, "alice@example.com", "")

	operatorCfg := config.AuthConfig{
		OperatorEmail:    "operator@example.com",
		OperatorPassword: "op-secret",
	}
	require.NoError(t, f.auth.EnsureOperator(t.Context(), operatorCfg))

	resp := f.request(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "operator@example.com",
		"password": "op-secret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	operator := decodeBody(t, resp)["data"].(map[string]any)["auth"].(map[string]any)["token"].(string)

	const window = "start=2025-03-10%2008:00&end=2025-03-10%2018:00"

	resp = f.request(t, http.MethodGet, "/reports/occupancy?"+window, driver, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = f.request(t, http.MethodGet, "/reports/occupancy?"+window, operator, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.request(t, http.MethodGet, "/reports/revenue?"+window, operator, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	revenue := decodeBody(t, resp)["data"].(map[string]any)
	require.Equal(t, 0.0, revenue["total_revenue"])
}
