package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Gangulr/finace/internal/logger"
	"github.com/Gangulr/finace/internal/middleware"
	"github.com/Gangulr/finace/internal/store"
	"github.com/Gangulr/finace/internal/testutil"
	"github.com/Gangulr/finace/internal/validator"
)

// today is the reference date every test app runs on.
const today = "2025-05-03"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Tokens *middleware.TokenManager
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

type gormPinger struct{ db *gorm.DB }

func (p gormPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite database. modify adjusts the options before the router is built.
func setupApp(t *testing.T, modify ...func(*Options)) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	clock, err := time.Parse(time.DateOnly, today)
	if err != nil {
		t.Fatalf("bad reference date: %v", err)
	}
	tokens := middleware.NewTokenManager("integration-secret", time.Hour)

	opts := Options{
		Stores:          store.NewGormSet(db),
		Health:          gormPinger{db: db},
		Tokens:          tokens,
		Clock:           func() time.Time { return clock.Add(9 * time.Hour) },
		CORSOrigin:      "*",
		SummaryCacheTTL: time.Minute,
	}
	for _, m := range modify {
		m(&opts)
	}

	return &testApp{DB: db, Router: New(opts), Tokens: tokens}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseList parses a list response body.
func parseList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var result []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["code"] != code {
		t.Errorf("expected code %s, got %v (%v)", code, result["code"], result["message"])
	}
	if result["statusCode"].(float64) != float64(status) {
		t.Errorf("expected statusCode %d in body, got %v", status, result["statusCode"])
	}
}

// signupAndSignin registers a user and returns their id and access token.
func (app *testApp) signupAndSignin(t *testing.T, email string) (userID, token string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"username":"tester","password":"password123"}`, email)
	rec := app.request("POST", "/api/auth/signup", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup failed: %d %s", rec.Code, rec.Body.String())
	}

	body = fmt.Sprintf(`{"email":%q,"password":"password123"}`, email)
	rec = app.request("POST", "/api/auth/signin", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("signin failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["_id"].(string), result["token"].(string)
}

// create posts body to path and returns the stored record's id.
func (app *testApp) create(t *testing.T, path, body, token string) string {
	t.Helper()
	rec := app.request("POST", path, body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create %s failed: %d %s", path, rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["_id"].(string)
}

func ids(items []map[string]interface{}) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it["_id"].(string))
	}
	return out
}
