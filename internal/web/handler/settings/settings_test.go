package settings

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/givehub-admin/givehub-admin/internal/audit"
	"github.com/givehub-admin/givehub-admin/internal/auth"
	"github.com/givehub-admin/givehub-admin/internal/config"
	"github.com/givehub-admin/givehub-admin/internal/db/controller/setting"
	"github.com/givehub-admin/givehub-admin/internal/db/models"
	websess "github.com/givehub-admin/givehub-admin/internal/web/session"
)

// testStorage is a minimal in-memory implementation of storage.Storage for tests.
type testStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ storage.Storage = (*testStorage)(nil)

func (s *testStorage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.data[key], nil
}

func (s *testStorage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = val

	return nil
}

func (s *testStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

func (s *testStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)

	return nil
}

func (s *testStorage) Close() error { return nil }

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		&models.Setting{},
		&models.ActivityLog{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// setupApp builds a fiber app with the settings routes and returns a session
// cookie for an admin with the settings permission.
func setupApp(t *testing.T, db *gorm.DB) (*fiber.App, *http.Cookie) {
	t.Helper()

	websess.Init(&testStorage{data: make(map[string][]byte)})

	role := models.Role{Name: "admin", IsSystem: true}
	require.NoError(t, db.Create(&role).Error)

	perm := models.Permission{Name: auth.PermSettingsManage, Resource: "admin", Action: "settings"}
	require.NoError(t, db.Create(&perm).Error)
	require.NoError(t, db.Create(&models.RolePermission{RoleID: role.ID, PermissionID: perm.ID}).Error)

	admin := models.User{
		Username: "admin",
		Email:    "admin@example.com",
		Password: models.HashPassword("s3cr3tpass"),
		Active:   true,
		UserType: models.UserTypeAdmin,
		RoleID:   role.ID,
	}
	require.NoError(t, db.Create(&admin).Error)

	sessionID, err := websess.GenerateSessionID()
	require.NoError(t, err)
	require.NoError(t, (&websess.Data{User: admin}).Write(sessionID, time.Minute))

	app := fiber.New()

	service := &Service{
		cfg:       &config.Config{},
		db:        db,
		validator: validator.New(),
		audit:     audit.NopRecorder{},
	}

	authService := auth.NewService(db)
	service.Init(app, service.cfg, db, authService, service.audit)

	return app, &http.Cookie{Name: "session", Value: sessionID}
}

func request(t *testing.T, app *fiber.App, method, target, body string, cookie *http.Cookie) (*http.Response, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err, "app.Test failed")

	payload := map[string]interface{}{}
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	resp.Body.Close()

	return resp, payload
}

func TestGetRequiresPermission(t *testing.T) {
	db := setupTestDB(t)
	app, _ := setupApp(t, db)

	// no cookie at all
	resp, _ := request(t, app, http.MethodGet, Path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// a session without the settings permission
	donor := models.User{
		Username: "donor",
		Email:    "donor@example.com",
		Password: models.HashPassword("s3cr3tpass"),
		Active:   true,
		UserType: models.UserTypeDonor,
		RoleID:   999,
	}
	require.NoError(t, db.Create(&donor).Error)

	sessionID, err := websess.GenerateSessionID()
	require.NoError(t, err)
	require.NoError(t, (&websess.Data{User: donor}).Write(sessionID, time.Minute))

	resp, _ = request(t, app, http.MethodGet, Path, "", &http.Cookie{Name: "session", Value: sessionID})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGetCategory(t *testing.T) {
	db := setupTestDB(t)
	app, cookie := setupApp(t, db)

	_, err := setting.Upsert(db, "branding", models.JSONMap{"site_name": "GiveHub"}, nil)
	require.NoError(t, err)

	resp, payload := request(t, app, http.MethodGet, Path+"/branding", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "branding", payload["category"])
	values := payload["values"].(map[string]interface{})
	assert.Equal(t, "GiveHub", values["site_name"])

	// unknown category is a 404
	resp, _ = request(t, app, http.MethodGet, Path+"/nope", "", cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpsertReplacesWholeCategory(t *testing.T) {
	db := setupTestDB(t)
	app, cookie := setupApp(t, db)

	resp, _ := request(t, app, http.MethodPut, Path,
		`{"category":"branding","values":{"logo_url":"https://cdn.example.com/logo.png"}}`, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// second write replaces the bag, it does not merge
	resp, payload := request(t, app, http.MethodPut, Path,
		`{"category":"branding","values":{"primary_color":"#336699"}}`, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	values := payload["values"].(map[string]interface{})
	assert.Equal(t, "#336699", values["primary_color"])
	assert.NotContains(t, values, "logo_url")

	// missing values is rejected before touching the store
	resp, _ = request(t, app, http.MethodPut, Path, `{"category":"branding"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBulkUpsert(t *testing.T) {
	db := setupTestDB(t)
	app, cookie := setupApp(t, db)

	resp, payload := request(t, app, http.MethodPut, Path+"/bulk",
		`{"settings":{"general":{"site_name":"GiveHub"},"social":{"twitter":"@givehub"}}}`, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated := payload["updated"].([]interface{})
	assert.Len(t, updated, 2)
	assert.Empty(t, payload["failed"])

	// a failing category does not abort the others
	resp, payload = request(t, app, http.MethodPut, Path+"/bulk",
		`{"settings":{"general":{"site_name":"Other"},"":{"x":1}}}`, cookie)
	require.Equal(t, http.StatusMultiStatus, resp.StatusCode)
	assert.Len(t, payload["updated"].([]interface{}), 1)
	assert.Len(t, payload["failed"].(map[string]interface{}), 1)

	values, err := setting.Get(db, "general")
	require.NoError(t, err)
	assert.Equal(t, "Other", values["site_name"])
}

func TestReset(t *testing.T) {
	db := setupTestDB(t)
	app, cookie := setupApp(t, db)

	_, err := setting.Upsert(db, setting.CategoryGeneral, models.JSONMap{"site_name": "Broken"}, nil)
	require.NoError(t, err)

	resp, payload := request(t, app, http.MethodPut, Path+"/"+setting.CategoryGeneral+"/reset", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	values := payload["values"].(map[string]interface{})
	assert.NotEqual(t, "Broken", values["site_name"])

	// categories without shipped defaults cannot be reset
	resp, _ = request(t, app, http.MethodPut, Path+"/custom_stuff/reset", "", cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestList(t *testing.T) {
	db := setupTestDB(t)
	app, cookie := setupApp(t, db)

	require.NoError(t, setting.EnsureDefaults(db))

	resp, payload := request(t, app, http.MethodGet, Path, "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	settings := payload["settings"].(map[string]interface{})
	assert.Len(t, settings, len(setting.Defaults()))
	assert.Contains(t, settings, setting.CategoryEmail)
	assert.Contains(t, settings, setting.CategoryPayment)
}
