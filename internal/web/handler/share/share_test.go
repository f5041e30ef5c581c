package share

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/givehub-admin/givehub-admin/internal/audit"
	"github.com/givehub-admin/givehub-admin/internal/auth"
	"github.com/givehub-admin/givehub-admin/internal/config"
	"github.com/givehub-admin/givehub-admin/internal/db/controller/sharelink"
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
		&models.ShareLink{},
		&models.ActivityLog{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func setupApp(t *testing.T, db *gorm.DB) (*fiber.App, *http.Cookie) {
	t.Helper()

	websess.Init(&testStorage{data: make(map[string][]byte)})

	role := models.Role{Name: "admin", IsSystem: true}
	require.NoError(t, db.Create(&role).Error)

	perm := models.Permission{Name: auth.PermShareManage, Resource: "admin", Action: "share"}
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

	cfg := &config.Config{
		Webserver: config.Webserver{URL: "https://givehub.example.com"},
	}

	var s Service
	s.Init(app, cfg, db, auth.NewService(db), audit.NopRecorder{})

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

func TestCreateShareLinkIdempotent(t *testing.T) {
	db := setupTestDB(t)
	app, cookie := setupApp(t, db)

	resp, payload := request(t, app, http.MethodPost, "/api/profiles/42/share", "", cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	shareID := payload["share_id"].(string)
	assert.Len(t, shareID, 32)
	assert.Equal(t,
		"https://givehub.example.com/public/share/profile/"+shareID,
		payload["share_url"])

	// second call returns the same link with 200
	resp, payload = request(t, app, http.MethodPost, "/api/profiles/42/share", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, shareID, payload["share_id"])

	// a campaign link for the same id is a different link
	resp, payload = request(t, app, http.MethodPost, "/api/campaigns/42/share", "", cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEqual(t, shareID, payload["share_id"])
}

func TestCreateShareLinkRequiresPermission(t *testing.T) {
	db := setupTestDB(t)
	app, _ := setupApp(t, db)

	resp, _ := request(t, app, http.MethodPost, "/api/profiles/42/share", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCustomizeRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	app, cookie := setupApp(t, db)

	// reading before any write yields the empty design
	resp, payload := request(t, app, http.MethodGet, "/api/users/7/customize", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	design := payload["design"].(map[string]interface{})
	assert.Equal(t, "", design["html"])
	assert.Equal(t, "", design["css"])
	assert.NotContains(t, payload, "share_id")

	// writing creates the link and stores the payload as-is
	resp, payload = request(t, app, http.MethodPut, "/api/users/7/customize",
		`{"html":"<b>hello</b>","css":"b{color:red}"}`, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, payload["share_id"].(string), 32)

	resp, payload = request(t, app, http.MethodGet, "/api/users/7/customize", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	design = payload["design"].(map[string]interface{})
	assert.Equal(t, "<b>hello</b>", design["html"])

	// a full replace drops keys that are absent from the new payload
	resp, _ = request(t, app, http.MethodPut, "/api/users/7/customize", `{"theme":"dark"}`, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, payload = request(t, app, http.MethodGet, "/api/users/7/customize", "", cookie)
	design = payload["design"].(map[string]interface{})
	assert.Equal(t, "dark", design["theme"])
	assert.NotContains(t, design, "html")
}

func TestDeactivateActivate(t *testing.T) {
	db := setupTestDB(t)
	app, cookie := setupApp(t, db)

	link, _, err := sharelink.GetOrCreate(db, models.ResourceTypeProfile, "42", nil)
	require.NoError(t, err)

	resp, payload := request(t, app, http.MethodPut, "/api/share/"+link.ShareID+"/deactivate", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, payload["is_active"])

	_, err = sharelink.Resolve(db, link.ShareID)
	require.ErrorIs(t, err, sharelink.ErrLinkNotFound)

	resp, payload = request(t, app, http.MethodPut, "/api/share/"+link.ShareID+"/activate", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, payload["is_active"])

	// unknown tokens are a 404
	resp, _ = request(t, app, http.MethodPut, "/api/share/deadbeefdeadbeefdeadbeefdeadbeef/deactivate", "", cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
