package authController_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"classroom/config"
	"classroom/database"
	"classroom/models"
	"classroom/routers"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: bcrypt.MinCost, UploadDir: t.TempDir()}

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	routers.SetupRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var payload map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	return resp, payload
}

func TestRegister(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, "POST", "/auth/register", "", fiber.Map{
		"name": "Alice", "email": "alice@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// A dashboard row is created alongside the user
	var user models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "alice@example.com").First(&user).Error)
	var count int64
	database.Database.Db.Model(&models.Dashboard{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	body := fiber.Map{"name": "Alice", "email": "alice@example.com", "password": "password123"}

	resp, _ := doJSON(t, app, "POST", "/auth/register", "", body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, "POST", "/auth/register", "", fiber.Map{
		"name": "Alice", "email": "not-an-email", "password": "short",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	app := setupApp(t)

	doJSON(t, app, "POST", "/auth/register", "", fiber.Map{
		"name": "Alice", "email": "alice@example.com", "password": "password123",
	})

	resp, payload := doJSON(t, app, "POST", "/auth/login", "", fiber.Map{
		"email": "alice@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := payload["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)

	// Token works on a protected route
	resp, _ = doJSON(t, app, "POST", "/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginInvalidCredentials(t *testing.T) {
	app := setupApp(t)

	doJSON(t, app, "POST", "/auth/register", "", fiber.Map{
		"name": "Alice", "email": "alice@example.com", "password": "password123",
	})

	// Wrong password and unknown email respond identically, so the endpoint
	// never discloses which of the two was wrong.
	resp, wrongPass := doJSON(t, app, "POST", "/auth/login", "", fiber.Map{
		"email": "alice@example.com", "password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, unknown := doJSON(t, app, "POST", "/auth/login", "", fiber.Map{
		"email": "nobody@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	assert.Equal(t, wrongPass["message"], unknown["message"])
}

func TestLogoutRequiresToken(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, "POST", "/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
