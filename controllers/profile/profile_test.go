package profileController_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"classroom/config"
	"classroom/database"
	"classroom/middleware"
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

func createUser(t *testing.T, name, email, password string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Name: name, Email: email, Password: string(hash)}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Email)
	require.NoError(t, err)
	return user, token
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

func TestGetProfile(t *testing.T) {
	app := setupApp(t)
	user, token := createUser(t, "Alice", "alice@example.com", "password123")

	resp, payload := doJSON(t, app, "GET", "/profile/", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := payload["data"].(map[string]interface{})
	assert.EqualValues(t, user.ID, data["user_id"])
	assert.Equal(t, "Alice", data["name"])
	assert.Equal(t, "alice@example.com", data["email"])
	assert.NotContains(t, data, "password")
}

func TestGetProfileRequiresToken(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, "GET", "/profile/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateProfile(t *testing.T) {
	app := setupApp(t)
	user, token := createUser(t, "Alice", "alice@example.com", "password123")

	resp, _ := doJSON(t, app, "PUT", "/profile/", token, fiber.Map{"name": "Alicia"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.User
	require.NoError(t, database.Database.Db.First(&updated, user.ID).Error)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	// An empty body changes nothing
	resp, _ = doJSON(t, app, "PUT", "/profile/", token, fiber.Map{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChangePassword(t *testing.T) {
	app := setupApp(t)
	user, token := createUser(t, "Alice", "alice@example.com", "password123")

	resp, _ := doJSON(t, app, "PUT", "/profile/password", token, fiber.Map{
		"currentPassword": "wrong-password",
		"newPassword":     "newpassword1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, "PUT", "/profile/password", token, fiber.Map{
		"currentPassword": "password123",
		"newPassword":     "newpassword1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.User
	require.NoError(t, database.Database.Db.First(&updated, user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newpassword1")))
}
