package threadController_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
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

func createUser(t *testing.T, name, email string) (models.User, string) {
	t.Helper()

	user := models.User{Name: name, Email: email, Password: "x"}
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

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func TestThreadLifecycle(t *testing.T) {
	app := setupApp(t)
	instructor, instructorToken := createUser(t, "Instructor", "teach@example.com")
	student, studentToken := createUser(t, "Student", "student@example.com")
	_, outsiderToken := createUser(t, "Outsider", "outsider@example.com")

	class := models.Class{Title: "CS101", InviteCode: "ABC123", InstructorID: instructor.ID}
	require.NoError(t, database.Database.Db.Create(&class).Error)
	require.NoError(t, database.Database.Db.Create(&models.Enrollment{
		ClassID: class.ID, StudentID: student.ID, Status: models.EnrollmentApproved,
	}).Error)

	classURL := "/threads/class/" + itoa(class.ID)

	// Non-members cannot start threads
	resp, _ := doJSON(t, app, "POST", classURL, outsiderToken, fiber.Map{"title": "Q", "content": "?"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// A student's thread notifies the instructor
	resp, payload := doJSON(t, app, "POST", classURL, studentToken, fiber.Map{
		"title": "Question about HW1", "content": "How long should it be?",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	threadID := uint(payload["data"].(map[string]interface{})["thread_id"].(float64))

	var count int64
	database.Database.Db.Model(&models.Notification{}).Where("user_id = ?", instructor.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	// The instructor's reply notifies the thread author
	commentsURL := "/threads/" + itoa(threadID) + "/comments"
	resp, _ = doJSON(t, app, "POST", commentsURL, instructorToken, fiber.Map{"content": "One page."})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	database.Database.Db.Model(&models.Notification{}).Where("user_id = ?", student.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	// The author's own comment does not notify anyone new
	resp, _ = doJSON(t, app, "POST", commentsURL, studentToken, fiber.Map{"content": "Thanks!"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	database.Database.Db.Model(&models.Notification{}).Where("user_id = ?", student.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	// Comments come back oldest first with author names
	resp, payload = doJSON(t, app, "GET", commentsURL, studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	comments := payload["data"].([]interface{})
	require.Len(t, comments, 2)
	first := comments[0].(map[string]interface{})
	assert.Equal(t, "Instructor", first["name"])
}
