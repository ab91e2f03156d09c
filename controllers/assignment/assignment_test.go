package assignmentController_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

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

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Name: name, Email: email, Password: string(hash)}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Email)
	require.NoError(t, err)
	return user, token
}

// classroom creates a class with one approved student and returns both tokens
func classroom(t *testing.T) (models.Class, string, models.User, string) {
	t.Helper()

	instructor, instructorToken := createUser(t, "Instructor", "teach@example.com")
	student, studentToken := createUser(t, "Student", "student@example.com")

	class := models.Class{Title: "CS101", Description: "Intro", InviteCode: "ABC123", InstructorID: instructor.ID}
	require.NoError(t, database.Database.Db.Create(&class).Error)
	require.NoError(t, database.Database.Db.Create(&models.Enrollment{
		ClassID: class.ID, StudentID: student.ID, Status: models.EnrollmentApproved,
	}).Error)

	return class, instructorToken, student, studentToken
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

func fileBody(content string) fiber.Map {
	return fiber.Map{
		"fileName": "homework.txt",
		"fileData": base64.StdEncoding.EncodeToString([]byte(content)),
	}
}

func TestCreateAssignmentInstructorOnly(t *testing.T) {
	app := setupApp(t)
	class, instructorToken, _, studentToken := classroom(t)

	url := "/assignments/class/" + itoa(class.ID)

	resp, _ := doJSON(t, app, "POST", url, studentToken, fiber.Map{"title": "HW1"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, payload := doJSON(t, app, "POST", url, instructorToken, fiber.Map{
		"title":       "HW1",
		"description": "First homework",
		"due_date":    time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := payload["data"].(map[string]interface{})
	assert.NotZero(t, data["assignment_id"])
}

func TestCreateAssignmentWithResource(t *testing.T) {
	app := setupApp(t)
	class, instructorToken, _, _ := classroom(t)

	resp, payload := doJSON(t, app, "POST", "/assignments/class/"+itoa(class.ID), instructorToken, fiber.Map{
		"title":        "HW1",
		"resourceName": "notes.pdf",
		"resourceData": base64.StdEncoding.EncodeToString([]byte("pdf bytes")),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := payload["data"].(map[string]interface{})
	resourceURL, _ := data["resource_url"].(string)
	assert.Contains(t, resourceURL, "/uploads/assignments/"+itoa(class.ID)+"/")
	assert.Contains(t, resourceURL, "notes.pdf")
}

func TestSubmitAfterDeadline(t *testing.T) {
	app := setupApp(t)
	class, _, student, studentToken := classroom(t)

	past := time.Now().Add(-time.Hour)
	assignment := models.Assignment{ClassID: class.ID, Title: "HW1", DueDate: &past}
	require.NoError(t, database.Database.Db.Create(&assignment).Error)

	resp, payload := doJSON(t, app, "POST", "/assignments/"+itoa(assignment.ID)+"/submit",
		studentToken, fileBody("late work"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Deadline has passed.", payload["message"])

	// No submission row was created
	var count int64
	database.Database.Db.Model(&models.Submission{}).
		Where("assignment_id = ? AND student_id = ?", assignment.ID, student.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestResubmitReplacesFileAndClearsGrade(t *testing.T) {
	app := setupApp(t)
	class, instructorToken, student, studentToken := classroom(t)

	future := time.Now().Add(48 * time.Hour)
	assignment := models.Assignment{ClassID: class.ID, Title: "HW1", DueDate: &future}
	require.NoError(t, database.Database.Db.Create(&assignment).Error)

	submitURL := "/assignments/" + itoa(assignment.ID) + "/submit"

	resp, _ := doJSON(t, app, "POST", submitURL, studentToken, fileBody("first draft"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var submission models.Submission
	require.NoError(t, database.Database.Db.
		Where("assignment_id = ? AND student_id = ?", assignment.ID, student.ID).First(&submission).Error)
	firstFile := submission.FileURL

	resp, _ = doJSON(t, app, "POST", "/assignments/submissions/"+itoa(submission.ID)+"/grade",
		instructorToken, fiber.Map{"score": 90, "feedback": "Good"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Resubmission keeps the same row, swaps the file and clears the grade
	resp, _ = doJSON(t, app, "POST", submitURL, studentToken, fileBody("second draft"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var after models.Submission
	require.NoError(t, database.Database.Db.First(&after, submission.ID).Error)
	assert.NotEqual(t, firstFile, after.FileURL)

	var gradeCount int64
	database.Database.Db.Model(&models.Grade{}).Where("submission_id = ?", submission.ID).Count(&gradeCount)
	assert.EqualValues(t, 0, gradeCount)
}

func TestGradeUpsert(t *testing.T) {
	app := setupApp(t)
	class, instructorToken, student, studentToken := classroom(t)

	assignment := models.Assignment{ClassID: class.ID, Title: "HW1"}
	require.NoError(t, database.Database.Db.Create(&assignment).Error)

	doJSON(t, app, "POST", "/assignments/"+itoa(assignment.ID)+"/submit", studentToken, fileBody("work"))

	var submission models.Submission
	require.NoError(t, database.Database.Db.
		Where("assignment_id = ? AND student_id = ?", assignment.ID, student.ID).First(&submission).Error)

	gradeURL := "/assignments/submissions/" + itoa(submission.ID) + "/grade"

	// Grading is instructor-only
	resp, _ := doJSON(t, app, "POST", gradeURL, studentToken, fiber.Map{"score": 100})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", gradeURL, instructorToken, fiber.Map{"score": 90, "feedback": "Good"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", gradeURL, instructorToken, fiber.Map{"score": 95, "feedback": "Better"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Exactly one grade row, holding the latest values
	var grades []models.Grade
	require.NoError(t, database.Database.Db.Where("submission_id = ?", submission.ID).Find(&grades).Error)
	require.Len(t, grades, 1)
	assert.Equal(t, 95.0, grades[0].Score)
	assert.Equal(t, "Better", grades[0].Feedback)
}

func TestListAssignmentsMembershipGate(t *testing.T) {
	app := setupApp(t)
	class, instructorToken, _, studentToken := classroom(t)
	_, outsiderToken := createUser(t, "Outsider", "outsider@example.com")

	require.NoError(t, database.Database.Db.Create(&models.Assignment{
		ClassID: class.ID, Title: "HW1",
	}).Error)

	url := "/assignments/class/" + itoa(class.ID)

	resp, _ := doJSON(t, app, "GET", url, outsiderToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, payload := doJSON(t, app, "GET", url, studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := payload["data"].(map[string]interface{})
	assert.Equal(t, false, data["is_instructor"])
	assert.Len(t, data["assignments"], 1)

	resp, payload = doJSON(t, app, "GET", url, instructorToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = payload["data"].(map[string]interface{})
	assert.Equal(t, true, data["is_instructor"])
}

func TestListSubmissionsInstructorOnly(t *testing.T) {
	app := setupApp(t)
	class, instructorToken, _, studentToken := classroom(t)

	assignment := models.Assignment{ClassID: class.ID, Title: "HW1"}
	require.NoError(t, database.Database.Db.Create(&assignment).Error)

	doJSON(t, app, "POST", "/assignments/"+itoa(assignment.ID)+"/submit", studentToken, fileBody("work"))

	url := "/assignments/" + itoa(assignment.ID) + "/submissions"

	resp, _ := doJSON(t, app, "GET", url, studentToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, payload := doJSON(t, app, "GET", url, instructorToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := payload["data"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, "Student", row["name"])
}
