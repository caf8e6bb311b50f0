package authController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/models"
	authValidator "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	return db
}

func setupTestApp() *fiber.App {
	app := fiber.New()

	app.Post("/api/auth/signup", authValidator.Signup(), Signup)
	app.Post("/api/auth/login", Login)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload map[string]interface{}) (int, map[string]interface{}) {
	t.Helper()

	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

func TestSignup(t *testing.T) {
	db := setupTestDb(t)
	app := setupTestApp()

	status, result := postJSON(t, app, "/api/auth/signup", map[string]interface{}{
		"name":     "New Learner",
		"email":    "learner@example.com",
		"password": "secret-password",
	})
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, result["success"])

	// The password never leaks back and is stored hashed
	data := result["data"].(map[string]interface{})
	assert.Empty(t, data["Password"])

	var user models.User
	require.NoError(t, db.Where("email = ?", "learner@example.com").First(&user).Error)
	assert.NotEqual(t, "secret-password", user.Password)
	assert.Equal(t, "USER", user.Role)

	// Default permissions were seeded
	var permissions int64
	require.NoError(t, db.Model(&models.Permission{}).Where("user_id = ?", user.ID).Count(&permissions).Error)
	assert.Greater(t, permissions, int64(0))
}

func TestSignupDuplicateEmail(t *testing.T) {
	setupTestDb(t)
	app := setupTestApp()

	payload := map[string]interface{}{
		"name":     "New Learner",
		"email":    "dup@example.com",
		"password": "secret-password",
	}
	status, _ := postJSON(t, app, "/api/auth/signup", payload)
	require.Equal(t, fiber.StatusCreated, status)

	status, result := postJSON(t, app, "/api/auth/signup", payload)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, false, result["success"])
}

func TestSignupValidation(t *testing.T) {
	setupTestDb(t)
	app := setupTestApp()

	status, result := postJSON(t, app, "/api/auth/signup", map[string]interface{}{
		"name":     "ab",
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, false, result["success"])
}

func TestLogin(t *testing.T) {
	setupTestDb(t)
	app := setupTestApp()

	status, _ := postJSON(t, app, "/api/auth/signup", map[string]interface{}{
		"name":     "New Learner",
		"email":    "login@example.com",
		"password": "secret-password",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, result := postJSON(t, app, "/api/auth/login", map[string]interface{}{
		"email":    "login@example.com",
		"password": "secret-password",
	})
	assert.Equal(t, fiber.StatusOK, status)

	data := result["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
}

func TestLoginWrongPassword(t *testing.T) {
	setupTestDb(t)
	app := setupTestApp()

	status, _ := postJSON(t, app, "/api/auth/signup", map[string]interface{}{
		"name":     "New Learner",
		"email":    "wrongpw@example.com",
		"password": "secret-password",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = postJSON(t, app, "/api/auth/login", map[string]interface{}{
		"email":    "wrongpw@example.com",
		"password": "not-the-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestLoginLockoutAfterThreeFailures(t *testing.T) {
	db := setupTestDb(t)
	app := setupTestApp()

	status, _ := postJSON(t, app, "/api/auth/signup", map[string]interface{}{
		"name":     "New Learner",
		"email":    "lockout@example.com",
		"password": "secret-password",
	})
	require.Equal(t, fiber.StatusCreated, status)

	for i := 0; i < 3; i++ {
		status, _ = postJSON(t, app, "/api/auth/login", map[string]interface{}{
			"email":    "lockout@example.com",
			"password": "wrong",
		})
		assert.Equal(t, fiber.StatusUnauthorized, status)
	}

	var user models.User
	require.NoError(t, db.Where("email = ?", "lockout@example.com").First(&user).Error)
	assert.True(t, user.IsBlocked)
	require.NotNil(t, user.BlockedUntil)

	// Even the right password is refused while blocked
	status, _ = postJSON(t, app, "/api/auth/login", map[string]interface{}{
		"email":    "lockout@example.com",
		"password": "secret-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
