package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/fleet-app/controllers"
	"github.com/yeremiapane/fleet-app/models"
	"github.com/yeremiapane/fleet-app/utils"
)

func setupTestDBForUsers(name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared&_foreign_keys=on"),
		&gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		panic(err)
	}
	return db
}

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	userCtrl := controllers.NewUserController(db)
	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)
	return router
}

func TestRegisterAndLogin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers("user_auth_test")
	router := setupUserRouter(db)

	registerPayload := map[string]string{
		"name":     "Site Manager",
		"email":    "manager@example.com",
		"password": "secret123",
		"role":     "manager",
	}
	payloadBytes, _ := json.Marshal(registerPayload)
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Password tersimpan dalam bentuk hash, bukan plaintext
	var user models.User
	assert.NoError(t, db.Where("email = ?", "manager@example.com").First(&user).Error)
	assert.NotEqual(t, "secret123", user.Password)

	// Login sukses -> token + role
	loginPayload := map[string]string{
		"email":    "manager@example.com",
		"password": "secret123",
	}
	payloadBytes, _ = json.Marshal(loginPayload)
	req, _ = http.NewRequest("POST", "/login", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			Token    string `json:"token"`
			UserRole string `json:"user_role"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, "manager", resp.Data.UserRole)

	// Token hasil login harus valid
	claims, err := utils.ParseToken(resp.Data.Token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "manager", claims.Role)

	// Password salah -> 401
	loginPayload["password"] = "wrongpass"
	payloadBytes, _ = json.Marshal(loginPayload)
	req, _ = http.NewRequest("POST", "/login", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
