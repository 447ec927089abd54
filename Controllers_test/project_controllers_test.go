package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/fleet-app/controllers"
	"github.com/yeremiapane/fleet-app/models"
	"github.com/yeremiapane/fleet-app/utils"
)

func setupTestDBForProjects(name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared&_foreign_keys=on"),
		&gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.Project{}, &models.Supplier{}, &models.Machine{},
		&models.MachineAssignment{}, &models.MaintenanceRecord{})
	if err != nil {
		panic(err)
	}
	return db
}

func setupProjectRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	projectCtrl := controllers.NewProjectController(db)
	router.GET("/projects", projectCtrl.GetAllProjects)
	router.POST("/projects", projectCtrl.CreateProject)
	router.GET("/projects/:project_id", projectCtrl.GetProjectByID)
	router.PUT("/projects/:project_id", projectCtrl.UpdateProject)
	router.DELETE("/projects/:project_id", projectCtrl.DeleteProject)
	return router
}

func TestProjectCRUD(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForProjects("project_crud_test")
	router := setupProjectRouter(db)

	payload := map[string]interface{}{
		"name":     "Bendungan Cibeet",
		"location": "Karawang",
	}
	payloadBytes, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/projects", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var createResp struct {
		Data models.Project `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	assert.Equal(t, "active", createResp.Data.Status)

	// Partial update: hanya status yang berubah
	updatePayload := map[string]interface{}{"status": "completed"}
	payloadBytes, _ = json.Marshal(updatePayload)
	req, _ = http.NewRequest("PUT", "/projects/1", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var project models.Project
	assert.NoError(t, db.First(&project, 1).Error)
	assert.Equal(t, "completed", project.Status)
	assert.Equal(t, "Karawang", project.Location)

	// Get yang tidak ada -> 404
	req, _ = http.NewRequest("GET", "/projects/999", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Hapus proyek: assignment ikut terhapus (cascade), maintenance record
// tetap ada tapi kehilangan referensi proyek (set null).
func TestDeleteProjectCascade(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForProjects("project_cascade_test")
	router := setupProjectRouter(db)

	db.Create(&models.Project{Name: "Pelabuhan Patimban", Status: "active"})
	db.Create(&models.Machine{Code: "DZR-001", Name: "Dozer", Status: models.MachineInUse})

	projectID := uint(1)
	db.Create(&models.MachineAssignment{
		MachineID:  1,
		ProjectID:  projectID,
		AssignDate: time.Now(),
		AssignedBy: "admin",
	})
	db.Create(&models.MaintenanceRecord{
		RecordNumber:    "MNT-CASCADE-001",
		MachineID:       1,
		ProjectID:       &projectID,
		MaintenanceDate: time.Now(),
		MaintenanceType: models.MaintenanceRepair,
		CreatedBy:       "admin",
	})

	req, _ := http.NewRequest("DELETE", "/projects/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var assignmentCount int64
	db.Model(&models.MachineAssignment{}).Count(&assignmentCount)
	assert.Equal(t, int64(0), assignmentCount)

	var record models.MaintenanceRecord
	assert.NoError(t, db.Where("record_number = ?", "MNT-CASCADE-001").First(&record).Error)
	assert.Nil(t, record.ProjectID)
}
