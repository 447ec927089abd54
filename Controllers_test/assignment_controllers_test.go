package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/fleet-app/controllers"
	"github.com/yeremiapane/fleet-app/models"
	"github.com/yeremiapane/fleet-app/utils"
)

func setupTestDBForAssignments(name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared&_foreign_keys=on"),
		&gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.Project{}, &models.Machine{}, &models.MachineAssignment{})
	if err != nil {
		panic(err)
	}
	// Seed: satu proyek dan satu mesin
	db.Create(&models.Project{Name: "Jalan Tol Seksi 2", Status: "active"})
	db.Create(&models.Machine{Code: "EXC-100", Name: "Excavator", Status: models.MachineAvailable})
	return db
}

func setupAssignmentRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	assignmentCtrl := controllers.NewAssignmentController(db)
	router.GET("/assignments", assignmentCtrl.GetAllAssignments)
	router.GET("/assignments/active", assignmentCtrl.GetActiveAssignments)
	router.POST("/assignments", assignmentCtrl.CreateAssignment)
	router.PUT("/assignments/:assignment_id/return", assignmentCtrl.ReturnAssignment)
	router.DELETE("/assignments/:assignment_id", assignmentCtrl.DeleteAssignment)
	return router
}

func createAssignment(t *testing.T, router *gin.Engine, machineID, projectID uint) uint {
	payload := map[string]interface{}{
		"machine_id": machineID,
		"project_id": projectID,
	}
	payloadBytes, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/assignments", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data models.MachineAssignment `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.ID
}

// Assignment baru selalu membawa mesin ke in_use,
// apapun status mesin sebelumnya.
func TestCreateAssignmentSetsMachineInUse(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForAssignments("assignment_create_test")
	router := setupAssignmentRouter(db)

	// Set status awal ke maintenance untuk memastikan tidak ada pengecekan
	db.Model(&models.Machine{}).Where("id = ?", 1).Update("status", models.MachineMaintenance)

	createAssignment(t, router, 1, 1)

	var machine models.Machine
	assert.NoError(t, db.First(&machine, 1).Error)
	assert.Equal(t, models.MachineInUse, machine.Status)

	// Assignment aktif harus muncul di /assignments/active
	req, _ := http.NewRequest("GET", "/assignments/active", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var listResp struct {
		Data []models.MachineAssignment `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Data, 1)
	assert.Nil(t, listResp.Data[0].ReturnDate)
}

func TestReturnAssignment(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForAssignments("assignment_return_test")
	router := setupAssignmentRouter(db)

	assignmentID := createAssignment(t, router, 1, 1)

	// Return tanpa return_date -> default hari ini, notes lama dipertahankan
	url := "/assignments/" + strconv.Itoa(int(assignmentID)) + "/return"
	req, _ := http.NewRequest("PUT", url, bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var assignment models.MachineAssignment
	assert.NoError(t, db.First(&assignment, assignmentID).Error)
	assert.NotNil(t, assignment.ReturnDate)

	var machine models.Machine
	assert.NoError(t, db.First(&machine, 1).Error)
	assert.Equal(t, models.MachineAvailable, machine.Status)

	// Return assignment yang tidak ada -> 404
	req, _ = http.NewRequest("PUT", "/assignments/9999/return", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Delete hanya menghapus baris, status mesin dibiarkan apa adanya.
func TestDeleteAssignmentKeepsMachineStatus(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForAssignments("assignment_delete_test")
	router := setupAssignmentRouter(db)

	assignmentID := createAssignment(t, router, 1, 1)

	url := "/assignments/" + strconv.Itoa(int(assignmentID))
	req, _ := http.NewRequest("DELETE", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.MachineAssignment{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// Mesin tetap in_use walau assignment-nya dihapus
	var machine models.Machine
	assert.NoError(t, db.First(&machine, 1).Error)
	assert.Equal(t, models.MachineInUse, machine.Status)
}
