package Controllers_test

import (
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

func setupTestDBForStats(name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared&_foreign_keys=on"),
		&gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.Project{}, &models.Machine{},
		&models.MachineAssignment{}, &models.MaintenanceRecord{})
	if err != nil {
		panic(err)
	}
	return db
}

func setupStatsRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	statsCtrl := controllers.NewStatsController(db)
	router.GET("/stats/maintenance-by-month", statsCtrl.MaintenanceByMonth)
	router.GET("/stats/assignments-by-month", statsCtrl.AssignmentsByMonth)
	router.GET("/stats/machines-by-category", statsCtrl.MachinesByCategory)
	router.GET("/stats/machines-by-status", statsCtrl.MachinesByStatus)
	router.GET("/stats/machines-by-project", statsCtrl.MachinesByProject)
	router.GET("/stats/top-machines", statsCtrl.TopMachines)
	router.GET("/stats/maintenance-cost-by-type", statsCtrl.MaintenanceCostByType)
	return router
}

func getStats(t *testing.T, router *gin.Engine, path string, out interface{}) {
	req, _ := http.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NoError(t, json.Unmarshal(resp.Data, out))
}

func TestMachinesByStatusStats(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForStats("stats_status_test")
	router := setupStatsRouter(db)

	db.Create(&models.Machine{Code: "M-001", Name: "A", Status: models.MachineAvailable})
	db.Create(&models.Machine{Code: "M-002", Name: "B", Status: models.MachineAvailable})
	db.Create(&models.Machine{Code: "M-003", Name: "C", Status: models.MachineInUse})

	var rows []controllers.StatusCountRow
	getStats(t, router, "/stats/machines-by-status", &rows)

	counts := map[string]int64{}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	assert.Equal(t, int64(2), counts[models.MachineAvailable])
	assert.Equal(t, int64(1), counts[models.MachineInUse])
}

func TestMaintenanceByMonthStats(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForStats("stats_month_test")
	router := setupStatsRouter(db)

	db.Create(&models.Machine{Code: "M-010", Name: "Genset", Status: models.MachineAvailable})

	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	db.Create(&models.MaintenanceRecord{RecordNumber: "R-1", MachineID: 1,
		MaintenanceDate: jan, MaintenanceType: models.MaintenanceRepair, Cost: 100, CreatedBy: "admin"})
	db.Create(&models.MaintenanceRecord{RecordNumber: "R-2", MachineID: 1,
		MaintenanceDate: jan, MaintenanceType: models.MaintenancePreventive, Cost: 250.5, CreatedBy: "admin"})
	db.Create(&models.MaintenanceRecord{RecordNumber: "R-3", MachineID: 1,
		MaintenanceDate: feb, MaintenanceType: models.MaintenanceRepair, Cost: 75, CreatedBy: "admin"})

	var rows []controllers.MonthCostRow
	getStats(t, router, "/stats/maintenance-by-month", &rows)

	assert.Len(t, rows, 2)
	assert.Equal(t, "2026-01", rows[0].Month)
	assert.Equal(t, int64(2), rows[0].Count)
	assert.InDelta(t, 350.5, rows[0].TotalCost, 0.001)
	assert.Equal(t, "2026-02", rows[1].Month)
	assert.Equal(t, int64(1), rows[1].Count)
}

// Hanya assignment aktif yang dihitung per proyek.
func TestMachinesByProjectStats(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForStats("stats_project_test")
	router := setupStatsRouter(db)

	db.Create(&models.Project{Name: "Proyek A", Status: "active"})
	db.Create(&models.Machine{Code: "M-020", Name: "Crane", Status: models.MachineInUse})
	db.Create(&models.Machine{Code: "M-021", Name: "Dozer", Status: models.MachineInUse})

	now := time.Now()
	returned := now.Add(-24 * time.Hour)
	db.Create(&models.MachineAssignment{MachineID: 1, ProjectID: 1, AssignDate: now, AssignedBy: "admin"})
	db.Create(&models.MachineAssignment{MachineID: 2, ProjectID: 1, AssignDate: now.Add(-48 * time.Hour),
		ReturnDate: &returned, AssignedBy: "admin"})

	var rows []controllers.ProjectMachineRow
	getStats(t, router, "/stats/machines-by-project", &rows)

	assert.Len(t, rows, 1)
	assert.Equal(t, "Proyek A", rows[0].ProjectName)
	assert.Equal(t, int64(1), rows[0].MachineCount)
}

func TestMaintenanceCostByTypeStats(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForStats("stats_type_test")
	router := setupStatsRouter(db)

	db.Create(&models.Machine{Code: "M-030", Name: "Loader", Status: models.MachineAvailable})
	db.Create(&models.MaintenanceRecord{RecordNumber: "T-1", MachineID: 1,
		MaintenanceDate: time.Now(), MaintenanceType: models.MaintenanceRepair, Cost: 900, CreatedBy: "admin"})
	db.Create(&models.MaintenanceRecord{RecordNumber: "T-2", MachineID: 1,
		MaintenanceDate: time.Now(), MaintenanceType: models.MaintenanceRepair, Cost: 100, CreatedBy: "admin"})
	// Tipe kosong di-bucket sebagai fallback
	db.Create(&models.MaintenanceRecord{RecordNumber: "T-3", MachineID: 1,
		MaintenanceDate: time.Now(), MaintenanceType: "", Cost: 50, CreatedBy: "admin"})

	var rows []controllers.TypeCostRow
	getStats(t, router, "/stats/maintenance-cost-by-type", &rows)

	assert.Len(t, rows, 2)
	assert.Equal(t, models.MaintenanceRepair, rows[0].MaintenanceType)
	assert.InDelta(t, 1000, rows[0].TotalCost, 0.001)
	assert.Equal(t, "Khác", rows[1].MaintenanceType)
}

func TestTopMachinesStats(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForStats("stats_top_test")
	router := setupStatsRouter(db)

	db.Create(&models.Project{Name: "Proyek B", Status: "active"})
	db.Create(&models.Machine{Code: "M-040", Name: "Excavator", Status: models.MachineInUse})
	db.Create(&models.Machine{Code: "M-041", Name: "Grader", Status: models.MachineAvailable})

	now := time.Now()
	db.Create(&models.MachineAssignment{MachineID: 1, ProjectID: 1, AssignDate: now, AssignedBy: "admin"})
	db.Create(&models.MachineAssignment{MachineID: 1, ProjectID: 1, AssignDate: now.Add(-72 * time.Hour), AssignedBy: "admin"})

	var rows []controllers.TopMachineRow
	getStats(t, router, "/stats/top-machines", &rows)

	// Mesin tanpa assignment tetap muncul dengan count 0 (LEFT JOIN)
	assert.Len(t, rows, 2)
	assert.Equal(t, "M-040", rows[0].Code)
	assert.Equal(t, int64(2), rows[0].AssignmentCount)
	assert.Equal(t, int64(0), rows[1].AssignmentCount)
}
